package tessellate

// Buffers is a triangle mesh in flat arrays, ready for a renderer or a
// file writer. Vertices has 3 floats per vertex (x,y,z), Normals 3 floats
// per vertex and Indices 3 uint32s per triangle.
type Buffers struct {
	Vertices    []float32 `json:"vertices"`    // [x0,y0,z0, x1,y1,z1, ...]
	Normals     []float32 `json:"normals"`     // [nx0,ny0,nz0, ...]
	Indices     []uint32  `json:"indices"`     // [i0,i1,i2, ...] triangles
	MarkedEdges []uint32  `json:"markedEdges"` // [a0,b0, a1,b1, ...] vertex pairs
	Labels      []int32   `json:"labels"`      // one per triangle
	Faces       []uint32  `json:"faces"`       // source face of each triangle
	Name        string    `json:"name"`
}

// VertexCount returns the number of vertices.
func (b *Buffers) VertexCount() int {
	return len(b.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (b *Buffers) TriangleCount() int {
	return len(b.Indices) / 3
}

// EdgeCount returns the number of marked edges.
func (b *Buffers) EdgeCount() int {
	return len(b.MarkedEdges) / 2
}

// IsEmpty returns true if the buffers hold no triangles.
func (b *Buffers) IsEmpty() bool {
	return len(b.Indices) == 0
}
