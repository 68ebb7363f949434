// Package tessellate flattens a mesh into triangle buffers. Surface meshes
// export every face; polyhedral meshes export their boundary faces wound
// outward. Polygonal faces are fan triangulated around their first vertex.
package tessellate

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/meshkit/pkg/geom"
	"github.com/chazu/meshkit/pkg/mesh"
)

// Tessellate converts m into flat buffers. Vertex ids are kept, so marked
// edge pairs and indices refer to the same vertices as the mesh. Vertex
// normals are the area weighted average of the exported faces around them.
// Triangle labels are face labels for surface meshes and the owning poly's
// label for polyhedral meshes.
func Tessellate(m *mesh.Mesh, name string) (*Buffers, error) {
	if m == nil {
		return nil, nil
	}
	if m.NumVerts() > math.MaxUint32 {
		return nil, fmt.Errorf("tessellate: %d vertices do not fit 32-bit indices", m.NumVerts())
	}

	b := &Buffers{Name: name}
	normals := make([]v3.Vec, m.NumVerts())

	for fid := 0; fid < m.NumFaces(); fid++ {
		loop, label, ok := exportedFace(m, fid)
		if !ok {
			continue
		}
		pts := make([]v3.Vec, len(loop))
		for i, v := range loop {
			pts[i] = m.Vert(v)
		}
		n := geom.PolygonNormal(pts).MulScalar(geom.PolygonArea3(pts))
		for _, v := range loop {
			normals[v] = normals[v].Add(n)
		}
		for i := 1; i+1 < len(loop); i++ {
			b.Indices = append(b.Indices, uint32(loop[0]), uint32(loop[i]), uint32(loop[i+1]))
			b.Labels = append(b.Labels, int32(label))
			b.Faces = append(b.Faces, uint32(fid))
		}
	}

	b.Vertices = make([]float32, 0, 3*m.NumVerts())
	b.Normals = make([]float32, 0, 3*m.NumVerts())
	for vid, n := range normals {
		p := m.Vert(vid)
		b.Vertices = append(b.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		if l := n.Length(); l > 0 {
			n = n.MulScalar(1 / l)
		}
		b.Normals = append(b.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}

	for _, eid := range m.MarkedEdges() {
		e := m.Edge(eid)
		b.MarkedEdges = append(b.MarkedEdges, uint32(e[0]), uint32(e[1]))
	}
	return b, nil
}

// exportedFace returns the vertex loop and label of fid as it should be
// drawn, or ok=false for interior faces of a polyhedral mesh.
func exportedFace(m *mesh.Mesh, fid int) (loop []int, label int, ok bool) {
	loop = m.Face(fid)
	if m.Kind() == mesh.KindSurface {
		return loop, m.FaceLabel(fid), true
	}
	polys := m.AdjF2P(fid)
	if len(polys) != 1 {
		return nil, 0, false
	}
	pid := polys[0]
	if ccw, _ := m.PolyFaceIsCCW(pid, fid); !ccw {
		for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
			loop[i], loop[j] = loop[j], loop[i]
		}
	}
	return loop, m.PolyLabel(pid), true
}
