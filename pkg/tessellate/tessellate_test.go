package tessellate_test

import (
	"math"
	"slices"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/meshkit/pkg/mesh"
	"github.com/chazu/meshkit/pkg/tessellate"
)

func vec(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

func newCube(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.NewSurface(
		[]v3.Vec{
			vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0),
			vec(0, 0, 1), vec(1, 0, 1), vec(1, 1, 1), vec(0, 1, 1),
		},
		[][]int{{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4}, {3, 7, 6, 2}, {0, 4, 7, 3}, {1, 2, 6, 5}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func newTets(t *testing.T, tets [][4]int) *mesh.Mesh {
	t.Helper()
	m, err := mesh.NewTetmesh(
		[]v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), vec(0, 0, 1), vec(1, 1, 1)},
		tets,
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func vertex(b *tessellate.Buffers, i uint32) v3.Vec {
	return vec(float64(b.Vertices[3*i]), float64(b.Vertices[3*i+1]), float64(b.Vertices[3*i+2]))
}

// checkOutward verifies every triangle faces away from centre.
func checkOutward(t *testing.T, b *tessellate.Buffers, centre v3.Vec) {
	t.Helper()
	for tri := 0; tri < b.TriangleCount(); tri++ {
		p0 := vertex(b, b.Indices[3*tri])
		p1 := vertex(b, b.Indices[3*tri+1])
		p2 := vertex(b, b.Indices[3*tri+2])
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		c := p0.Add(p1).Add(p2).MulScalar(1.0 / 3)
		if n.Dot(c.Sub(centre)) <= 0 {
			t.Errorf("triangle %d faces inward", tri)
		}
	}
}

func TestTessellateCube(t *testing.T) {
	m := newCube(t)
	eid, _ := m.EdgeID(0, 1)
	if err := m.EdgeMark(eid); err != nil {
		t.Fatal(err)
	}
	if err := m.FaceSetLabel(1, 7); err != nil {
		t.Fatal(err)
	}

	b, err := tessellate.Tessellate(m, "cube")
	if err != nil {
		t.Fatal(err)
	}
	if b.Name != "cube" || b.VertexCount() != 8 || b.TriangleCount() != 12 {
		t.Errorf("name %q verts %d tris %d, want cube/8/12", b.Name, b.VertexCount(), b.TriangleCount())
	}
	if len(b.Normals) != len(b.Vertices) || len(b.Labels) != 12 || len(b.Faces) != 12 {
		t.Errorf("normals %d labels %d faces %d", len(b.Normals), len(b.Labels), len(b.Faces))
	}
	if !slices.Equal(b.MarkedEdges, []uint32{0, 1}) && !slices.Equal(b.MarkedEdges, []uint32{1, 0}) {
		t.Errorf("MarkedEdges = %v, want the 0-1 pair", b.MarkedEdges)
	}
	for tri, f := range b.Faces {
		want := int32(0)
		if f == 1 {
			want = 7
		}
		if b.Labels[tri] != want {
			t.Errorf("triangle %d of face %d label %d, want %d", tri, f, b.Labels[tri], want)
		}
	}
	checkOutward(t, b, vec(0.5, 0.5, 0.5))

	inv := float32(1 / math.Sqrt(3))
	n0 := b.Normals[0:3]
	for i, c := range n0 {
		if math.Abs(float64(c+inv)) > 1e-6 {
			t.Errorf("vertex 0 normal[%d] = %v, want %v", i, c, -inv)
		}
	}
}

func TestTessellateTetmesh(t *testing.T) {
	m := newTets(t, [][4]int{{0, 1, 2, 3}})
	if err := m.PolySetLabel(0, 3); err != nil {
		t.Fatal(err)
	}
	b, err := tessellate.Tessellate(m, "tet")
	if err != nil {
		t.Fatal(err)
	}
	if b.TriangleCount() != 4 {
		t.Fatalf("TriangleCount = %d, want 4", b.TriangleCount())
	}
	for _, l := range b.Labels {
		if l != 3 {
			t.Errorf("label %d, want 3", l)
		}
	}
	checkOutward(t, b, vec(0.25, 0.25, 0.25))
}

func TestTessellateSkipsInteriorFaces(t *testing.T) {
	m := newTets(t, [][4]int{{0, 1, 2, 3}, {1, 2, 3, 4}})
	b, err := tessellate.Tessellate(m, "")
	if err != nil {
		t.Fatal(err)
	}
	if b.TriangleCount() != 6 {
		t.Errorf("TriangleCount = %d, want 6", b.TriangleCount())
	}
	shared := uint32(m.NumFaces())
	for fid := 0; fid < m.NumFaces(); fid++ {
		if len(m.AdjF2P(fid)) == 2 {
			shared = uint32(fid)
		}
	}
	if slices.Contains(b.Faces, shared) {
		t.Errorf("interior face %d was exported", shared)
	}
}

func TestTessellateNil(t *testing.T) {
	b, err := tessellate.Tessellate(nil, "none")
	if b != nil || err != nil {
		t.Errorf("Tessellate(nil) = (%v, %v), want (nil, nil)", b, err)
	}
	empty := &tessellate.Buffers{}
	if !empty.IsEmpty() || empty.EdgeCount() != 0 {
		t.Error("zero Buffers should be empty")
	}
}
