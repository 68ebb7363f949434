package mesh

import (
	"errors"
	"slices"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/geo/s1"
)

// --- Construction ---

func TestNewSurfaceCounts(t *testing.T) {
	m := newCube(t)
	if m.Kind() != KindSurface {
		t.Errorf("Kind() = %v, want surface", m.Kind())
	}
	if m.NumVerts() != 8 || m.NumEdges() != 12 || m.NumFaces() != 6 || m.NumPolys() != 0 {
		t.Errorf("counts = %d/%d/%d/%d, want 8/12/6/0", m.NumVerts(), m.NumEdges(), m.NumFaces(), m.NumPolys())
	}
	mustValidate(t, m)
}

func TestEdgesInFirstOccurrenceOrder(t *testing.T) {
	m := newSquare(t)
	want := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}, {3, 0}}
	if m.NumEdges() != len(want) {
		t.Fatalf("NumEdges() = %d, want %d", m.NumEdges(), len(want))
	}
	for i, e := range want {
		if got := m.Edge(i); got != e {
			t.Errorf("Edge(%d) = %v, want %v", i, got, e)
		}
		if id, ok := m.EdgeID(e[1], e[0]); !ok || id != i {
			t.Errorf("EdgeID(%d, %d) = %d, %v; want %d", e[1], e[0], id, ok, i)
		}
	}
	if _, ok := m.EdgeID(1, 3); ok {
		t.Error("EdgeID(1, 3) found an edge that does not exist")
	}
}

func TestStructuralErrors(t *testing.T) {
	verts := []v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), vec(0, 0, 1)}
	tests := []struct {
		name  string
		build func() error
	}{
		{"index out of range", func() error {
			_, err := NewSurface(verts, [][]int{{0, 1, 9}})
			return err
		}},
		{"negative index", func() error {
			_, err := NewSurface(verts, [][]int{{0, -1, 2}})
			return err
		}},
		{"two vertex face", func() error {
			_, err := NewSurface(verts, [][]int{{0, 1}})
			return err
		}},
		{"repeated vertex", func() error {
			_, err := NewSurface(verts, [][]int{{0, 1, 1}})
			return err
		}},
		{"missing winding", func() error {
			_, err := NewPolyhedral(cubeVerts, cubeFaces, [][]int{{0, 1, 2, 3, 4, 5}}, nil)
			return err
		}},
		{"short winding", func() error {
			_, err := NewPolyhedral(cubeVerts, cubeFaces, [][]int{{0, 1, 2, 3, 4, 5}}, [][]bool{{true, true}})
			return err
		}},
		{"poly with three faces", func() error {
			_, err := NewPolyhedral(cubeVerts, cubeFaces, [][]int{{0, 1, 2}}, [][]bool{{true, true, true}})
			return err
		}},
		{"poly face out of range", func() error {
			_, err := NewPolyhedral(cubeVerts, cubeFaces, [][]int{{0, 1, 2, 3, 4, 9}},
				[][]bool{{true, true, true, true, true, true}})
			return err
		}},
		{"tet vertex out of range", func() error {
			_, err := NewTetmesh(verts, [][4]int{{0, 1, 2, 4}})
			return err
		}},
		{"flat tet", func() error {
			_, err := NewTetmesh([]v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), vec(1, 1, 0)}, [][4]int{{0, 1, 2, 3}})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if !errors.Is(err, ErrStructural) {
				t.Fatalf("err = %v, want ErrStructural", err)
			}
			var se *StructuralError
			if !errors.As(err, &se) {
				t.Errorf("err = %T, want *StructuralError", err)
			}
		})
	}
}

func TestConstructorCopiesInput(t *testing.T) {
	faces := [][]int{{0, 1, 2}}
	m, err := NewSurface([]v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0)}, faces)
	if err != nil {
		t.Fatal(err)
	}
	faces[0][0] = 2
	if got := m.Face(0); got[0] != 0 {
		t.Errorf("mesh shares caller's face slice: Face(0) = %v", got)
	}
}

// --- Adjacency ---

func TestAdjacencySquare(t *testing.T) {
	m := newSquare(t)
	tests := []struct {
		name string
		got  []int
		want []int
	}{
		{"V2F(0)", m.AdjV2F(0), []int{0, 1}},
		{"V2F(1)", m.AdjV2F(1), []int{0}},
		{"V2E(0)", m.AdjV2E(0), []int{0, 2, 4}},
		{"V2V(0)", m.AdjV2V(0), []int{1, 2, 3}},
		{"E2F(2)", m.AdjE2F(2), []int{0, 1}},
		{"E2F(3)", m.AdjE2F(3), []int{1}},
		{"F2E(1)", m.AdjF2E(1), []int{2, 3, 4}},
		{"F2F(0)", m.AdjF2F(0), []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Equal(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if got := m.EdgeOppositeTo(0, 0); got != 1 {
		t.Errorf("EdgeOppositeTo(0, 0) = %d, want 1", got)
	}
	if got := m.VertOppositeTo(2, 0); got != 2 {
		t.Errorf("VertOppositeTo(2, 0) = %d, want 2", got)
	}
	if got := m.VertOppositeTo(2, 1); got != -1 {
		t.Errorf("VertOppositeTo(2, 1) = %d, want -1", got)
	}
	if got := m.EdgeSharedByFaces(0, 1); got != 2 {
		t.Errorf("EdgeSharedByFaces(0, 1) = %d, want 2", got)
	}
	if got := m.FaceSharedByEdges(0, 2); got != 0 {
		t.Errorf("FaceSharedByEdges(0, 2) = %d, want 0", got)
	}
	if got := m.FaceOppositeTo(2, 0); got != 1 {
		t.Errorf("FaceOppositeTo(2, 0) = %d, want 1", got)
	}
	if got := m.FaceEdgeID(1, -1); got != 4 {
		t.Errorf("FaceEdgeID(1, -1) = %d, want 4", got)
	}
}

func TestAdjacencyReturnsCopies(t *testing.T) {
	m := newSquare(t)
	got := m.AdjV2F(0)
	got[0] = 99
	if m.AdjV2F(0)[0] != 0 {
		t.Error("AdjV2F exposes internal storage")
	}
}

func TestBoundaryAndManifold(t *testing.T) {
	sq := newSquare(t)
	if !sq.EdgeIsBoundary(0) || sq.EdgeIsBoundary(2) {
		t.Error("square: wrong edge boundary flags")
	}
	if !sq.VertIsBoundary(0) || !sq.FaceIsBoundary(0) {
		t.Error("square: boundary vertex or face not detected")
	}
	if sq.VertValence(0) != 3 || sq.VertValence(1) != 2 {
		t.Errorf("valence = %d, %d; want 3, 2", sq.VertValence(0), sq.VertValence(1))
	}

	cube := newCube(t)
	for vid := 0; vid < cube.NumVerts(); vid++ {
		if cube.VertIsBoundary(vid) {
			t.Errorf("cube vertex %d reported on boundary", vid)
		}
		if !cube.VertIsManifold(vid) {
			t.Errorf("cube vertex %d reported non-manifold", vid)
		}
	}
	if !cube.IsQuadMesh() || cube.IsTriangleMesh() {
		t.Error("cube face type checks wrong")
	}

	bowtie, err := NewSurface(
		[]v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(-1, 0, 0), vec(-1, -1, 0)},
		[][]int{{0, 1, 2}, {0, 3, 4}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if bowtie.VertIsManifold(0) {
		t.Error("bowtie centre reported manifold")
	}
	if !bowtie.VertIsManifold(1) {
		t.Error("bowtie corner reported non-manifold")
	}
}

// --- One-ring ---

func TestVertOrderedOneRingInterior(t *testing.T) {
	m := newCube(t)
	ring, err := m.VertOrderedOneRing(0)
	if err != nil {
		t.Fatal(err)
	}
	e03, _ := m.EdgeID(0, 3)
	e01, _ := m.EdgeID(0, 1)
	e04, _ := m.EdgeID(0, 4)
	checks := []struct {
		name      string
		got, want []int
	}{
		{"faces", ring.Faces, []int{0, 2, 4}},
		{"verts", ring.Verts, []int{3, 1, 4}},
		{"edges", ring.Edges, []int{e03, e01, e04}},
		{"link", ring.Link, []int{3, 2, 1, 5, 4, 7}},
	}
	for _, c := range checks {
		if !slices.Equal(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestVertOrderedOneRingBoundary(t *testing.T) {
	m := newSquare(t)
	ring, err := m.VertOrderedOneRing(0)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(ring.Faces, []int{0, 1}) {
		t.Errorf("faces = %v, want [0 1]", ring.Faces)
	}
	if !slices.Equal(ring.Verts, []int{1, 2, 3}) {
		t.Errorf("verts = %v, want [1 2 3]", ring.Verts)
	}
	if !slices.Equal(ring.Link, []int{1, 2, 3}) {
		t.Errorf("link = %v, want [1 2 3]", ring.Link)
	}
}

func TestVertOrderedOneRingErrors(t *testing.T) {
	tet := newTet(t)
	if _, err := tet.VertOrderedOneRing(0); !errors.Is(err, ErrCapability) {
		t.Errorf("polyhedral one-ring err = %v, want ErrCapability", err)
	}
	sq := newSquare(t)
	if _, err := sq.VertOrderedOneRing(10); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("out of range err = %v, want ErrOutOfRange", err)
	}

	// Three triangles share edge 0-1.
	fin, err := NewSurface(
		[]v3.Vec{{}, {X: 1}, {Y: 1}, {Y: -1}, {Z: 1}},
		[][]int{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}},
	)
	if err != nil {
		t.Fatal(err)
	}
	_, err = fin.VertOrderedOneRing(0)
	var te *TopologyError
	if !errors.As(err, &te) || !errors.Is(err, ErrTopology) {
		t.Fatalf("fin one-ring err = %v, want *TopologyError", err)
	}
	if te.Op != "one-ring" || te.ID != 0 {
		t.Errorf("TopologyError = %+v, want op one-ring on vertex 0", te)
	}
}

// --- Geometry ---

func TestCubeGeometry(t *testing.T) {
	m := newCube(t)
	if !near(m.Area(), 6) {
		t.Errorf("Area() = %v, want 6", m.Area())
	}
	if n := m.FaceNormal(0); !near(n.Z, -1) {
		t.Errorf("bottom normal = %v, want (0,0,-1)", n)
	}
	if c := m.FaceCentroid(1); !near(c.X, 0.5) || !near(c.Y, 0.5) || !near(c.Z, 1) {
		t.Errorf("top centroid = %v", c)
	}
	for eid := 0; eid < m.NumEdges(); eid++ {
		a, ok := m.EdgeDihedralAngle(eid)
		if !ok {
			t.Fatalf("edge %d has no dihedral angle", eid)
		}
		if !near(a.Degrees(), 90) {
			t.Errorf("edge %d dihedral = %v, want 90 degrees", eid, a.Degrees())
		}
		if !near(m.EdgeLength(eid), 1) {
			t.Errorf("edge %d length = %v, want 1", eid, m.EdgeLength(eid))
		}
	}
	bb := m.BoundingBox()
	if bb.Min != vec(0, 0, 0) || bb.Max != vec(1, 1, 1) {
		t.Errorf("BoundingBox() = %v", bb)
	}
}

func TestFlatEdgeHasZeroDihedral(t *testing.T) {
	m := newSquare(t)
	a, ok := m.EdgeDihedralAngle(2)
	if !ok || a > s1.Angle(1e-12) {
		t.Errorf("diagonal dihedral = %v, %v; want 0", a, ok)
	}
	if _, ok := m.EdgeDihedralAngle(0); ok {
		t.Error("boundary edge reported a dihedral angle")
	}
}

// --- Attributes ---

func TestEdgeMarks(t *testing.T) {
	m := newCube(t)
	if err := m.EdgeMark(3); err != nil {
		t.Fatal(err)
	}
	if err := m.EdgeMark(3); err != nil {
		t.Fatal(err)
	}
	if err := m.EdgeMark(7); err != nil {
		t.Fatal(err)
	}
	if got := m.MarkedEdges(); !slices.Equal(got, []int{3, 7}) {
		t.Errorf("MarkedEdges() = %v, want [3 7]", got)
	}
	if err := m.EdgeUnmark(3); err != nil {
		t.Fatal(err)
	}
	if m.EdgeIsMarked(3) || !m.EdgeIsMarked(7) {
		t.Error("EdgeUnmark touched the wrong edge")
	}
	m.EdgeUnmarkAll()
	if m.NumMarkedEdges() != 0 {
		t.Errorf("NumMarkedEdges() = %d after EdgeUnmarkAll", m.NumMarkedEdges())
	}
	if err := m.EdgeMark(12); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("EdgeMark(12) err = %v, want ErrOutOfRange", err)
	}
	if m.NumEdges() != 12 || m.NumFaces() != 6 {
		t.Error("marking changed topology")
	}
}

func TestEdgeMarkIf(t *testing.T) {
	m := newCube(t)
	if err := m.EdgeMark(4); err != nil {
		t.Fatal(err)
	}
	got := m.EdgeMarkIf(func(eid int) bool { return eid%4 == 0 })
	if !slices.Equal(got, []int{0, 4, 8}) {
		t.Errorf("EdgeMarkIf = %v, want [0 4 8]", got)
	}
	if !slices.Equal(m.MarkedEdges(), []int{0, 4, 8}) {
		t.Errorf("MarkedEdges() = %v, want [0 4 8]", m.MarkedEdges())
	}
	if got := m.EdgeMarkIf(func(int) bool { return false }); got != nil {
		t.Errorf("EdgeMarkIf(none) = %v, want nil", got)
	}
}

func TestLabels(t *testing.T) {
	m := newCube(t)
	if err := m.FaceSetLabel(2, 5); err != nil {
		t.Fatal(err)
	}
	if m.FaceLabel(2) != 5 || m.Labels()[2] != 5 {
		t.Error("face label not stored")
	}
	if err := m.PolySetLabel(0, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("PolySetLabel on surface err = %v, want ErrOutOfRange", err)
	}

	tet := newTet(t)
	if err := tet.PolySetLabel(0, 3); err != nil {
		t.Fatal(err)
	}
	if got := tet.Labels(); !slices.Equal(got, []int{3}) {
		t.Errorf("tet Labels() = %v, want [3]", got)
	}
}

// --- Polyhedral ---

func TestTetmesh(t *testing.T) {
	m := newTet(t)
	if m.NumFaces() != 4 || m.NumEdges() != 6 || m.NumPolys() != 1 {
		t.Fatalf("counts = %d faces %d edges %d polys", m.NumFaces(), m.NumEdges(), m.NumPolys())
	}
	if !near(m.PolyVolume(0), 1.0/6) {
		t.Errorf("PolyVolume = %v, want 1/6", m.PolyVolume(0))
	}
	for fid := 0; fid < 4; fid++ {
		if !m.FaceIsBoundary(fid) {
			t.Errorf("face %d not on boundary", fid)
		}
	}
	if !m.PolyIsBoundary(0) || !m.EdgeIsManifold(0) || !m.VertIsManifold(0) {
		t.Error("single tet boundary or manifold checks wrong")
	}
	mustValidate(t, m)

	// Same tet with the opposite vertex order.
	flipped, err := NewTetmesh(tetVerts, [][4]int{{0, 2, 1, 3}})
	if err != nil {
		t.Fatal(err)
	}
	if !near(flipped.PolyVolume(0), 1.0/6) {
		t.Errorf("flipped PolyVolume = %v, want 1/6", flipped.PolyVolume(0))
	}
}

func TestTetmeshSharedFace(t *testing.T) {
	verts := append(append([]v3.Vec(nil), tetVerts...), vec(1, 1, 1))
	m, err := NewTetmesh(verts, [][4]int{{0, 1, 2, 3}, {1, 2, 3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	if m.NumFaces() != 7 || m.NumPolys() != 2 {
		t.Fatalf("counts = %d faces %d polys, want 7 and 2", m.NumFaces(), m.NumPolys())
	}
	shared := m.FaceSharedByPolys(0, 1)
	if shared < 0 {
		t.Fatal("tets share no face")
	}
	w0, _ := m.PolyFaceIsCCW(0, shared)
	w1, _ := m.PolyFaceIsCCW(1, shared)
	if w0 == w1 {
		t.Error("shared face has the same winding in both tets")
	}
	if m.FaceIsBoundary(shared) {
		t.Error("shared face reported on boundary")
	}
	for pid := 0; pid < 2; pid++ {
		if m.PolyVolume(pid) <= 0 {
			t.Errorf("PolyVolume(%d) = %v, want > 0", pid, m.PolyVolume(pid))
		}
	}
	if got := m.AdjP2P(0); !slices.Equal(got, []int{1}) {
		t.Errorf("AdjP2P(0) = %v, want [1]", got)
	}
	mustValidate(t, m)
}

func TestHexVolume(t *testing.T) {
	m := newHex(t)
	if !near(m.Volume(), 1) {
		t.Errorf("Volume() = %v, want 1", m.Volume())
	}
	if got := len(m.AdjP2V(0)); got != 8 {
		t.Errorf("hex has %d vertices, want 8", got)
	}
	if got := len(m.AdjP2E(0)); got != 12 {
		t.Errorf("hex has %d edges, want 12", got)
	}
	mustValidate(t, m)
}

func TestClone(t *testing.T) {
	m := newSquare(t)
	c := m.Clone()
	if _, err := c.FaceSplit(0, vec(0.7, 0.2, 0)); err != nil {
		t.Fatal(err)
	}
	if m.NumFaces() != 2 || c.NumFaces() != 4 {
		t.Errorf("faces = %d and %d, want 2 and 4", m.NumFaces(), c.NumFaces())
	}
	mustValidate(t, m)
	mustValidate(t, c)
}
