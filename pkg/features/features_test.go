package features_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/geo/s1"

	"github.com/chazu/meshkit/pkg/features"
	"github.com/chazu/meshkit/pkg/geom"
	"github.com/chazu/meshkit/pkg/mesh"
)

func vec(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

func cube(t *testing.T) *mesh.Mesh {
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

func square(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.NewSurface(
		[]v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0)},
		[][]int{{0, 1, 2}, {0, 2, 3}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMarkSharpCreases(t *testing.T) {
	tests := []struct {
		name   string
		build  func(*testing.T) *mesh.Mesh
		thresh s1.Angle
		want   int
	}{
		{"cube at 89 degrees", cube, 89 * s1.Degree, 12},
		{"cube at 91 degrees", cube, 91 * s1.Degree, 0},
		{"cube at default", cube, features.DefaultCreaseAngle, 12},
		{"flat square", square, 1 * s1.Degree, 0},
		{"flat square at zero", square, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.build(t)
			if got := features.MarkSharpCreases(m, tt.thresh); got != tt.want {
				t.Errorf("MarkSharpCreases = %d, want %d", got, tt.want)
			}
			if got := m.NumMarkedEdges(); got != tt.want {
				t.Errorf("NumMarkedEdges = %d, want %d", got, tt.want)
			}
			for eid := 0; eid < m.NumEdges(); eid++ {
				if m.EdgeIsBoundary(eid) && m.EdgeIsMarked(eid) {
					t.Errorf("boundary edge %d marked", eid)
				}
			}
		})
	}
}

func TestCreaseCandidates(t *testing.T) {
	m := cube(t)
	if got := features.CreaseCandidates(m); len(got) != 0 {
		t.Errorf("unmarked cube candidates = %v", got)
	}
	features.MarkSharpCreases(m, 89*s1.Degree)
	if got := features.CreaseCandidates(m); !slices.Equal(got, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("CreaseCandidates = %v, want all six faces", got)
	}

	s := square(t)
	if err := s.EdgeMark(0); err != nil {
		t.Fatal(err)
	}
	if got := features.CreaseCandidates(s); len(got) != 0 {
		t.Errorf("one marked edge gives candidates %v", got)
	}
	if err := s.EdgeMark(1); err != nil {
		t.Fatal(err)
	}
	if got := features.CreaseCandidates(s); !slices.Equal(got, []int{0}) {
		t.Errorf("CreaseCandidates = %v, want [0]", got)
	}
}

func TestPadCreases(t *testing.T) {
	m := cube(t)
	features.MarkSharpCreases(m, 89*s1.Degree)

	n, err := features.PadCreases(m)
	if err != nil {
		t.Fatalf("PadCreases: %v", err)
	}
	if n != 6 {
		t.Errorf("split %d faces, want 6", n)
	}
	if m.NumFaces() != 24 || m.NumVerts() != 14 || m.NumMarkedEdges() != 12 {
		t.Errorf("faces %d verts %d marked %d, want 24/14/12", m.NumFaces(), m.NumVerts(), m.NumMarkedEdges())
	}
	if math.Abs(m.Area()-6) > 1e-9 {
		t.Errorf("Area() = %v, want 6", m.Area())
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}

	n, err = features.PadCreases(m)
	if err != nil || n != 0 {
		t.Errorf("second pass = (%d, %v), want (0, nil)", n, err)
	}
	if m.NumFaces() != 24 {
		t.Errorf("second pass changed face count to %d", m.NumFaces())
	}
}

func TestPadCreasesIsDeterministic(t *testing.T) {
	a := cube(t)
	features.MarkSharpCreases(a, 89*s1.Degree)
	b := a.Clone()
	if _, err := features.PadCreases(a); err != nil {
		t.Fatal(err)
	}
	if _, err := features.PadCreases(b); err != nil {
		t.Fatal(err)
	}
	if !slices.EqualFunc(a.Faces(), b.Faces(), slices.Equal[[]int]) {
		t.Error("padding the same input twice gave different faces")
	}
}

func TestPadCreasesPolyhedral(t *testing.T) {
	m, err := mesh.NewTetmesh(
		[]v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), vec(0, 0, 1)},
		[][4]int{{0, 1, 2, 3}},
	)
	if err != nil {
		t.Fatal(err)
	}
	for eid := 0; eid < m.NumEdges(); eid++ {
		if err := m.EdgeMark(eid); err != nil {
			t.Fatal(err)
		}
	}
	n, err := features.PadCreases(m)
	if !errors.Is(err, mesh.ErrCapability) || n != 0 {
		t.Errorf("PadCreases = (%d, %v), want (0, ErrCapability)", n, err)
	}
}

func TestMarkedEdgePairs(t *testing.T) {
	m := square(t)
	if got := features.MarkedEdgePairs(m); len(got) != 0 {
		t.Errorf("MarkedEdgePairs = %v, want none", got)
	}
	if err := m.EdgeMark(2); err != nil {
		t.Fatal(err)
	}
	if got := features.MarkedEdgePairs(m); !slices.Equal(got, [][2]int{{2, 0}}) {
		t.Errorf("MarkedEdgePairs = %v, want [[2 0]]", got)
	}
}

func TestSelfIntersections(t *testing.T) {
	pairs, err := features.SelfIntersections(cube(t))
	if err != nil || len(pairs) != 0 {
		t.Errorf("cube = (%v, %v), want no pairs", pairs, err)
	}

	m, err := mesh.NewSurface(
		[]v3.Vec{
			vec(0, 0, 0), vec(2, 0, 0), vec(0, 2, 0),
			vec(0.5, 0.5, -1), vec(0.6, 0.5, 1), vec(0.5, 0.6, 1),
			vec(5, 5, 5), vec(6, 5, 5), vec(5, 6, 5),
		},
		[][]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}},
	)
	if err != nil {
		t.Fatal(err)
	}
	pairs, err = features.SelfIntersections(m)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(pairs, [][2]int{{0, 1}}) {
		t.Errorf("SelfIntersections = %v, want [[0 1]]", pairs)
	}
}

func TestRayHits(t *testing.T) {
	tests := []struct {
		name   string
		origin v3.Vec
		dir    v3.Vec
		want   []int
	}{
		{"through bottom and top", vec(0.5, 0.5, -1), vec(0, 0, 1), []int{0, 1}},
		{"slanted", vec(0.2, 0.3, -1), vec(0.1, 0.1, 1), []int{0, 1}},
		{"from inside", vec(0.3, 0.4, 0.5), vec(1, 0, 0), []int{5}},
		{"pointing away", vec(0.5, 0.5, -1), vec(0, 0, -1), nil},
		{"passing beside", vec(3, 3, -1), vec(0, 0, 1), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := features.RayHits(cube(t), geom.NewRay(tt.origin, tt.dir))
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("RayHits = %v, want %v", got, tt.want)
			}
		})
	}
}
