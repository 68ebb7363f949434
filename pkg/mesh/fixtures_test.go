package mesh

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func vec(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// cubeVerts and cubeFaces describe a unit cube with outward quads, listed
// bottom, top, front, back, left, right.
var cubeVerts = []v3.Vec{
	vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0),
	vec(0, 0, 1), vec(1, 0, 1), vec(1, 1, 1), vec(0, 1, 1),
}

var cubeFaces = [][]int{
	{0, 3, 2, 1},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{3, 7, 6, 2},
	{0, 4, 7, 3},
	{1, 2, 6, 5},
}

func newCube(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewSurface(cubeVerts, cubeFaces)
	if err != nil {
		t.Fatalf("NewSurface(cube): %v", err)
	}
	return m
}

// newSquare returns the unit square split along the 0-2 diagonal.
func newSquare(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewSurface(
		[]v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0)},
		[][]int{{0, 1, 2}, {0, 2, 3}},
	)
	if err != nil {
		t.Fatalf("NewSurface(square): %v", err)
	}
	return m
}

// newHexFan returns a regular hexagon fanned around centre vertex 0.
func newHexFan(t *testing.T) *Mesh {
	t.Helper()
	verts := []v3.Vec{vec(0, 0, 0)}
	for k := 0; k < 6; k++ {
		a := float64(k) * math.Pi / 3
		verts = append(verts, vec(math.Cos(a), math.Sin(a), 0))
	}
	var faces [][]int
	for k := 1; k <= 6; k++ {
		faces = append(faces, []int{0, k, k%6 + 1})
	}
	m, err := NewSurface(verts, faces)
	if err != nil {
		t.Fatalf("NewSurface(hex fan): %v", err)
	}
	return m
}

// newRing returns a square annulus of four quads with two boundary loops.
func newRing(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewSurface(
		[]v3.Vec{
			vec(-2, -2, 0), vec(2, -2, 0), vec(2, 2, 0), vec(-2, 2, 0),
			vec(-1, -1, 0), vec(1, -1, 0), vec(1, 1, 0), vec(-1, 1, 0),
		},
		[][]int{{0, 1, 5, 4}, {1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7}},
	)
	if err != nil {
		t.Fatalf("NewSurface(ring): %v", err)
	}
	return m
}

var tetVerts = []v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), vec(0, 0, 1)}

func newTet(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewTetmesh(tetVerts, [][4]int{{0, 1, 2, 3}})
	if err != nil {
		t.Fatalf("NewTetmesh: %v", err)
	}
	return m
}

// newHex returns the unit cube as a single polyhedron.
func newHex(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewPolyhedral(cubeVerts, cubeFaces,
		[][]int{{0, 1, 2, 3, 4, 5}},
		[][]bool{{true, true, true, true, true, true}})
	if err != nil {
		t.Fatalf("NewPolyhedral(hex): %v", err)
	}
	return m
}

func mustValidate(t *testing.T, m *Mesh) {
	t.Helper()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
