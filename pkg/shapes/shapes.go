// Package shapes builds input surface meshes. Boxes are built exactly from
// quads; curved solids are sampled from sdfx signed distance functions
// with uniform marching cubes and welded into an indexed triangle mesh.
package shapes

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/meshkit/pkg/geom"
	"github.com/chazu/meshkit/pkg/mesh"
)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 64

// Box returns an axis-aligned box of outward quads with its minimum corner
// at the origin, so translations place the corner where asked.
func Box(x, y, z float64, opts ...mesh.Option) (*mesh.Mesh, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("shapes: box %gx%gx%g: dimensions must be positive", x, y, z)
	}
	verts := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: x, Y: 0, Z: 0}, {X: x, Y: y, Z: 0}, {X: 0, Y: y, Z: 0},
		{X: 0, Y: 0, Z: z}, {X: x, Y: 0, Z: z}, {X: x, Y: y, Z: z}, {X: 0, Y: y, Z: z},
	}
	faces := [][]int{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4}, // front
		{3, 7, 6, 2}, // back
		{0, 4, 7, 3}, // left
		{1, 2, 6, 5}, // right
	}
	return mesh.NewSurface(verts, faces, opts...)
}

// Sphere samples a sphere of the given radius centred on the origin.
func Sphere(radius float64, cells int, opts ...mesh.Option) (*mesh.Mesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("shapes: sphere: %w", err)
	}
	return FromSDF(s, cells, opts...)
}

// Cylinder samples a z-aligned cylinder centred on the origin.
func Cylinder(height, radius float64, cells int, opts ...mesh.Option) (*mesh.Mesh, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("shapes: cylinder: %w", err)
	}
	return FromSDF(s, cells, opts...)
}

// FromSDF renders s with uniform marching cubes and welds coincident
// corners. Triangles that collapse onto an edge or a point after welding
// are dropped. cells <= 0 selects DefaultCells.
func FromSDF(s sdf.SDF3, cells int, opts ...mesh.Option) (*mesh.Mesh, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	if len(tris) == 0 {
		return nil, fmt.Errorf("shapes: marching cubes produced no triangles")
	}

	tol := 1e-6 * geom.Diagonal3(s.BoundingBox())
	w := newWelder(tol)
	var faces [][]int
	for _, t := range tris {
		f := []int{w.id(t[0]), w.id(t[1]), w.id(t[2])}
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			continue
		}
		faces = append(faces, f)
	}
	m, err := mesh.NewSurface(w.verts, faces, opts...)
	if err != nil {
		return nil, fmt.Errorf("shapes: %w", err)
	}
	return m, nil
}

// welder merges points that fall in the same tolerance cell.
type welder struct {
	tol   float64
	ids   map[[3]int64]int
	verts []v3.Vec
}

func newWelder(tol float64) *welder {
	if tol <= 0 {
		tol = 1e-12
	}
	return &welder{tol: tol, ids: make(map[[3]int64]int)}
}

func (w *welder) id(p v3.Vec) int {
	k := [3]int64{
		int64(math.Round(p.X / w.tol)),
		int64(math.Round(p.Y / w.tol)),
		int64(math.Round(p.Z / w.tol)),
	}
	if id, ok := w.ids[k]; ok {
		return id
	}
	id := len(w.verts)
	w.ids[k] = id
	w.verts = append(w.verts, p)
	return id
}
