package features

import (
	"fmt"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"
	"go.uber.org/zap"

	"github.com/chazu/meshkit/pkg/geom"
	"github.com/chazu/meshkit/pkg/mesh"
	"github.com/chazu/meshkit/pkg/predicates"
)

// triangle is one fan triangle of a mesh face, indexed by its bounds.
type triangle struct {
	face int
	p    [3]v3.Vec
	box  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (t *triangle) Bounds() rtreego.Rect { return t.box }

// SelfIntersections returns the pairs of faces that cross each other
// without sharing a proper sub-simplex. Polygonal faces are fan
// triangulated and two faces are reported when any of their triangles
// intersect or overlap. Degenerate triangles are skipped. Pairs are
// ordered (lower id first) and sorted.
func SelfIntersections(m *mesh.Mesh) ([][2]int, error) {
	k := m.Predicates()
	tris, skipped, err := fanTriangles(m)
	if err != nil {
		return nil, fmt.Errorf("features: self intersections: %w", err)
	}

	spatial := make([]rtreego.Spatial, len(tris))
	for i, t := range tris {
		spatial[i] = t
	}
	tree := rtreego.NewTree(3, 4, 16, spatial...)

	seen := make(map[[2]int]bool)
	var out [][2]int
	for _, a := range tris {
		for _, s := range tree.SearchIntersect(a.box) {
			b := s.(*triangle)
			if b.face <= a.face {
				continue
			}
			key := [2]int{a.face, b.face}
			if seen[key] {
				continue
			}
			r, err := k.TriangleTriangle3D(a.p[0], a.p[1], a.p[2], b.p[0], b.p[1], b.p[2])
			if err != nil {
				return nil, fmt.Errorf("features: self intersections: %w", err)
			}
			if r == predicates.Intersect || r == predicates.Overlap {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	slices.SortFunc(out, func(x, y [2]int) int {
		if x[0] != y[0] {
			return x[0] - y[0]
		}
		return x[1] - y[1]
	})
	m.Logger().Debug("self intersections",
		zap.Int("triangles", len(tris)),
		zap.Int("skipped", skipped),
		zap.Int("pairs", len(out)))
	return out, nil
}

// fanTriangles splits every face into a fan of indexed triangles and
// returns them with the number of degenerate triangles it left out.
func fanTriangles(m *mesh.Mesh) ([]*triangle, int, error) {
	k := m.Predicates()
	pad := 1e-9 * (geom.Diagonal3(m.BoundingBox()) + 1)

	var tris []*triangle
	skipped := 0
	for fid := 0; fid < m.NumFaces(); fid++ {
		pts := m.FacePoints(fid)
		for i := 1; i+1 < len(pts); i++ {
			p := [3]v3.Vec{pts[0], pts[i], pts[i+1]}
			if k.TriangleIsDegenerate3D(p[0], p[1], p[2]) {
				skipped++
				continue
			}
			box, err := boundsOf(p, pad)
			if err != nil {
				return nil, 0, fmt.Errorf("face %d: %w", fid, err)
			}
			tris = append(tris, &triangle{face: fid, p: p, box: box})
		}
	}
	return tris, skipped, nil
}

// boundsOf returns the bounding rectangle of p grown by pad on every side,
// so flat and axis-aligned triangles still get positive extents.
func boundsOf(p [3]v3.Vec, pad float64) (rtreego.Rect, error) {
	b := geom.Bounds3(p[:])
	lo := rtreego.Point{b.Min.X - pad, b.Min.Y - pad, b.Min.Z - pad}
	size := b.Max.Sub(b.Min)
	return rtreego.NewRect(lo, []float64{size.X + 2*pad, size.Y + 2*pad, size.Z + 2*pad})
}
