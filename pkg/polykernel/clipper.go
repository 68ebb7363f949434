package polykernel

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/meshkit/pkg/predicates"
)

// Clipper is the polygon clipping capability the solver needs. Backends
// can be swapped without changing the solver.
type Clipper interface {
	// ClipHalfPlane returns the part of the convex polygon poly that lies
	// left of, or on, the directed line a->b.
	ClipHalfPlane(poly []v2.Vec, a, b v2.Vec) []v2.Vec
	// Intersect returns the intersection of two convex CCW polygons, or
	// nil when they share no area.
	Intersect(p, q []v2.Vec) []v2.Vec
}

// Compile-time interface check.
var _ Clipper = (*ConvexClipper)(nil)

// ConvexClipper is the built-in Sutherland-Hodgman clipper. Point sides are
// classified with the predicate kernel's Orient2D.
type ConvexClipper struct {
	pred *predicates.Kernel
}

// NewConvexClipper returns a clipper using k, or the default kernel when k
// is nil.
func NewConvexClipper(k *predicates.Kernel) *ConvexClipper {
	if k == nil {
		k = predicates.Default()
	}
	return &ConvexClipper{pred: k}
}

// ClipHalfPlane keeps the part of poly left of a->b. Vertices on the line
// are kept and no crossing point is emitted for them, so the output has no
// duplicate corners.
func (c *ConvexClipper) ClipHalfPlane(poly []v2.Vec, a, b v2.Vec) []v2.Vec {
	if len(poly) == 0 {
		return nil
	}
	side := make([]float64, len(poly))
	for i, p := range poly {
		side[i] = c.pred.Orient2D(a, b, p)
	}
	var out []v2.Vec
	for i, cur := range poly {
		j := (i + 1) % len(poly)
		sc, sn := side[i], side[j]
		if sc >= 0 {
			out = append(out, cur)
		}
		if (sc > 0 && sn < 0) || (sc < 0 && sn > 0) {
			t := sc / (sc - sn)
			out = append(out, cur.Add(poly[j].Sub(cur).MulScalar(t)))
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

// Intersect clips p by every edge of q.
func (c *ConvexClipper) Intersect(p, q []v2.Vec) []v2.Vec {
	out := p
	for i := range q {
		out = c.ClipHalfPlane(out, q[i], q[(i+1)%len(q)])
		if out == nil {
			return nil
		}
	}
	return out
}
