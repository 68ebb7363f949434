// Package polykernel computes the kernel of a simple polygon: the convex
// region from which the whole polygon boundary is visible. The kernel is
// the intersection of the half-planes left of every edge. Each half-plane
// is represented by a bounded quad, sized from the polygon's bounding box
// diagonal, so clipping never works with points at infinity. Kernel corners
// that coincide with input vertices are reported with the input coordinates.
//
// An empty kernel is a normal result for polygons that are not
// star-shaped and is reported as zero area with a nil kernel.
package polykernel

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"go.uber.org/zap"

	"github.com/chazu/meshkit/pkg/geom"
	"github.com/chazu/meshkit/pkg/predicates"
)

// Solver computes polygon kernels with a configurable clipper.
type Solver struct {
	pred    *predicates.Kernel
	clipper Clipper
	log     *zap.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithClipper replaces the built-in convex clipper.
func WithClipper(c Clipper) Option {
	return func(s *Solver) { s.clipper = c }
}

// WithPredicates sets the predicate kernel used by the built-in clipper
// and for output cleanup.
func WithPredicates(k *predicates.Kernel) Option {
	return func(s *Solver) { s.pred = k }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) { s.log = l }
}

// New returns a Solver. Without options it uses the inexact predicate
// kernel and the built-in ConvexClipper.
func New(opts ...Option) *Solver {
	s := &Solver{}
	for _, o := range opts {
		o(s)
	}
	if s.pred == nil {
		s.pred = predicates.Default()
	}
	if s.clipper == nil {
		s.clipper = NewConvexClipper(s.pred)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

var defaultSolver = New()

// Kernel computes the kernel of poly with the default solver.
func Kernel(poly []v2.Vec) (float64, []v2.Vec) {
	return defaultSolver.Kernel(poly)
}

// Kernel3D computes the kernel of poly with the default solver.
func Kernel3D(poly []v3.Vec) (float64, []v3.Vec) {
	return defaultSolver.Kernel3D(poly)
}

// Kernel returns the area and the CCW vertices of the kernel of poly. The
// polygon should be simple; a clockwise ring is reversed first. Zero-length
// edges are skipped. Fewer than three points, or an empty intersection,
// give (0, nil). The kernel starts at its lowest, then leftmost, vertex.
func (s *Solver) Kernel(poly []v2.Vec) (float64, []v2.Vec) {
	if len(poly) < 3 {
		return 0, nil
	}
	ring := append([]v2.Vec(nil), poly...)
	if geom.PolygonArea2(ring) < 0 {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}
	delta := geom.Diagonal2(geom.Bounds2(ring))
	if delta == 0 {
		return 0, nil
	}

	var k []v2.Vec
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		q, ok := halfPlane(a, b, delta)
		if !ok {
			continue
		}
		if k == nil {
			k = q
			continue
		}
		k = s.clipper.Intersect(k, q)
		if len(k) < 3 {
			s.log.Debug("polygon has no kernel", zap.Int("edge", i), zap.Int("points", len(poly)))
			return 0, nil
		}
	}
	if k == nil {
		return 0, nil
	}

	snap(k, ring, 1e-10*delta)
	k = s.cleanup(k, delta)
	if len(k) < 3 {
		return 0, nil
	}
	area := geom.PolygonArea2(k)
	if area < 0 {
		for i, j := 0, len(k)-1; i < j; i, j = i+1, j-1 {
			k[i], k[j] = k[j], k[i]
		}
		area = -area
	}
	if area == 0 {
		return 0, nil
	}
	return area, rotateToLowest(k, 1e-12*delta)
}

// Kernel3D solves the kernel of poly projected onto the xy plane and lifts
// the result back with z = 0.
func (s *Solver) Kernel3D(poly []v3.Vec) (float64, []v3.Vec) {
	flat := make([]v2.Vec, len(poly))
	for i, p := range poly {
		flat[i] = geom.Drop(p, geom.AxisZ)
	}
	area, k := s.Kernel(flat)
	if k == nil {
		return 0, nil
	}
	out := make([]v3.Vec, len(k))
	for i, p := range k {
		out[i] = geom.Lift(p)
	}
	return area, out
}

// halfPlane returns the CCW quad covering the part of the left half-plane
// of a->b that can contain the kernel.
func halfPlane(a, b v2.Vec, delta float64) ([]v2.Vec, bool) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return nil, false
	}
	u := d.MulScalar(1 / l)
	v := v2.Vec{X: -u.Y, Y: u.X}
	a0 := a.Sub(u.MulScalar(delta))
	b0 := b.Add(u.MulScalar(delta))
	return []v2.Vec{
		a0,
		b0,
		b0.Add(v.MulScalar(delta)),
		a0.Add(v.MulScalar(delta)),
	}, true
}

// snap replaces every point of k lying within eps of a ring vertex with
// that vertex. Corners are interpolated crossings of the half-plane quads,
// so a corner that is an input vertex otherwise carries rounding noise.
func snap(k, ring []v2.Vec, eps float64) {
	for i, p := range k {
		for _, r := range ring {
			if p.Sub(r).Length() <= eps {
				k[i] = r
				break
			}
		}
	}
}

// cleanup drops repeated and collinear vertices left behind by clipping.
// Tolerances scale with the polygon size.
func (s *Solver) cleanup(k []v2.Vec, delta float64) []v2.Vec {
	eps := 1e-12 * delta
	var out []v2.Vec
	for _, p := range k {
		if n := len(out); n > 0 && p.Sub(out[n-1]).Length() <= eps {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Sub(out[len(out)-1]).Length() <= eps {
		out = out[:len(out)-1]
	}
	area := eps * delta
	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := range out {
			prev := out[(i+len(out)-1)%len(out)]
			next := out[(i+1)%len(out)]
			if math.Abs(s.pred.Orient2D(prev, out[i], next)) <= area {
				out = append(out[:i], out[i+1:]...)
				changed = true
				break
			}
		}
	}
	return out
}

// rotateToLowest starts k at its lowest vertex, breaking ties within eps
// by the smaller x.
func rotateToLowest(k []v2.Vec, eps float64) []v2.Vec {
	first := 0
	for i, p := range k {
		q := k[first]
		if p.Y < q.Y-eps || (math.Abs(p.Y-q.Y) <= eps && p.X < q.X) {
			first = i
		}
	}
	return append(append([]v2.Vec(nil), k[first:]...), k[:first]...)
}
