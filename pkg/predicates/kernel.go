package predicates

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/meshkit/pkg/geom"
)

// Kernel evaluates geometric predicates through a Backend. A Kernel has no
// mutable state and is safe for concurrent use.
type Kernel struct {
	b Backend
}

// New returns a Kernel using the backend for mode.
func New(mode Mode) *Kernel {
	return &Kernel{b: NewBackend(mode)}
}

// NewWithBackend returns a Kernel using b.
func NewWithBackend(b Backend) *Kernel {
	return &Kernel{b: b}
}

// Default returns an inexact Kernel.
func Default() *Kernel {
	return New(Inexact)
}

// Mode returns the backend mode.
func (k *Kernel) Mode() Mode { return k.b.Mode() }

// Backend returns the arithmetic backend.
func (k *Kernel) Backend() Backend { return k.b }

// Orient2D returns twice the signed area of abc, positive for CCW order.
func (k *Kernel) Orient2D(a, b, c v2.Vec) float64 { return k.b.Orient2D(a, b, c) }

// Orient3D returns six times the signed volume of abcd in Shewchuk's
// convention: positive when d lies below the CCW plane abc.
func (k *Kernel) Orient3D(a, b, c, d v3.Vec) float64 { return k.b.Orient3D(a, b, c, d) }

// InCircle is positive when d is inside the circle through CCW abc.
func (k *Kernel) InCircle(a, b, c, d v2.Vec) float64 { return k.b.InCircle(a, b, c, d) }

// InSphere is positive when e is inside the sphere through abcd, with
// Orient3D(a, b, c, d) > 0.
func (k *Kernel) InSphere(a, b, c, d, e v3.Vec) float64 { return k.b.InSphere(a, b, c, d, e) }

// ---------------------------------------------------------------------------
// Collinearity, coplanarity and degeneracy
// ---------------------------------------------------------------------------

// PointsAreColinear2D reports whether triangle p0 p1 p2 has zero area.
func (k *Kernel) PointsAreColinear2D(p0, p1, p2 v2.Vec) bool {
	return k.b.Orient2D(p0, p1, p2) == 0
}

// PointsAreColinear3D reports whether all three axis-aligned projections of
// triangle p0 p1 p2 have zero area.
func (k *Kernel) PointsAreColinear3D(p0, p1, p2 v3.Vec) bool {
	for _, ax := range []geom.Axis{geom.AxisZ, geom.AxisY, geom.AxisX} {
		if k.b.Orient2D(geom.Drop(p0, ax), geom.Drop(p1, ax), geom.Drop(p2, ax)) != 0 {
			return false
		}
	}
	return true
}

// PointsAreCoplanar3D reports whether tet p0 p1 p2 p3 has zero volume.
func (k *Kernel) PointsAreCoplanar3D(p0, p1, p2, p3 v3.Vec) bool {
	return k.b.Orient3D(p0, p1, p2, p3) == 0
}

// VecEquals2D reports exact equality.
func (k *Kernel) VecEquals2D(a, b v2.Vec) bool { return a.X == b.X && a.Y == b.Y }

// VecEquals3D reports exact equality.
func (k *Kernel) VecEquals3D(a, b v3.Vec) bool { return a.X == b.X && a.Y == b.Y && a.Z == b.Z }

// SegmentIsDegenerate2D reports whether s0 == s1.
func (k *Kernel) SegmentIsDegenerate2D(s0, s1 v2.Vec) bool { return k.VecEquals2D(s0, s1) }

// SegmentIsDegenerate3D reports whether s0 == s1.
func (k *Kernel) SegmentIsDegenerate3D(s0, s1 v3.Vec) bool { return k.VecEquals3D(s0, s1) }

// TriangleIsDegenerate2D reports whether t0, t1, t2 are collinear.
func (k *Kernel) TriangleIsDegenerate2D(t0, t1, t2 v2.Vec) bool {
	return k.PointsAreColinear2D(t0, t1, t2)
}

// TriangleIsDegenerate3D reports whether t0, t1, t2 are collinear.
func (k *Kernel) TriangleIsDegenerate3D(t0, t1, t2 v3.Vec) bool {
	return k.PointsAreColinear3D(t0, t1, t2)
}

// TetIsDegenerate reports whether t0, t1, t2, t3 are coplanar.
func (k *Kernel) TetIsDegenerate(t0, t1, t2, t3 v3.Vec) bool {
	return k.PointsAreCoplanar3D(t0, t1, t2, t3)
}

// ---------------------------------------------------------------------------
// Projection helpers
// ---------------------------------------------------------------------------

// affineRank3 returns 0 when all points coincide, 1 when they are collinear
// and 2 otherwise (callers only pass coplanar sets).
func (k *Kernel) affineRank3(pts []v3.Vec) int {
	rank := 0
	for i := 1; i < len(pts); i++ {
		if !k.VecEquals3D(pts[0], pts[i]) {
			rank = 1
			break
		}
	}
	if rank == 0 {
		return 0
	}
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for l := j + 1; l < len(pts); l++ {
				if !k.PointsAreColinear3D(pts[i], pts[j], pts[l]) {
					return 2
				}
			}
		}
	}
	return 1
}

// affineRank2 is affineRank3 for planar points.
func (k *Kernel) affineRank2(pts []v2.Vec) int {
	rank := 0
	for i := 1; i < len(pts); i++ {
		if !k.VecEquals2D(pts[0], pts[i]) {
			rank = 1
			break
		}
	}
	if rank == 0 {
		return 0
	}
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for l := j + 1; l < len(pts); l++ {
				if !k.PointsAreColinear2D(pts[i], pts[j], pts[l]) {
					return 2
				}
			}
		}
	}
	return 1
}

// projection picks an axis whose orthogonal projection maps the coplanar
// point set pts onto the plane without losing affine rank. Such a
// projection is an affine bijection on the supporting plane (or line), so
// every orientation test on the projected points answers the same question
// as in 3D. Axes are tried in z, y, x order; the choice is deterministic.
func (k *Kernel) projection(pts []v3.Vec) geom.Axis {
	want := k.affineRank3(pts)
	proj := make([]v2.Vec, len(pts))
	for _, ax := range []geom.Axis{geom.AxisZ, geom.AxisY, geom.AxisX} {
		for i, p := range pts {
			proj[i] = geom.Drop(p, ax)
		}
		if k.affineRank2(proj) == want {
			return ax
		}
	}
	return geom.AxisZ
}

func drop(ax geom.Axis, pts ...v3.Vec) []v2.Vec {
	out := make([]v2.Vec, len(pts))
	for i, p := range pts {
		out[i] = geom.Drop(p, ax)
	}
	return out
}

// sign returns -1, 0 or 1.
func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
