package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Plane is a point plus a unit normal.
type Plane struct {
	Point  v3.Vec
	Normal v3.Vec
}

// NewPlane returns the plane through p with normal n. The normal is
// normalized; a zero normal yields a plane with a zero normal.
func NewPlane(p, n v3.Vec) Plane {
	if l := n.Length(); l > 0 {
		n = n.MulScalar(1 / l)
	}
	return Plane{Point: p, Normal: n}
}

// PlaneFromPoints returns the plane through a, b, c oriented by the
// right-hand rule.
func PlaneFromPoints(a, b, c v3.Vec) Plane {
	return NewPlane(a, b.Sub(a).Cross(c.Sub(a)))
}

// SignedDistance returns the signed distance of p from the plane, positive
// on the side the normal points to.
func (pl Plane) SignedDistance(p v3.Vec) float64 {
	return p.Sub(pl.Point).Dot(pl.Normal)
}

// Project returns the orthogonal projection of p onto the plane.
func (pl Plane) Project(p v3.Vec) v3.Vec {
	return p.Sub(pl.Normal.MulScalar(pl.SignedDistance(p)))
}

// IsDegenerate reports whether the plane has no usable normal.
func (pl Plane) IsDegenerate() bool {
	return pl.Normal.Length() == 0
}
