package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Ray is an origin plus a normalized direction.
type Ray struct {
	Origin v3.Vec
	Dir    v3.Vec
}

// NewRay returns a ray starting at p. dir is normalized.
func NewRay(p, dir v3.Vec) Ray {
	if l := dir.Length(); l > 0 {
		dir = dir.MulScalar(1 / l)
	}
	return Ray{Origin: p, Dir: dir}
}

// ToPlanes returns two planes whose intersection is the supporting line of
// the ray. The normals are picked among the three axis-aligned rotations of
// the direction, skipping the ones that vanish. A zero direction yields no
// planes.
func (r Ray) ToPlanes() []Plane {
	d := r.Dir
	n0 := v3.Vec{X: -d.Y, Y: d.X, Z: 0}
	n1 := v3.Vec{X: -d.Z, Y: 0, Z: d.X}
	n2 := v3.Vec{X: 0, Y: -d.Z, Z: d.Y}

	planes := make([]Plane, 0, 2)
	if n0.Length() > 0 {
		planes = append(planes, NewPlane(r.Origin, n0))
	}
	if n1.Length() > 0 {
		planes = append(planes, NewPlane(r.Origin, n1))
	}
	if n2.Length() > 0 && len(planes) < 2 {
		planes = append(planes, NewPlane(r.Origin, n2))
	}
	return planes
}

// OnPositiveHalfSpace reports whether p lies in front of the ray origin
// (on the closed half space the direction points to).
func (r Ray) OnPositiveHalfSpace(p v3.Vec) bool {
	return p.Sub(r.Origin).Dot(r.Dir) >= 0
}

// DistToPoint returns the distance from p to the half-line.
func (r Ray) DistToPoint(p v3.Vec) float64 {
	w := p.Sub(r.Origin)
	t := w.Dot(r.Dir)
	if t <= 0 {
		return w.Length()
	}
	uu := r.Dir.Dot(r.Dir)
	foot := r.Origin.Add(r.Dir.MulScalar(t / uu))
	return p.Sub(foot).Length()
}
