// Package geom holds the small geometric value types shared by the predicate
// kernel, the mesh store and the polygon kernel solver. Points are sdfx
// vectors; planes and rays are plain values with no ownership semantics.
package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/geo/r3"
)

// Axis names a coordinate axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Drop projects p onto the plane orthogonal to axis, keeping the two
// remaining coordinates in cyclic order (drop x -> (y,z), drop y -> (z,x),
// drop z -> (x,y)). Cyclic order preserves orientation for normals pointing
// along the positive dropped axis.
func Drop(p v3.Vec, axis Axis) v2.Vec {
	switch axis {
	case AxisX:
		return v2.Vec{X: p.Y, Y: p.Z}
	case AxisY:
		return v2.Vec{X: p.Z, Y: p.X}
	default:
		return v2.Vec{X: p.X, Y: p.Y}
	}
}

// Lift embeds a 2D point in the z=0 plane.
func Lift(p v2.Vec) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: 0}
}

// ToR3 converts an sdfx vector to a golang/geo vector.
func ToR3(p v3.Vec) r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

// FromR3 converts a golang/geo vector to an sdfx vector.
func FromR3(v r3.Vector) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Bounds2 returns the axis-aligned bounding box of pts. The zero box is
// returned for an empty slice.
func Bounds2(pts []v2.Vec) sdf.Box2 {
	if len(pts) == 0 {
		return sdf.Box2{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = v2.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
		hi = v2.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
	}
	return sdf.Box2{Min: lo, Max: hi}
}

// Bounds3 returns the axis-aligned bounding box of pts.
func Bounds3(pts []v3.Vec) sdf.Box3 {
	if len(pts) == 0 {
		return sdf.Box3{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = v3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = v3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return sdf.Box3{Min: lo, Max: hi}
}

// Diagonal2 returns the length of the diagonal of b.
func Diagonal2(b sdf.Box2) float64 {
	return b.Max.Sub(b.Min).Length()
}

// Diagonal3 returns the length of the diagonal of b.
func Diagonal3(b sdf.Box3) float64 {
	return b.Max.Sub(b.Min).Length()
}

// Centroid3 returns the average of pts.
func Centroid3(pts []v3.Vec) v3.Vec {
	var c v3.Vec
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.MulScalar(1 / float64(len(pts)))
}

// Centroid2 returns the average of pts.
func Centroid2(pts []v2.Vec) v2.Vec {
	var c v2.Vec
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.MulScalar(1 / float64(len(pts)))
}

// TriangleNormal returns the unit normal of triangle abc (right-hand rule),
// or the zero vector for a degenerate triangle.
func TriangleNormal(a, b, c v3.Vec) v3.Vec {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l == 0 {
		return v3.Vec{}
	}
	return n.MulScalar(1 / l)
}

// TriangleArea3 returns the unsigned area of triangle abc.
func TriangleArea3(a, b, c v3.Vec) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a)).Length()
}

// PolygonNormal returns the unit Newell normal of a (possibly non-planar)
// polygon, or the zero vector when the polygon has no area.
func PolygonNormal(pts []v3.Vec) v3.Vec {
	var n v3.Vec
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	l := n.Length()
	if l == 0 {
		return v3.Vec{}
	}
	return n.MulScalar(1 / l)
}

// PolygonArea3 returns the unsigned area of a planar polygon using the
// Newell vector.
func PolygonArea3(pts []v3.Vec) float64 {
	var n v3.Vec
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		n = n.Add(a.Cross(b))
	}
	return 0.5 * n.Length()
}

// PolygonArea2 returns the signed shoelace area of a 2D polygon; positive
// for counter-clockwise rings.
func PolygonArea2(pts []v2.Vec) float64 {
	var a float64
	for i := range pts {
		p := pts[i]
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// TetVolume returns the signed volume of tetrahedron abcd, positive when d
// lies on the side of abc pointed to by the right-hand normal.
func TetVolume(a, b, c, d v3.Vec) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Dot(d.Sub(a)) / 6
}
