package predicates

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/meshkit/pkg/geom"
)

// RayHitsTriangle reports whether ray r meets the closed triangle t0 t1 t2.
// A ray starting on the triangle hits it. A ray lying in the triangle's
// plane never does; callers wanting coplanar contact test the edges with
// SegmentSegment3D.
func (k *Kernel) RayHitsTriangle(r geom.Ray, t0, t1, t2 v3.Vec) (bool, error) {
	const op = "RayHitsTriangle"
	if r.Dir.Length() == 0 {
		return false, degenerate(op, "ray", 0)
	}
	if k.TriangleIsDegenerate3D(t0, t1, t2) {
		return false, degenerate(op, "triangle", 1)
	}
	o := r.Origin
	q := o.Add(r.Dir)

	// The supporting line pierces the triangle when it passes on the same
	// side of all three edges.
	a := sign(k.Orient3D(o, q, t0, t1))
	b := sign(k.Orient3D(o, q, t1, t2))
	c := sign(k.Orient3D(o, q, t2, t0))
	if a == 0 && b == 0 && c == 0 {
		return false, nil
	}
	if (a < 0 || b < 0 || c < 0) && (a > 0 || b > 0 || c > 0) {
		return false, nil
	}

	// Orient3D is affine along the line, so the crossing is at or ahead of
	// the origin when the value moves from do towards zero.
	do := k.Orient3D(t0, t1, t2, o)
	if do == 0 {
		return true, nil
	}
	dq := k.Orient3D(t0, t1, t2, q)
	return sign(do) == sign(do-dq), nil
}
