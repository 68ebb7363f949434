package predicates

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Intersection tests return a *DegenerateInputError when any argument is a
// degenerate simplex. Simplices that share vertices are compared by exact
// coordinate equality.

func degenerate(op, simplex string, arg int) error {
	return &DegenerateInputError{Op: op, Simplex: simplex, Arg: arg}
}

// ---------------------------------------------------------------------------
// Segment vs segment
// ---------------------------------------------------------------------------

// SegmentSegment2D classifies segments s00 s01 and s10 s11.
func (k *Kernel) SegmentSegment2D(s00, s01, s10, s11 v2.Vec) (SimplexIntersection, error) {
	const op = "SegmentSegment2D"
	if k.SegmentIsDegenerate2D(s00, s01) {
		return DoNotIntersect, degenerate(op, "segment", 0)
	}
	if k.SegmentIsDegenerate2D(s10, s11) {
		return DoNotIntersect, degenerate(op, "segment", 1)
	}
	return k.segmentSegment2D(s00, s01, s10, s11), nil
}

func (k *Kernel) segmentSegment2D(s00, s01, s10, s11 v2.Vec) SimplexIntersection {
	eq := k.VecEquals2D
	if (eq(s00, s10) && eq(s01, s11)) || (eq(s00, s11) && eq(s01, s10)) {
		return SimplicialComplex
	}
	shared := eq(s00, s10) || eq(s00, s11) || eq(s01, s10) || eq(s01, s11)

	o0 := sign(k.b.Orient2D(s00, s01, s10))
	o1 := sign(k.b.Orient2D(s00, s01, s11))
	if o0 == 0 && o1 == 0 {
		if k.PointInSegment2D(s10, s00, s01) == Inside ||
			k.PointInSegment2D(s11, s00, s01) == Inside ||
			k.PointInSegment2D(s00, s10, s11) == Inside ||
			k.PointInSegment2D(s01, s10, s11) == Inside {
			return Overlap
		}
		if shared {
			return SimplicialComplex
		}
		return DoNotIntersect
	}
	o2 := sign(k.b.Orient2D(s10, s11, s00))
	o3 := sign(k.b.Orient2D(s10, s11, s01))
	if o0*o1 > 0 || o2*o3 > 0 {
		return DoNotIntersect
	}
	if shared {
		return SimplicialComplex
	}
	return Intersect
}

// SegmentSegment3D classifies segments s00 s01 and s10 s11. Coplanar pairs
// are projected and resolved in 2D.
func (k *Kernel) SegmentSegment3D(s00, s01, s10, s11 v3.Vec) (SimplexIntersection, error) {
	const op = "SegmentSegment3D"
	if k.SegmentIsDegenerate3D(s00, s01) {
		return DoNotIntersect, degenerate(op, "segment", 0)
	}
	if k.SegmentIsDegenerate3D(s10, s11) {
		return DoNotIntersect, degenerate(op, "segment", 1)
	}
	return k.segmentSegment3D(s00, s01, s10, s11), nil
}

func (k *Kernel) segmentSegment3D(s00, s01, s10, s11 v3.Vec) SimplexIntersection {
	if !k.PointsAreCoplanar3D(s00, s01, s10, s11) {
		return DoNotIntersect
	}
	q := drop(k.projection([]v3.Vec{s00, s01, s10, s11}), s00, s01, s10, s11)
	return k.segmentSegment2D(q[0], q[1], q[2], q[3])
}

// ---------------------------------------------------------------------------
// Segment vs triangle
// ---------------------------------------------------------------------------

// SegmentTriangle2D classifies segment s0 s1 against triangle t0 t1 t2.
func (k *Kernel) SegmentTriangle2D(s0, s1, t0, t1, t2 v2.Vec) (SimplexIntersection, error) {
	const op = "SegmentTriangle2D"
	if k.SegmentIsDegenerate2D(s0, s1) {
		return DoNotIntersect, degenerate(op, "segment", 0)
	}
	if k.TriangleIsDegenerate2D(t0, t1, t2) {
		return DoNotIntersect, degenerate(op, "triangle", 1)
	}
	return k.segmentTriangle2D(s0, s1, t0, t1, t2), nil
}

func (k *Kernel) segmentTriangle2D(s0, s1, t0, t1, t2 v2.Vec) SimplexIntersection {
	t := [3]v2.Vec{t0, t1, t2}
	l0 := k.PointInTriangle2D(s0, t0, t1, t2)
	l1 := k.PointInTriangle2D(s1, t0, t1, t2)
	if l0.IsVertex() && l1.IsVertex() {
		// Both ends on triangle corners: the segment is a triangle edge.
		return SimplicialComplex
	}
	if l0 == Inside || l1 == Inside || l0.IsEdge() || l1.IsEdge() {
		return Intersect
	}
	for _, e := range TriEdges {
		switch k.segmentSegment2D(s0, s1, t[e[0]], t[e[1]]) {
		case Intersect, Overlap:
			return Intersect
		}
	}
	if l0.IsVertex() || l1.IsVertex() {
		return SimplicialComplex
	}
	return DoNotIntersect
}

// SegmentTriangle3D classifies segment s0 s1 against triangle t0 t1 t2.
func (k *Kernel) SegmentTriangle3D(s0, s1, t0, t1, t2 v3.Vec) (SimplexIntersection, error) {
	const op = "SegmentTriangle3D"
	if k.SegmentIsDegenerate3D(s0, s1) {
		return DoNotIntersect, degenerate(op, "segment", 0)
	}
	if k.TriangleIsDegenerate3D(t0, t1, t2) {
		return DoNotIntersect, degenerate(op, "triangle", 1)
	}
	return k.segmentTriangle3D(s0, s1, t0, t1, t2), nil
}

func (k *Kernel) segmentTriangle3D(s0, s1, t0, t1, t2 v3.Vec) SimplexIntersection {
	o0 := sign(k.b.Orient3D(t0, t1, t2, s0))
	o1 := sign(k.b.Orient3D(t0, t1, t2, s1))

	switch {
	case o0 == 0 && o1 == 0:
		q := drop(k.projection([]v3.Vec{t0, t1, t2}), s0, s1, t0, t1, t2)
		return k.segmentTriangle2D(q[0], q[1], q[2], q[3], q[4])
	case o0*o1 > 0:
		return DoNotIntersect
	case o0 == 0:
		return touchLocation(k.PointInTriangle3D(s0, t0, t1, t2))
	case o1 == 0:
		return touchLocation(k.PointInTriangle3D(s1, t0, t1, t2))
	}

	// The segment crosses the supporting plane; test where.
	t := [3]v3.Vec{t0, t1, t2}
	pos, neg := false, false
	for _, e := range TriEdges {
		switch sign(k.b.Orient3D(s0, s1, t[e[0]], t[e[1]])) {
		case 1:
			pos = true
		case -1:
			neg = true
		}
	}
	if pos && neg {
		return DoNotIntersect
	}
	return Intersect
}

// touchLocation classifies a segment that touches a simplex at one endpoint.
func touchLocation(loc PointInSimplex) SimplexIntersection {
	switch {
	case loc == Outside:
		return DoNotIntersect
	case loc.IsVertex():
		return SimplicialComplex
	default:
		return Intersect
	}
}

// ---------------------------------------------------------------------------
// Segment vs tet
// ---------------------------------------------------------------------------

// SegmentTet classifies segment s0 s1 against tet t0 t1 t2 t3.
func (k *Kernel) SegmentTet(s0, s1, t0, t1, t2, t3 v3.Vec) (SimplexIntersection, error) {
	const op = "SegmentTet"
	if k.SegmentIsDegenerate3D(s0, s1) {
		return DoNotIntersect, degenerate(op, "segment", 0)
	}
	if k.TetIsDegenerate(t0, t1, t2, t3) {
		return DoNotIntersect, degenerate(op, "tet", 1)
	}
	t := [4]v3.Vec{t0, t1, t2, t3}
	l0 := k.PointInTet(s0, t0, t1, t2, t3)
	l1 := k.PointInTet(s1, t0, t1, t2, t3)
	if l0.IsVertex() && l1.IsVertex() {
		return SimplicialComplex, nil
	}
	if (l0 != Outside && !l0.IsVertex()) || (l1 != Outside && !l1.IsVertex()) {
		return Intersect, nil
	}
	for _, f := range TetFaces {
		if k.segmentTriangle3D(s0, s1, t[f[0]], t[f[1]], t[f[2]]) == Intersect {
			return Intersect, nil
		}
	}
	if l0.IsVertex() || l1.IsVertex() {
		return SimplicialComplex, nil
	}
	return DoNotIntersect, nil
}

// ---------------------------------------------------------------------------
// Triangle vs triangle
// ---------------------------------------------------------------------------

// TriangleTriangle2D classifies triangles a0 a1 a2 and b0 b1 b2. Triangles
// never report Overlap: any shared area is Intersect.
func (k *Kernel) TriangleTriangle2D(a0, a1, a2, b0, b1, b2 v2.Vec) (SimplexIntersection, error) {
	const op = "TriangleTriangle2D"
	if k.TriangleIsDegenerate2D(a0, a1, a2) {
		return DoNotIntersect, degenerate(op, "triangle", 0)
	}
	if k.TriangleIsDegenerate2D(b0, b1, b2) {
		return DoNotIntersect, degenerate(op, "triangle", 1)
	}
	return k.triangleTriangle2D([3]v2.Vec{a0, a1, a2}, [3]v2.Vec{b0, b1, b2}), nil
}

func (k *Kernel) triangleTriangle2D(a, b [3]v2.Vec) SimplexIntersection {
	shared := 0
	for _, p := range a {
		for _, q := range b {
			if k.VecEquals2D(p, q) {
				shared++
			}
		}
	}
	if shared == 3 {
		return SimplicialComplex
	}
	for _, ea := range TriEdges {
		for _, eb := range TriEdges {
			switch k.segmentSegment2D(a[ea[0]], a[ea[1]], b[eb[0]], b[eb[1]]) {
			case Intersect, Overlap:
				return Intersect
			}
		}
	}
	for _, p := range a {
		if l := k.PointInTriangle2D(p, b[0], b[1], b[2]); l == Inside || l.IsEdge() {
			return Intersect
		}
	}
	for _, p := range b {
		if l := k.PointInTriangle2D(p, a[0], a[1], a[2]); l == Inside || l.IsEdge() {
			return Intersect
		}
	}
	if shared > 0 {
		return SimplicialComplex
	}
	return DoNotIntersect
}

// TriangleTriangle3D classifies triangles a0 a1 a2 and b0 b1 b2.
func (k *Kernel) TriangleTriangle3D(a0, a1, a2, b0, b1, b2 v3.Vec) (SimplexIntersection, error) {
	const op = "TriangleTriangle3D"
	if k.TriangleIsDegenerate3D(a0, a1, a2) {
		return DoNotIntersect, degenerate(op, "triangle", 0)
	}
	if k.TriangleIsDegenerate3D(b0, b1, b2) {
		return DoNotIntersect, degenerate(op, "triangle", 1)
	}
	a := [3]v3.Vec{a0, a1, a2}
	b := [3]v3.Vec{b0, b1, b2}

	if k.PointsAreCoplanar3D(a0, a1, a2, b0) &&
		k.PointsAreCoplanar3D(a0, a1, a2, b1) &&
		k.PointsAreCoplanar3D(a0, a1, a2, b2) {
		ax := k.projection(a[:])
		q := drop(ax, a0, a1, a2, b0, b1, b2)
		return k.triangleTriangle2D([3]v2.Vec{q[0], q[1], q[2]}, [3]v2.Vec{q[3], q[4], q[5]}), nil
	}

	shared := false
	for _, p := range a {
		for _, q := range b {
			if k.VecEquals3D(p, q) {
				shared = true
			}
		}
	}
	for _, e := range TriEdges {
		if k.segmentTriangle3D(a[e[0]], a[e[1]], b0, b1, b2) == Intersect {
			return Intersect, nil
		}
		if k.segmentTriangle3D(b[e[0]], b[e[1]], a0, a1, a2) == Intersect {
			return Intersect, nil
		}
	}
	if shared {
		return SimplicialComplex, nil
	}
	return DoNotIntersect, nil
}
