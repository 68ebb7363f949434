package predicates

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PointInSegment2D locates p relative to segment s0 s1. A degenerate
// segment only reports OnVert0 for p == s0, and Outside otherwise.
func (k *Kernel) PointInSegment2D(p, s0, s1 v2.Vec) PointInSimplex {
	switch {
	case k.VecEquals2D(p, s0):
		return OnVert0
	case k.VecEquals2D(p, s1):
		return OnVert1
	case k.VecEquals2D(s0, s1):
		return Outside
	case !k.PointsAreColinear2D(s0, s1, p):
		return Outside
	}
	if within(p.X, s0.X, s1.X) && within(p.Y, s0.Y, s1.Y) {
		return Inside
	}
	return Outside
}

// PointInSegment3D locates p relative to segment s0 s1.
func (k *Kernel) PointInSegment3D(p, s0, s1 v3.Vec) PointInSimplex {
	switch {
	case k.VecEquals3D(p, s0):
		return OnVert0
	case k.VecEquals3D(p, s1):
		return OnVert1
	case k.VecEquals3D(s0, s1):
		return Outside
	case !k.PointsAreColinear3D(s0, s1, p):
		return Outside
	}
	if within(p.X, s0.X, s1.X) && within(p.Y, s0.Y, s1.Y) && within(p.Z, s0.Z, s1.Z) {
		return Inside
	}
	return Outside
}

// within reports whether x lies in the closed interval spanned by a and b.
func within(x, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return x >= a && x <= b
}

// PointInTriangle2D locates p relative to triangle t0 t1 t2. Both
// orientations of the triangle are accepted.
func (k *Kernel) PointInTriangle2D(p, t0, t1, t2 v2.Vec) PointInSimplex {
	t := [3]v2.Vec{t0, t1, t2}
	o := sign(k.b.Orient2D(t0, t1, t2))
	if o == 0 {
		return k.pointInDegenerateTriangle2D(p, t)
	}
	var zeros []int
	for i, e := range TriEdges {
		s := sign(k.b.Orient2D(t[e[0]], t[e[1]], p)) * o
		if s < 0 {
			return Outside
		}
		if s == 0 {
			zeros = append(zeros, i)
		}
	}
	return triangleLocation(zeros)
}

// triangleLocation maps the set of edges whose supporting line contains the
// query point to a location.
func triangleLocation(zeros []int) PointInSimplex {
	switch len(zeros) {
	case 0:
		return Inside
	case 1:
		return OnEdge(zeros[0])
	case 2:
		// Edges i and j share the vertex that follows the lower edge,
		// except for the pair (0, 2) which meets at vertex 0.
		if zeros[0] == 0 && zeros[1] == 2 {
			return OnVert0
		}
		return OnVert(zeros[1])
	}
	return Outside
}

func (k *Kernel) pointInDegenerateTriangle2D(p v2.Vec, t [3]v2.Vec) PointInSimplex {
	for i, v := range t {
		if k.VecEquals2D(p, v) {
			return OnVert(i)
		}
	}
	for i, e := range TriEdges {
		if k.PointInSegment2D(p, t[e[0]], t[e[1]]) == Inside {
			return OnEdge(i)
		}
	}
	return Outside
}

// PointInTriangle3D locates p relative to triangle t0 t1 t2. Points off the
// supporting plane are Outside.
func (k *Kernel) PointInTriangle3D(p, t0, t1, t2 v3.Vec) PointInSimplex {
	t := [3]v3.Vec{t0, t1, t2}
	if k.TriangleIsDegenerate3D(t0, t1, t2) {
		for i, v := range t {
			if k.VecEquals3D(p, v) {
				return OnVert(i)
			}
		}
		for i, e := range TriEdges {
			if k.PointInSegment3D(p, t[e[0]], t[e[1]]) == Inside {
				return OnEdge(i)
			}
		}
		return Outside
	}
	if !k.PointsAreCoplanar3D(t0, t1, t2, p) {
		return Outside
	}
	ax := k.projection(t[:])
	q := drop(ax, p, t0, t1, t2)
	return k.PointInTriangle2D(q[0], q[1], q[2], q[3])
}

// PointInTet locates p relative to tet t0 t1 t2 t3. Both orientations of
// the tet are accepted.
func (k *Kernel) PointInTet(p, t0, t1, t2, t3 v3.Vec) PointInSimplex {
	t := [4]v3.Vec{t0, t1, t2, t3}
	if k.TetIsDegenerate(t0, t1, t2, t3) {
		return k.pointInDegenerateTet(p, t)
	}
	var zeros []int
	for i, f := range TetFaces {
		a, b, c := t[f[0]], t[f[1]], t[f[2]]
		ref := sign(k.b.Orient3D(a, b, c, t[3-i]))
		s := sign(k.b.Orient3D(a, b, c, p)) * ref
		if s < 0 {
			return Outside
		}
		if s == 0 {
			zeros = append(zeros, i)
		}
	}
	switch len(zeros) {
	case 0:
		return Inside
	case 1:
		return OnFace(zeros[0])
	case 2:
		// Faces i and j share the edge that avoids their opposite vertices.
		skip := [2]int{3 - zeros[0], 3 - zeros[1]}
		var ends []int
		for v := 0; v < 4; v++ {
			if v != skip[0] && v != skip[1] {
				ends = append(ends, v)
			}
		}
		return OnEdge(tetEdgeIndex(ends[0], ends[1]))
	case 3:
		// The vertex lying on all three faces is opposite the fourth.
		missing := 6 - zeros[0] - zeros[1] - zeros[2]
		return OnVert(3 - missing)
	}
	return Outside
}

func (k *Kernel) pointInDegenerateTet(p v3.Vec, t [4]v3.Vec) PointInSimplex {
	for i, v := range t {
		if k.VecEquals3D(p, v) {
			return OnVert(i)
		}
	}
	for i, e := range TetEdges {
		if k.PointInSegment3D(p, t[e[0]], t[e[1]]) == Inside {
			return OnEdge(i)
		}
	}
	for i, f := range TetFaces {
		if k.PointInTriangle3D(p, t[f[0]], t[f[1]], t[f[2]]) == Inside {
			return OnFace(i)
		}
	}
	return Outside
}
