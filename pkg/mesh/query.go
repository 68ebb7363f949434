package mesh

import (
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

// Accessors index the mesh arrays directly and panic on ids outside the
// mesh, like slice indexing. Returned slices are copies.

// NumVerts returns the vertex count.
func (m *Mesh) NumVerts() int { return len(m.t.verts) }

// NumEdges returns the edge count.
func (m *Mesh) NumEdges() int { return len(m.t.edges) }

// NumFaces returns the face count.
func (m *Mesh) NumFaces() int { return len(m.t.faces) }

// NumPolys returns the poly count; always 0 for surface meshes.
func (m *Mesh) NumPolys() int { return len(m.t.polys) }

// Vert returns the position of vertex vid.
func (m *Mesh) Vert(vid int) v3.Vec { return m.t.verts[vid] }

// Verts returns all vertex positions.
func (m *Mesh) Verts() []v3.Vec { return append([]v3.Vec(nil), m.t.verts...) }

// Edge returns the endpoints of edge eid in stored order.
func (m *Mesh) Edge(eid int) [2]int { return m.t.edges[eid] }

// Face returns the vertex loop of face fid.
func (m *Mesh) Face(fid int) []int { return clone(m.t.faces[fid]) }

// Faces returns every face loop.
func (m *Mesh) Faces() [][]int { return cloneInts(m.t.faces) }

// Poly returns the face ids of poly pid.
func (m *Mesh) Poly(pid int) []int { return clone(m.t.polys[pid]) }

// PolyWinding returns the winding bits of poly pid, aligned with Poly(pid).
func (m *Mesh) PolyWinding(pid int) []bool {
	return append([]bool(nil), m.t.winding[pid]...)
}

// PolyFaceIsCCW reports whether face fid, in stored order, is
// counter-clockwise seen from outside poly pid. ok is false when fid is not
// a face of pid.
func (m *Mesh) PolyFaceIsCCW(pid, fid int) (ccw, ok bool) {
	for i, f := range m.t.polys[pid] {
		if f == fid {
			return m.t.winding[pid][i], true
		}
	}
	return false, false
}

// polyFaceLoop returns the vertex loop of the i-th face of pid ordered
// counter-clockwise seen from outside the poly.
func (m *Mesh) polyFaceLoop(pid, i int) []int {
	f := clone(m.t.faces[m.t.polys[pid][i]])
	if !m.t.winding[pid][i] {
		f = lo.Reverse(f)
	}
	return f
}

func clone(s []int) []int { return append([]int(nil), s...) }

// AdjV2V returns the vertices joined to vid by an edge, aligned with
// AdjV2E(vid).
func (m *Mesh) AdjV2V(vid int) []int { return clone(m.t.v2v[vid]) }

// AdjV2E returns the edges incident to vid in ascending order.
func (m *Mesh) AdjV2E(vid int) []int { return clone(m.t.v2e[vid]) }

// AdjV2F returns the faces incident to vid in ascending order.
func (m *Mesh) AdjV2F(vid int) []int { return clone(m.t.v2f[vid]) }

// AdjV2P returns the polys incident to vid in ascending order.
func (m *Mesh) AdjV2P(vid int) []int { return clone(m.t.v2p[vid]) }

// AdjE2F returns the faces incident to eid in ascending order.
func (m *Mesh) AdjE2F(eid int) []int { return clone(m.t.e2f[eid]) }

// AdjE2P returns the polys incident to eid in ascending order.
func (m *Mesh) AdjE2P(eid int) []int { return clone(m.t.e2p[eid]) }

// AdjF2E returns the edges of fid; entry i joins face vertices i and i+1.
func (m *Mesh) AdjF2E(fid int) []int { return clone(m.t.f2e[fid]) }

// AdjF2F returns the faces sharing an edge with fid, ascending.
func (m *Mesh) AdjF2F(fid int) []int {
	var out []int
	for _, eid := range m.t.f2e[fid] {
		for _, g := range m.t.e2f[eid] {
			if g != fid {
				out = append(out, g)
			}
		}
	}
	out = lo.Uniq(out)
	slices.Sort(out)
	return out
}

// AdjF2P returns the polys incident to fid (at most two in a valid mesh).
func (m *Mesh) AdjF2P(fid int) []int { return clone(m.t.f2p[fid]) }

// AdjP2F returns the faces of pid; the same as Poly(pid).
func (m *Mesh) AdjP2F(pid int) []int { return clone(m.t.polys[pid]) }

// AdjP2E returns the edges of pid in first-occurrence order.
func (m *Mesh) AdjP2E(pid int) []int { return clone(m.t.p2e[pid]) }

// AdjP2V returns the vertices of pid in first-occurrence order.
func (m *Mesh) AdjP2V(pid int) []int { return clone(m.t.p2v[pid]) }

// AdjP2P returns the polys sharing a face with pid, ascending.
func (m *Mesh) AdjP2P(pid int) []int {
	var out []int
	for _, fid := range m.t.polys[pid] {
		for _, q := range m.t.f2p[fid] {
			if q != pid {
				out = append(out, q)
			}
		}
	}
	out = lo.Uniq(out)
	slices.Sort(out)
	return out
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

// EdgeID returns the edge joining v0 and v1.
func (m *Mesh) EdgeID(v0, v1 int) (int, bool) {
	id, ok := m.t.keys[keyOf(v0, v1)]
	return id, ok
}

// FaceEdgeID returns the id of the i-th edge of fid, joining face vertices i
// and i+1.
func (m *Mesh) FaceEdgeID(fid, i int) int {
	f := m.t.f2e[fid]
	return f[((i%len(f))+len(f))%len(f)]
}

// FaceVertOffset returns the position of vid in the loop of fid, or -1.
func (m *Mesh) FaceVertOffset(fid, vid int) int {
	return lo.IndexOf(m.t.faces[fid], vid)
}

// EdgeContains reports whether vid is an endpoint of eid.
func (m *Mesh) EdgeContains(eid, vid int) bool {
	e := m.t.edges[eid]
	return e[0] == vid || e[1] == vid
}

// VertOppositeTo returns the other endpoint of eid, or -1 when vid is not
// an endpoint.
func (m *Mesh) VertOppositeTo(eid, vid int) int {
	e := m.t.edges[eid]
	switch vid {
	case e[0]:
		return e[1]
	case e[1]:
		return e[0]
	}
	return -1
}

// EdgeOppositeTo returns the edge of triangle fid that does not touch vid,
// or -1 when fid is not a triangle or does not contain vid.
func (m *Mesh) EdgeOppositeTo(fid, vid int) int {
	f := m.t.faces[fid]
	if len(f) != 3 {
		return -1
	}
	i := lo.IndexOf(f, vid)
	if i < 0 {
		return -1
	}
	return m.t.f2e[fid][(i+1)%3]
}

// FaceOppositeTo returns the other face incident to eid, or -1 when eid is
// not manifold or fid is not incident to it.
func (m *Mesh) FaceOppositeTo(eid, fid int) int {
	ef := m.t.e2f[eid]
	if len(ef) != 2 {
		return -1
	}
	switch fid {
	case ef[0]:
		return ef[1]
	case ef[1]:
		return ef[0]
	}
	return -1
}

// EdgeSharedByFaces returns the edge common to faces f0 and f1, or -1.
func (m *Mesh) EdgeSharedByFaces(f0, f1 int) int {
	for _, e := range m.t.f2e[f0] {
		if lo.Contains(m.t.f2e[f1], e) {
			return e
		}
	}
	return -1
}

// FaceSharedByEdges returns the lowest face incident to both e0 and e1, or -1.
func (m *Mesh) FaceSharedByEdges(e0, e1 int) int {
	for _, f := range m.t.e2f[e0] {
		if lo.Contains(m.t.e2f[e1], f) {
			return f
		}
	}
	return -1
}

// FaceSharedByPolys returns the face common to polys p0 and p1, or -1.
func (m *Mesh) FaceSharedByPolys(p0, p1 int) int {
	for _, f := range m.t.polys[p0] {
		if lo.Contains(m.t.polys[p1], f) {
			return f
		}
	}
	return -1
}

// ---------------------------------------------------------------------------
// Boundary and manifold checks
// ---------------------------------------------------------------------------

// EdgeIsBoundary reports whether eid lies on the mesh boundary: a surface
// edge with one incident face, or a volume edge on a boundary face.
func (m *Mesh) EdgeIsBoundary(eid int) bool {
	if m.kind == KindSurface {
		return len(m.t.e2f[eid]) == 1
	}
	for _, f := range m.t.e2f[eid] {
		if m.FaceIsBoundary(f) {
			return true
		}
	}
	return false
}

// FaceIsBoundary reports whether fid has a boundary edge (surface) or
// belongs to fewer than two polys (volume).
func (m *Mesh) FaceIsBoundary(fid int) bool {
	if m.kind == KindPolyhedral {
		return len(m.t.f2p[fid]) < 2
	}
	for _, e := range m.t.f2e[fid] {
		if len(m.t.e2f[e]) == 1 {
			return true
		}
	}
	return false
}

// VertIsBoundary reports whether vid touches a boundary edge.
func (m *Mesh) VertIsBoundary(vid int) bool {
	for _, e := range m.t.v2e[vid] {
		if m.EdgeIsBoundary(e) {
			return true
		}
	}
	return false
}

// PolyIsBoundary reports whether pid has a boundary face.
func (m *Mesh) PolyIsBoundary(pid int) bool {
	for _, f := range m.t.polys[pid] {
		if len(m.t.f2p[f]) < 2 {
			return true
		}
	}
	return false
}

// EdgeIsManifold reports whether eid borders at most two faces (surface).
// For volume meshes every incident face must border at most two polys and
// the number of incident boundary faces must be zero or two.
func (m *Mesh) EdgeIsManifold(eid int) bool {
	if m.kind == KindSurface {
		return len(m.t.e2f[eid]) <= 2
	}
	nb := 0
	for _, f := range m.t.e2f[eid] {
		switch n := len(m.t.f2p[f]); {
		case n > 2:
			return false
		case n < 2:
			nb++
		}
	}
	return nb == 0 || nb == 2
}

// VertIsManifold reports whether the faces around vid form a single fan
// (surface) or whether every incident edge is manifold (volume).
func (m *Mesh) VertIsManifold(vid int) bool {
	if m.kind == KindPolyhedral {
		for _, e := range m.t.v2e[vid] {
			if !m.EdgeIsManifold(e) {
				return false
			}
		}
		return true
	}
	_, err := m.VertOrderedOneRing(vid)
	return err == nil
}

// VertValence returns the number of edges incident to vid.
func (m *Mesh) VertValence(vid int) int { return len(m.t.v2e[vid]) }

// IsTriangleMesh reports whether every face is a triangle.
func (m *Mesh) IsTriangleMesh() bool {
	return lo.EveryBy(m.t.faces, func(f []int) bool { return len(f) == 3 })
}

// IsQuadMesh reports whether every face is a quad.
func (m *Mesh) IsQuadMesh() bool {
	return lo.EveryBy(m.t.faces, func(f []int) bool { return len(f) == 4 })
}
