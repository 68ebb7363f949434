package mesh

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"go.uber.org/zap"

	"github.com/chazu/meshkit/pkg/geom"
)

// dominantAxis returns the axis with the largest normal component and the
// sign of that component.
func dominantAxis(n v3.Vec) (geom.Axis, float64) {
	ax, c := geom.AxisZ, n.Z
	if math.Abs(n.X) > math.Abs(c) {
		ax, c = geom.AxisX, n.X
	}
	if math.Abs(n.Y) > math.Abs(c) {
		ax, c = geom.AxisY, n.Y
	}
	return ax, c
}

// fanKeepsOrientation reports whether every triangle (loop[i], loop[i+1], p)
// turns the same way as the face, seen along the face normal. It is the
// predicate check behind FaceSplit.
func (m *Mesh) fanKeepsOrientation(pts []v3.Vec, p v3.Vec) bool {
	n := geom.PolygonNormal(pts)
	ax, c := dominantAxis(n)
	if c == 0 {
		return false
	}
	q := geom.Drop(p, ax)
	for i := range pts {
		a := geom.Drop(pts[i], ax)
		b := geom.Drop(pts[(i+1)%len(pts)], ax)
		o := m.pred.Orient2D(a, b, q)
		if o == 0 || (o > 0) != (c > 0) {
			return false
		}
	}
	return true
}

// FaceSplit inserts a vertex at p and fan-triangulates face fid around it.
// For an n-gon the face count grows by n-1 and the vertex count by one.
// Child 0 reuses fid and the others get new ids in loop order; children[i]
// is the triangle built on the i-th edge of the old face. Every existing
// vertex, edge and face id stays valid. Boundary edges keep their marks;
// the new spokes are unmarked. Children inherit the label of fid.
//
// p must lie inside the face as seen along its normal, otherwise a
// *TopologyError is returned and the mesh is unchanged.
func (m *Mesh) FaceSplit(fid int, p v3.Vec) ([]int, error) {
	const op = "face-split"
	if m.kind != KindSurface {
		return nil, capability(op, m.kind)
	}
	t := m.t
	if fid < 0 || fid >= len(t.faces) {
		return nil, outOfRange("face", fid, len(t.faces))
	}
	if !m.fanKeepsOrientation(m.facePoints(fid), p) {
		return nil, topologyErr(op, fid, "point %v is not strictly inside the face", p)
	}

	// Nothing below can fail, so the snapshot is patched in place.
	f := clone(t.faces[fid])
	bnd := clone(t.f2e[fid])
	n := len(f)
	nid := len(t.verts)

	children := make([]int, n)
	children[0] = fid
	for i := 1; i < n; i++ {
		children[i] = len(t.faces) + i - 1
	}

	t.verts = append(t.verts, p)
	t.v2v = append(t.v2v, nil)
	t.v2e = append(t.v2e, nil)
	t.v2f = append(t.v2f, clone(children))
	t.v2p = append(t.v2p, nil)

	spokes := make([]int, n)
	for i, v := range f {
		eid := len(t.edges)
		spokes[i] = eid
		t.edges = append(t.edges, [2]int{v, nid})
		t.keys[keyOf(v, nid)] = eid
		t.marked = append(t.marked, false)
		t.e2p = append(t.e2p, nil)
		t.v2e[v] = append(t.v2e[v], eid)
		t.v2v[v] = append(t.v2v[v], nid)
		t.v2e[nid] = append(t.v2e[nid], eid)
		t.v2v[nid] = append(t.v2v[nid], v)
	}
	for i := range f {
		a, b := children[(i+n-1)%n], children[i]
		if a > b {
			a, b = b, a
		}
		t.e2f = append(t.e2f, []int{a, b})
	}

	label := t.faceLabels[fid]
	for i := 0; i < n; i++ {
		loop := []int{f[i], f[(i+1)%n], nid}
		edges := []int{bnd[i], spokes[(i+1)%n], spokes[i]}
		if i == 0 {
			t.faces[fid] = loop
			t.f2e[fid] = edges
			continue
		}
		t.faces = append(t.faces, loop)
		t.f2e = append(t.f2e, edges)
		t.f2p = append(t.f2p, nil)
		t.faceLabels = append(t.faceLabels, label)
		t.e2f[bnd[i]] = append(removeInt(t.e2f[bnd[i]], fid), children[i])
	}

	// v_i now touches children i-1 and i.
	for i, v := range f {
		prev, cur := children[(i+n-1)%n], children[i]
		switch {
		case cur == fid:
			t.v2f[v] = append(t.v2f[v], prev)
		case prev == fid:
			t.v2f[v] = append(t.v2f[v], cur)
		default:
			if prev > cur {
				prev, cur = cur, prev
			}
			t.v2f[v] = append(removeInt(t.v2f[v], fid), prev, cur)
		}
	}

	m.log.Debug("face split", zap.Int("face", fid), zap.Int("vert", nid), zap.Int("children", n))
	return children, nil
}

func removeInt(s []int, x int) []int {
	out := s[:0]
	for _, v := range s {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}

// EdgeSplit inserts a vertex at p on edge eid. A triangle on the edge is
// split in two: the half that comes first in its loop keeps the old id and
// the other is appended. Larger faces just gain the vertex. Edge eid keeps
// its first endpoint and the half towards the second endpoint is appended;
// both halves inherit the mark of eid. Returns the new vertex id.
func (m *Mesh) EdgeSplit(eid int, p v3.Vec) (int, error) {
	const op = "edge-split"
	if m.kind != KindSurface {
		return -1, capability(op, m.kind)
	}
	t := m.t
	if eid < 0 || eid >= len(t.edges) {
		return -1, outOfRange("edge", eid, len(t.edges))
	}
	a, b := t.edges[eid][0], t.edges[eid][1]
	nid := len(t.verts)
	verts := append(append([]v3.Vec(nil), t.verts...), p)
	faces := cloneInts(t.faces)
	labels := clone(t.faceLabels)

	for _, fid := range t.e2f[eid] {
		loop := faces[fid]
		k := len(loop)
		i := 0
		for ; i < k; i++ {
			if keyOf(loop[i], loop[(i+1)%k]) == keyOf(a, b) {
				break
			}
		}
		u, w := loop[i], loop[(i+1)%k]
		if k == 3 {
			c := loop[(i+2)%3]
			t0, t1 := []int{u, nid, c}, []int{nid, w, c}
			old := m.FaceNormal(fid)
			for _, tri := range [][]int{t0, t1} {
				pa, pb, pc := verts[tri[0]], verts[tri[1]], verts[tri[2]]
				if m.pred.TriangleIsDegenerate3D(pa, pb, pc) || geom.TriangleNormal(pa, pb, pc).Dot(old) <= 0 {
					return -1, topologyErr(op, eid, "point %v flips or flattens face %d", p, fid)
				}
			}
			faces[fid] = t0
			faces = append(faces, t1)
			labels = append(labels, labels[fid])
			continue
		}
		grown := make([]int, 0, k+1)
		grown = append(grown, loop[:i+1]...)
		grown = append(grown, nid)
		grown = append(grown, loop[i+1:]...)
		faces[fid] = grown
	}

	order := append([][2]int(nil), t.edges...)
	order[eid] = [2]int{a, nid}
	order = append(order, [2]int{nid, b})
	marks := t.markedKeys()
	if t.marked[eid] {
		marks[keyOf(a, nid)] = true
		marks[keyOf(nid, b)] = true
	}
	nt, err := m.rebuild(verts, faces, nil, nil, order, marks, labels, nil)
	if err != nil {
		return -1, err
	}
	m.t = nt
	m.log.Debug("edge split", zap.Int("edge", eid), zap.Int("vert", nid))
	return nid, nil
}

// PolySplit inserts a vertex at p and replaces poly pid by one pyramid per
// face, apexed at p. Pyramid 0 reuses pid; the rest are appended in face
// order. The side triangles and spokes are new; existing faces keep their
// ids and winding. p must lie strictly inside every face's half-space,
// otherwise a *TopologyError is returned. Returns the pyramid ids.
func (m *Mesh) PolySplit(pid int, p v3.Vec) ([]int, error) {
	const op = "poly-split"
	if m.kind != KindPolyhedral {
		return nil, capability(op, m.kind)
	}
	t := m.t
	if pid < 0 || pid >= len(t.polys) {
		return nil, outOfRange("poly", pid, len(t.polys))
	}
	for i, fid := range t.polys[pid] {
		loop := m.polyFaceLoop(pid, i)
		a := t.verts[loop[0]]
		for j := 1; j+1 < len(loop); j++ {
			// Seen from outside the loop is CCW, so an interior point lies
			// below it and orients positively.
			if m.pred.Orient3D(a, t.verts[loop[j]], t.verts[loop[j+1]], p) <= 0 {
				return nil, topologyErr(op, pid, "point %v does not see face %d", p, fid)
			}
		}
	}

	apex := len(t.verts)
	verts := append(append([]v3.Vec(nil), t.verts...), p)
	faces := cloneInts(t.faces)
	faceLabels := clone(t.faceLabels)
	polys := cloneInts(t.polys)
	winding := cloneBools(t.winding)
	polyLabels := clone(t.polyLabels)

	sides := make(map[edgeKey]int)
	var ids []int
	for i, fid := range t.polys[pid] {
		loop := m.polyFaceLoop(pid, i)
		pf := []int{fid}
		pw := []bool{t.winding[pid][i]}
		for j := range loop {
			u, v := loop[j], loop[(j+1)%len(loop)]
			k := keyOf(u, v)
			sid, ok := sides[k]
			if !ok {
				sid = len(faces)
				sides[k] = sid
				faces = append(faces, []int{u, v, apex})
				faceLabels = append(faceLabels, 0)
			}
			// The base runs u->v, so the side is outward as v, u, apex.
			s := faces[sid]
			pf = append(pf, sid)
			pw = append(pw, s[0] == v && s[1] == u)
		}
		if i == 0 {
			polys[pid], winding[pid] = pf, pw
			ids = append(ids, pid)
			continue
		}
		ids = append(ids, len(polys))
		polys = append(polys, pf)
		winding = append(winding, pw)
		polyLabels = append(polyLabels, t.polyLabels[pid])
	}

	nt, err := m.rebuild(verts, faces, polys, winding, t.edges, t.markedKeys(), faceLabels, polyLabels)
	if err != nil {
		return nil, err
	}
	m.t = nt
	m.log.Debug("poly split", zap.Int("poly", pid), zap.Int("vert", apex), zap.Int("pyramids", len(ids)))
	return ids, nil
}
