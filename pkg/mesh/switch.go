package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"go.uber.org/zap"
)

// The switch operations exchange the ids of two elements of one kind. Every
// reference is rewritten and attributes move with their element, so the
// mesh is the same up to renumbering. Switching an id with itself is a
// no-op.

// VertSwitchID exchanges the ids of vertices v0 and v1.
func (m *Mesh) VertSwitchID(v0, v1 int) error {
	t := m.t
	if err := checkPair("vertex", v0, v1, len(t.verts)); err != nil {
		return err
	}
	if v0 == v1 {
		return nil
	}
	rename := func(v int) int {
		switch v {
		case v0:
			return v1
		case v1:
			return v0
		}
		return v
	}
	verts := append([]v3.Vec(nil), t.verts...)
	verts[v0], verts[v1] = verts[v1], verts[v0]
	faces := cloneInts(t.faces)
	for _, f := range faces {
		for i, v := range f {
			f[i] = rename(v)
		}
	}
	order := make([][2]int, len(t.edges))
	marks := make(map[edgeKey]bool)
	for eid, e := range t.edges {
		order[eid] = [2]int{rename(e[0]), rename(e[1])}
		if t.marked[eid] {
			marks[keyOf(order[eid][0], order[eid][1])] = true
		}
	}
	return m.commitSwitch("vertex", v0, v1, verts, faces, cloneInts(t.polys), cloneBools(t.winding), order, marks,
		t.faceLabels, t.polyLabels)
}

// EdgeSwitchID exchanges the ids of edges e0 and e1.
func (m *Mesh) EdgeSwitchID(e0, e1 int) error {
	t := m.t
	if err := checkPair("edge", e0, e1, len(t.edges)); err != nil {
		return err
	}
	if e0 == e1 {
		return nil
	}
	order := append([][2]int(nil), t.edges...)
	order[e0], order[e1] = order[e1], order[e0]
	return m.commitSwitch("edge", e0, e1, t.verts, cloneInts(t.faces), cloneInts(t.polys), cloneBools(t.winding),
		order, t.markedKeys(), t.faceLabels, t.polyLabels)
}

// FaceSwitchID exchanges the ids of faces f0 and f1.
func (m *Mesh) FaceSwitchID(f0, f1 int) error {
	t := m.t
	if err := checkPair("face", f0, f1, len(t.faces)); err != nil {
		return err
	}
	if f0 == f1 {
		return nil
	}
	faces := cloneInts(t.faces)
	faces[f0], faces[f1] = faces[f1], faces[f0]
	labels := clone(t.faceLabels)
	labels[f0], labels[f1] = labels[f1], labels[f0]
	polys := cloneInts(t.polys)
	for _, p := range polys {
		for i, f := range p {
			switch f {
			case f0:
				p[i] = f1
			case f1:
				p[i] = f0
			}
		}
	}
	return m.commitSwitch("face", f0, f1, t.verts, faces, polys, cloneBools(t.winding), t.edges, t.markedKeys(),
		labels, t.polyLabels)
}

// PolySwitchID exchanges the ids of polys p0 and p1.
func (m *Mesh) PolySwitchID(p0, p1 int) error {
	if m.kind != KindPolyhedral {
		return capability("poly-switch-id", m.kind)
	}
	t := m.t
	if err := checkPair("poly", p0, p1, len(t.polys)); err != nil {
		return err
	}
	if p0 == p1 {
		return nil
	}
	polys := cloneInts(t.polys)
	polys[p0], polys[p1] = polys[p1], polys[p0]
	winding := cloneBools(t.winding)
	winding[p0], winding[p1] = winding[p1], winding[p0]
	labels := clone(t.polyLabels)
	labels[p0], labels[p1] = labels[p1], labels[p0]
	return m.commitSwitch("poly", p0, p1, t.verts, cloneInts(t.faces), polys, winding, t.edges, t.markedKeys(),
		t.faceLabels, labels)
}

func checkPair(elem string, a, b, n int) error {
	if a < 0 || a >= n {
		return outOfRange(elem, a, n)
	}
	if b < 0 || b >= n {
		return outOfRange(elem, b, n)
	}
	return nil
}

func (m *Mesh) commitSwitch(elem string, a, b int, verts []v3.Vec, faces, polys [][]int, winding [][]bool,
	order [][2]int, marks map[edgeKey]bool, faceLabels, polyLabels []int) error {
	nt, err := m.rebuild(append([]v3.Vec(nil), verts...), faces, polys, winding, order, marks, faceLabels, polyLabels)
	if err != nil {
		return err
	}
	m.t = nt
	m.log.Debug("ids switched", zap.String("elem", elem), zap.Int("a", a), zap.Int("b", b))
	return nil
}

// VertRemoveUnreferenced drops every vertex no face uses and compacts the
// vertex ids. Edge, face and poly ids are unchanged.
func (m *Mesh) VertRemoveUnreferenced() Remap {
	t := m.t
	used := make([]bool, len(t.verts))
	for _, f := range t.faces {
		for _, v := range f {
			used[v] = true
		}
	}
	vmap := make([]int, len(t.verts))
	var verts []v3.Vec
	for v, u := range used {
		if !u {
			vmap[v] = -1
			continue
		}
		vmap[v] = len(verts)
		verts = append(verts, t.verts[v])
	}
	remap := Remap{
		Verts: vmap,
		Edges: identity(len(t.edges)),
		Faces: identity(len(t.faces)),
		Polys: identity(len(t.polys)),
	}
	if len(verts) == len(t.verts) {
		return remap
	}
	faces := cloneInts(t.faces)
	for _, f := range faces {
		for i, v := range f {
			f[i] = vmap[v]
		}
	}
	order := make([][2]int, len(t.edges))
	marks := make(map[edgeKey]bool)
	for eid, e := range t.edges {
		order[eid] = [2]int{vmap[e[0]], vmap[e[1]]}
		if t.marked[eid] {
			marks[keyOf(order[eid][0], order[eid][1])] = true
		}
	}
	// Only vertex ids change and every face stays valid, so this cannot fail.
	nt, err := m.rebuild(verts, faces, cloneInts(t.polys), cloneBools(t.winding), order, marks, t.faceLabels, t.polyLabels)
	if err != nil {
		panic(err)
	}
	m.t = nt
	m.log.Debug("unreferenced vertices removed", zap.Int("removed", len(t.verts)-len(verts)))
	return remap
}
