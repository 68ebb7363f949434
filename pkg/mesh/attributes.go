package mesh

import "go.uber.org/zap"

// Edge marks and element labels are attributes: setting them never changes
// topology and setting a value twice is a no-op.

// EdgeIsMarked reports whether eid is marked.
func (m *Mesh) EdgeIsMarked(eid int) bool { return m.t.marked[eid] }

// MarkedEdges returns the ids of every marked edge in ascending order.
func (m *Mesh) MarkedEdges() []int {
	var out []int
	for eid, mk := range m.t.marked {
		if mk {
			out = append(out, eid)
		}
	}
	return out
}

// NumMarkedEdges returns the number of marked edges.
func (m *Mesh) NumMarkedEdges() int {
	n := 0
	for _, mk := range m.t.marked {
		if mk {
			n++
		}
	}
	return n
}

// EdgeMark marks eid.
func (m *Mesh) EdgeMark(eid int) error { return m.EdgeSetMarked(eid, true) }

// EdgeUnmark clears the mark on eid.
func (m *Mesh) EdgeUnmark(eid int) error { return m.EdgeSetMarked(eid, false) }

// EdgeSetMarked sets the mark on eid.
func (m *Mesh) EdgeSetMarked(eid int, marked bool) error {
	if eid < 0 || eid >= len(m.t.edges) {
		return outOfRange("edge", eid, len(m.t.edges))
	}
	m.t.marked[eid] = marked
	return nil
}

// EdgeMarkIf marks every edge for which keep returns true and returns those
// edges in ascending order, including ones that were already marked.
func (m *Mesh) EdgeMarkIf(keep func(eid int) bool) []int {
	var out []int
	for eid := range m.t.marked {
		if keep(eid) {
			m.t.marked[eid] = true
			out = append(out, eid)
		}
	}
	return out
}

// EdgeUnmarkAll clears every edge mark.
func (m *Mesh) EdgeUnmarkAll() {
	for i := range m.t.marked {
		m.t.marked[i] = false
	}
	m.log.Debug("edge marks cleared", zap.Int("edges", len(m.t.marked)))
}

// FaceLabel returns the label of fid.
func (m *Mesh) FaceLabel(fid int) int { return m.t.faceLabels[fid] }

// FaceSetLabel sets the label of fid.
func (m *Mesh) FaceSetLabel(fid, label int) error {
	if fid < 0 || fid >= len(m.t.faces) {
		return outOfRange("face", fid, len(m.t.faces))
	}
	m.t.faceLabels[fid] = label
	return nil
}

// PolyLabel returns the label of pid.
func (m *Mesh) PolyLabel(pid int) int { return m.t.polyLabels[pid] }

// PolySetLabel sets the label of pid.
func (m *Mesh) PolySetLabel(pid, label int) error {
	if pid < 0 || pid >= len(m.t.polys) {
		return outOfRange("poly", pid, len(m.t.polys))
	}
	m.t.polyLabels[pid] = label
	return nil
}

// Labels returns the per-face labels of a surface mesh or the per-poly
// labels of a polyhedral mesh.
func (m *Mesh) Labels() []int {
	if m.kind == KindPolyhedral {
		return append([]int(nil), m.t.polyLabels...)
	}
	return append([]int(nil), m.t.faceLabels...)
}
