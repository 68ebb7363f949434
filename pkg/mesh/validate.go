package mesh

import (
	"fmt"
	"slices"
)

// Validate rebuilds adjacency from primary connectivity and reports the
// first relation that differs from the stored one. Edge ids are compared
// as stored. A nil error means every invariant holds.
func (m *Mesh) Validate() error {
	t := m.t
	ref, err := build(t.verts, t.faces, t.polys, t.winding, t.edges)
	if err != nil {
		return err
	}
	if len(ref.edges) != len(t.edges) {
		return fmt.Errorf("mesh: validate: %d stored edges, faces reference %d", len(t.edges), len(ref.edges))
	}
	for i := range t.edges {
		if keyOf(t.edges[i][0], t.edges[i][1]) != keyOf(ref.edges[i][0], ref.edges[i][1]) {
			return fmt.Errorf("mesh: validate: edge %d is %v, expected %v", i, t.edges[i], ref.edges[i])
		}
	}
	if len(t.keys) != len(ref.keys) {
		return fmt.Errorf("mesh: validate: edge index has %d keys, expected %d", len(t.keys), len(ref.keys))
	}
	for k, id := range ref.keys {
		if t.keys[k] != id {
			return fmt.Errorf("mesh: validate: edge index maps %v to %d, expected %d", k, t.keys[k], id)
		}
	}
	if len(t.marked) != len(t.edges) || len(t.faceLabels) != len(t.faces) || len(t.polyLabels) != len(t.polys) {
		return fmt.Errorf("mesh: validate: attribute arrays out of sync")
	}

	rels := []struct {
		name     string
		got, exp [][]int
		ordered  bool
	}{
		{"v2v", t.v2v, ref.v2v, false},
		{"v2e", t.v2e, ref.v2e, false},
		{"v2f", t.v2f, ref.v2f, false},
		{"v2p", t.v2p, ref.v2p, false},
		{"e2f", t.e2f, ref.e2f, false},
		{"e2p", t.e2p, ref.e2p, false},
		{"f2e", t.f2e, ref.f2e, true},
		{"f2p", t.f2p, ref.f2p, false},
		{"p2e", t.p2e, ref.p2e, false},
		{"p2v", t.p2v, ref.p2v, false},
	}
	for _, r := range rels {
		if len(r.got) != len(r.exp) {
			return fmt.Errorf("mesh: validate: %s has %d entries, expected %d", r.name, len(r.got), len(r.exp))
		}
		for i := range r.got {
			g, e := r.got[i], r.exp[i]
			if !r.ordered {
				g, e = sorted(g), sorted(e)
			}
			if !slices.Equal(g, e) {
				return fmt.Errorf("mesh: validate: %s[%d] = %v, expected %v", r.name, i, r.got[i], r.exp[i])
			}
		}
	}
	return nil
}

func sorted(s []int) []int {
	c := clone(s)
	slices.Sort(c)
	return c
}
