package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// edgeKey identifies an undirected edge by its sorted endpoints.
type edgeKey [2]int

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// topology is one immutable snapshot of primary connectivity, attributes and
// every derived adjacency map. Mutators build a complete replacement and
// swap it in, except FaceSplit which patches a snapshot it owns.
type topology struct {
	verts   []v3.Vec
	edges   [][2]int
	faces   [][]int
	polys   [][]int
	winding [][]bool

	marked     []bool
	faceLabels []int
	polyLabels []int

	keys map[edgeKey]int

	// v2e is ascending by edge id and v2v[v][i] is the far end of v2e[v][i].
	v2v [][]int
	v2e [][]int
	v2f [][]int
	v2p [][]int
	e2f [][]int
	e2p [][]int
	// f2e[f][i] joins face vertices i and i+1.
	f2e [][]int
	f2p [][]int
	p2e [][]int
	p2v [][]int
}

// build validates primary connectivity and derives all adjacency. Edges
// listed in order keep their relative order and come first; edges only
// found in faces follow in first-occurrence order. Entries of order that no
// face references are dropped. Attributes are zeroed.
func build(verts []v3.Vec, faces, polys [][]int, winding [][]bool, order [][2]int) (*topology, error) {
	nv := len(verts)
	for fid, f := range faces {
		if len(f) < 3 {
			return nil, structural("face", fid, "has %d vertices, need at least 3", len(f))
		}
		seen := make(map[int]bool, len(f))
		for _, v := range f {
			if v < 0 || v >= nv {
				return nil, structural("face", fid, "vertex %d out of range [0,%d)", v, nv)
			}
			if seen[v] {
				return nil, structural("face", fid, "repeats vertex %d", v)
			}
			seen[v] = true
		}
	}
	if polys != nil || winding != nil {
		if len(winding) != len(polys) {
			return nil, structural("poly", len(winding), "winding has %d entries for %d polys", len(winding), len(polys))
		}
		for pid, p := range polys {
			if len(p) < 4 {
				return nil, structural("poly", pid, "has %d faces, need at least 4", len(p))
			}
			if len(winding[pid]) != len(p) {
				return nil, structural("poly", pid, "has %d faces but %d winding bits", len(p), len(winding[pid]))
			}
			seen := make(map[int]bool, len(p))
			for _, f := range p {
				if f < 0 || f >= len(faces) {
					return nil, structural("poly", pid, "face %d out of range [0,%d)", f, len(faces))
				}
				if seen[f] {
					return nil, structural("poly", pid, "repeats face %d", f)
				}
				seen[f] = true
			}
		}
	}

	t := &topology{
		verts:   verts,
		faces:   faces,
		polys:   polys,
		winding: winding,
		keys:    make(map[edgeKey]int),
	}

	used := make(map[edgeKey]bool)
	for _, f := range faces {
		for i := range f {
			used[keyOf(f[i], f[(i+1)%len(f)])] = true
		}
	}
	addEdge := func(a, b int) int {
		k := keyOf(a, b)
		if id, ok := t.keys[k]; ok {
			return id
		}
		id := len(t.edges)
		t.keys[k] = id
		t.edges = append(t.edges, [2]int{a, b})
		return id
	}
	for _, e := range order {
		if used[keyOf(e[0], e[1])] {
			addEdge(e[0], e[1])
		}
	}

	t.f2e = make([][]int, len(faces))
	for fid, f := range faces {
		t.f2e[fid] = make([]int, len(f))
		for i := range f {
			t.f2e[fid][i] = addEdge(f[i], f[(i+1)%len(f)])
		}
	}

	ne := len(t.edges)
	t.v2v = make([][]int, nv)
	t.v2e = make([][]int, nv)
	for eid, e := range t.edges {
		t.v2e[e[0]] = append(t.v2e[e[0]], eid)
		t.v2v[e[0]] = append(t.v2v[e[0]], e[1])
		t.v2e[e[1]] = append(t.v2e[e[1]], eid)
		t.v2v[e[1]] = append(t.v2v[e[1]], e[0])
	}

	t.v2f = make([][]int, nv)
	t.e2f = make([][]int, ne)
	for fid, f := range faces {
		for _, v := range f {
			t.v2f[v] = append(t.v2f[v], fid)
		}
		for _, eid := range t.f2e[fid] {
			t.e2f[eid] = append(t.e2f[eid], fid)
		}
	}

	t.v2p = make([][]int, nv)
	t.e2p = make([][]int, ne)
	t.f2p = make([][]int, len(faces))
	t.p2e = make([][]int, len(polys))
	t.p2v = make([][]int, len(polys))
	for pid, p := range polys {
		seenV := make(map[int]bool)
		seenE := make(map[int]bool)
		for _, fid := range p {
			t.f2p[fid] = append(t.f2p[fid], pid)
			for _, v := range faces[fid] {
				if !seenV[v] {
					seenV[v] = true
					t.p2v[pid] = append(t.p2v[pid], v)
					t.v2p[v] = append(t.v2p[v], pid)
				}
			}
			for _, eid := range t.f2e[fid] {
				if !seenE[eid] {
					seenE[eid] = true
					t.p2e[pid] = append(t.p2e[pid], eid)
					t.e2p[eid] = append(t.e2p[eid], pid)
				}
			}
		}
	}

	t.marked = make([]bool, ne)
	t.faceLabels = make([]int, len(faces))
	t.polyLabels = make([]int, len(polys))
	return t, nil
}

// edgeOf returns the id of edge ab, or -1.
func (t *topology) edgeOf(a, b int) int {
	if id, ok := t.keys[keyOf(a, b)]; ok {
		return id
	}
	return -1
}

// markedKeys returns the vertex pairs of every marked edge.
func (t *topology) markedKeys() map[edgeKey]bool {
	out := make(map[edgeKey]bool)
	for eid, m := range t.marked {
		if m {
			out[keyOf(t.edges[eid][0], t.edges[eid][1])] = true
		}
	}
	return out
}

// applyMarks marks every edge whose key is in keys.
func (t *topology) applyMarks(keys map[edgeKey]bool) {
	for k := range keys {
		if id, ok := t.keys[k]; ok {
			t.marked[id] = true
		}
	}
}

// cloneInts deep-copies a jagged slice.
func cloneInts(in [][]int) [][]int {
	if in == nil {
		return nil
	}
	out := make([][]int, len(in))
	for i, s := range in {
		out[i] = append([]int(nil), s...)
	}
	return out
}

func cloneBools(in [][]bool) [][]bool {
	if in == nil {
		return nil
	}
	out := make([][]bool, len(in))
	for i, s := range in {
		out[i] = append([]bool(nil), s...)
	}
	return out
}
