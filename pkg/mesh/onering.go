package mesh

import (
	"github.com/samber/lo"
)

// OneRing is the ordered neighbourhood of a surface vertex. Faces are listed
// counter-clockwise with respect to the face winding. Verts[i] and Edges[i]
// are the spoke entering Faces[i]; a boundary vertex has one more spoke than
// faces and its ring starts at a boundary edge. Link is the closed (interior)
// or open (boundary) polyline of every vertex on the incident faces except
// the centre, in traversal order.
type OneRing struct {
	Verts []int
	Edges []int
	Faces []int
	Link  []int
}

// VertOrderedOneRing returns the ordered one-ring of vid. It fails with a
// *TopologyError when the faces around vid do not form a single
// consistently oriented fan.
func (m *Mesh) VertOrderedOneRing(vid int) (OneRing, error) {
	const op = "one-ring"
	if m.kind != KindSurface {
		return OneRing{}, capability(op, m.kind)
	}
	if vid < 0 || vid >= len(m.t.verts) {
		return OneRing{}, outOfRange("vertex", vid, len(m.t.verts))
	}
	t := m.t
	incident := t.v2f[vid]
	if len(incident) == 0 {
		return OneRing{}, nil
	}
	for _, e := range t.v2e[vid] {
		if len(t.e2f[e]) > 2 {
			return OneRing{}, topologyErr(op, vid, "edge %d is non-manifold", e)
		}
	}

	// next/prev of vid inside face f.
	around := func(f int) (next, prev int) {
		loop := t.faces[f]
		i := lo.IndexOf(loop, vid)
		n := len(loop)
		return loop[(i+1)%n], loop[(i+n-1)%n]
	}

	// A boundary vertex starts from the face whose outgoing spoke is on the
	// boundary; an interior one from its lowest face.
	start := incident[0]
	boundary := false
	for _, f := range incident {
		next, _ := around(f)
		if len(t.e2f[t.edgeOf(vid, next)]) == 1 {
			start = f
			boundary = true
			break
		}
	}

	var ring OneRing
	visited := make(map[int]bool, len(incident))
	f := start
	for {
		visited[f] = true
		next, prev := around(f)
		ring.Verts = append(ring.Verts, next)
		ring.Edges = append(ring.Edges, t.edgeOf(vid, next))
		ring.Faces = append(ring.Faces, f)

		loop := t.faces[f]
		i := lo.IndexOf(loop, next)
		for loop[i] != prev {
			ring.Link = append(ring.Link, loop[i])
			i = (i + 1) % len(loop)
		}

		out := t.edgeOf(vid, prev)
		g := -1
		for _, h := range t.e2f[out] {
			if h != f {
				g = h
			}
		}
		if g < 0 {
			if !boundary {
				return OneRing{}, topologyErr(op, vid, "fan is open at edge %d", out)
			}
			ring.Verts = append(ring.Verts, prev)
			ring.Edges = append(ring.Edges, out)
			ring.Link = append(ring.Link, prev)
			break
		}
		if gn, _ := around(g); gn != prev {
			return OneRing{}, topologyErr(op, vid, "faces %d and %d have opposite winding", f, g)
		}
		if g == start {
			break
		}
		if visited[g] {
			return OneRing{}, topologyErr(op, vid, "fan revisits face %d", g)
		}
		f = g
	}
	if len(ring.Faces) != len(incident) {
		return OneRing{}, topologyErr(op, vid, "fan covers %d of %d faces", len(ring.Faces), len(incident))
	}
	return ring, nil
}
