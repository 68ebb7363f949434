package mesh

import (
	"fmt"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/chazu/meshkit/pkg/geom"
)

// Remap translates ids from before an edit to after it. Entries are -1 for
// removed elements. Merged elements map to their survivor.
type Remap struct {
	Verts []int
	Edges []int
	Faces []int
	Polys []int
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// edgeRemap maps every old edge through vmap onto the edges of nt.
func edgeRemap(old *topology, nt *topology, vmap []int) []int {
	out := make([]int, len(old.edges))
	for eid, e := range old.edges {
		a, b := vmap[e[0]], vmap[e[1]]
		if a < 0 || b < 0 || a == b {
			out[eid] = -1
			continue
		}
		out[eid] = nt.edgeOf(a, b)
	}
	return out
}

// EdgeCollapse merges the endpoints of eid into a single vertex placed at
// p. The lower endpoint id survives; the higher one is removed and later
// ids shift down. Triangles on the edge disappear and larger faces on it
// lose a corner. Marks follow their vertex pairs; when two edges merge the
// survivor is marked if either was.
//
// The collapse is rejected with a *TopologyError, leaving the mesh
// untouched, when eid is non-manifold, when both endpoints are on the
// boundary but eid is not, when the endpoints share a neighbour that is not
// the tip of a triangle on eid (link condition), or when a surviving face
// would repeat a vertex, lose its area, flip or coincide with another face.
func (m *Mesh) EdgeCollapse(eid int, p v3.Vec) (Remap, error) {
	const op = "edge-collapse"
	if m.kind != KindSurface {
		return Remap{}, capability(op, m.kind)
	}
	t := m.t
	if eid < 0 || eid >= len(t.edges) {
		return Remap{}, outOfRange("edge", eid, len(t.edges))
	}
	keep, gone := t.edges[eid][0], t.edges[eid][1]
	if keep > gone {
		keep, gone = gone, keep
	}

	if len(t.e2f[eid]) > 2 {
		return Remap{}, topologyErr(op, eid, "edge is non-manifold")
	}
	if !m.EdgeIsBoundary(eid) && m.VertIsBoundary(keep) && m.VertIsBoundary(gone) {
		return Remap{}, topologyErr(op, eid, "collapse would pinch the boundary")
	}

	var tips []int
	for _, f := range t.e2f[eid] {
		if loop := t.faces[f]; len(loop) == 3 {
			tips = append(tips, lo.Without(loop, keep, gone)...)
		}
	}
	common := lo.Without(lo.Intersect(t.v2v[keep], t.v2v[gone]), keep, gone)
	slices.Sort(tips)
	slices.Sort(common)
	if !slices.Equal(tips, common) {
		return Remap{}, topologyErr(op, eid, "link condition fails: shared neighbours %v, triangle tips %v", common, tips)
	}

	// Vertex map: gone merges into keep, later ids shift down.
	vmap := make([]int, len(t.verts))
	for v := range vmap {
		switch {
		case v == gone:
			vmap[v] = keep
		case v > gone:
			vmap[v] = v - 1
		default:
			vmap[v] = v
		}
	}
	verts := make([]v3.Vec, 0, len(t.verts)-1)
	for v, pos := range t.verts {
		if v == gone {
			continue
		}
		if v == keep {
			pos = p
		}
		verts = append(verts, pos)
	}

	fmap := make([]int, len(t.faces))
	seen := make(map[string]int)
	var faces [][]int
	var labels []int
	for fid, loop := range t.faces {
		moved := lo.Contains(loop, keep) || lo.Contains(loop, gone)
		nl := make([]int, 0, len(loop))
		for _, v := range loop {
			nv := vmap[v]
			if len(nl) > 0 && nl[len(nl)-1] == nv {
				continue
			}
			nl = append(nl, nv)
		}
		if len(nl) > 1 && nl[0] == nl[len(nl)-1] {
			nl = nl[:len(nl)-1]
		}
		if len(nl) < 3 {
			if !lo.Contains(t.e2f[eid], fid) {
				return Remap{}, topologyErr(op, eid, "face %d would collapse", fid)
			}
			fmap[fid] = -1
			continue
		}
		if len(lo.Uniq(nl)) != len(nl) {
			return Remap{}, topologyErr(op, eid, "face %d would repeat a vertex", fid)
		}
		if moved {
			k := fmt.Sprint(sorted(nl))
			if other, dup := seen[k]; dup {
				return Remap{}, topologyErr(op, eid, "faces %d and %d would coincide", other, fid)
			}
			seen[k] = fid
			before := m.FaceNormal(fid)
			pts := make([]v3.Vec, len(nl))
			for i, v := range nl {
				pts[i] = verts[v]
			}
			after := geom.PolygonNormal(pts)
			flat := len(pts) == 3 && m.pred.TriangleIsDegenerate3D(pts[0], pts[1], pts[2])
			if flat || after.Dot(before) <= 0 {
				return Remap{}, topologyErr(op, eid, "face %d would flip or become flat", fid)
			}
		}
		fmap[fid] = len(faces)
		faces = append(faces, nl)
		labels = append(labels, t.faceLabels[fid])
	}

	var order [][2]int
	marks := make(map[edgeKey]bool)
	for id, e := range t.edges {
		if id == eid {
			continue
		}
		a, b := vmap[e[0]], vmap[e[1]]
		order = append(order, [2]int{a, b})
		if t.marked[id] {
			marks[keyOf(a, b)] = true
		}
	}
	if faces == nil {
		faces = [][]int{}
	}

	nt, err := m.rebuild(verts, faces, nil, nil, order, marks, labels, nil)
	if err != nil {
		return Remap{}, err
	}
	remap := Remap{
		Verts: vmap,
		Edges: edgeRemap(t, nt, vmap),
		Faces: fmap,
	}
	remap.Edges[eid] = -1
	m.t = nt
	m.log.Debug("edge collapsed",
		zap.Int("edge", eid),
		zap.Int("kept", keep),
		zap.Int("removed", gone),
		zap.Int("faces", len(nt.faces)))
	return remap, nil
}
