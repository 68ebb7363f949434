// Package layout computes coarse quad layouts. Separatrices are traced
// from every singular vertex of an all-quad mesh along straight edge
// chains. The mesh is then cut along them into patches, and each face
// carries the id of its patch as its label.
package layout

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/meshkit/pkg/mesh"
)

// Result is the outcome of CoarseQuadLayout.
type Result struct {
	// Labels holds the patch id of every face.
	Labels []int
	// Separatrices lists the edges marked by tracing, ascending.
	Separatrices []int
	// Singular lists the singular vertices, ascending.
	Singular []int
	// NumPatches is the number of patches; labels run 0..NumPatches-1.
	NumPatches int
}

// VertIsSingular reports whether vid breaks the regular quad pattern: an
// interior vertex not shared by four faces, or a boundary vertex shared by
// more than two. Vertices no face uses are not singular.
func VertIsSingular(m *mesh.Mesh, vid int) bool {
	n := len(m.AdjV2F(vid))
	switch {
	case n == 0:
		return false
	case m.VertIsBoundary(vid):
		return n > 2
	default:
		return n != 4
	}
}

// SingularVerts returns the singular vertices of m in ascending order.
func SingularVerts(m *mesh.Mesh) []int {
	var out []int
	for vid := 0; vid < m.NumVerts(); vid++ {
		if VertIsSingular(m, vid) {
			out = append(out, vid)
		}
	}
	return out
}

// CoarseQuadLayout cuts an all-quad surface mesh into patches. From every
// singular vertex a separatrix follows each incident interior edge,
// crossing regular vertices straight through, until it reaches a singular
// vertex, the boundary or an already marked edge. Separatrix edges are
// marked. Faces are then flood filled across unmarked interior edges;
// patches are numbered in ascending order of their lowest face id and the
// numbers are written as face labels.
//
// A mesh with a non-quad face is rejected with a *mesh.TopologyError
// before anything is marked.
func CoarseQuadLayout(m *mesh.Mesh) (*Result, error) {
	const op = "coarse-quad-layout"
	if m.Kind() != mesh.KindSurface {
		return nil, fmt.Errorf("layout: %s on %s mesh: %w", op, m.Kind(), mesh.ErrCapability)
	}
	for fid := 0; fid < m.NumFaces(); fid++ {
		if n := len(m.Face(fid)); n != 4 {
			return nil, &mesh.TopologyError{Op: op, ID: fid, Reason: fmt.Sprintf("face has %d vertices, want 4", n)}
		}
	}

	res := &Result{Singular: SingularVerts(m)}
	singular := make(map[int]bool, len(res.Singular))
	for _, v := range res.Singular {
		singular[v] = true
	}

	cut := make(map[int]bool)
	for _, s := range res.Singular {
		for _, start := range m.AdjV2E(s) {
			trace(m, s, start, singular, cut)
		}
	}
	res.Separatrices = m.EdgeMarkIf(func(eid int) bool { return cut[eid] })

	res.Labels, res.NumPatches = growPatches(m)
	for fid, l := range res.Labels {
		if err := m.FaceSetLabel(fid, l); err != nil {
			return nil, err
		}
	}
	m.Logger().Info("coarse quad layout",
		zap.Int("singular", len(res.Singular)),
		zap.Int("separatrix_edges", len(res.Separatrices)),
		zap.Int("patches", res.NumPatches))
	return res, nil
}

// trace walks from vertex v along edge eid and adds the chain to cut. It
// stops at marked edges and at edges already cut.
func trace(m *mesh.Mesh, v, eid int, singular, cut map[int]bool) {
	for {
		if cut[eid] || m.EdgeIsMarked(eid) || m.EdgeIsBoundary(eid) {
			return
		}
		cut[eid] = true

		next := m.VertOppositeTo(eid, v)
		if singular[next] || m.VertIsBoundary(next) {
			return
		}
		straight := straightOn(m, next, eid)
		if straight < 0 {
			return
		}
		v, eid = next, straight
	}
}

// straightOn returns the edge leaving regular vertex vid opposite to eid:
// the one incident edge sharing no face with eid. It returns -1 when there
// is no single such edge.
func straightOn(m *mesh.Mesh, vid, eid int) int {
	out := -1
	for _, e := range m.AdjV2E(vid) {
		if e == eid || m.FaceSharedByEdges(e, eid) >= 0 {
			continue
		}
		if out >= 0 {
			return -1
		}
		out = e
	}
	return out
}

// growPatches flood fills faces across unmarked interior edges.
func growPatches(m *mesh.Mesh) ([]int, int) {
	labels := make([]int, m.NumFaces())
	for i := range labels {
		labels[i] = -1
	}
	n := 0
	for seed := range labels {
		if labels[seed] >= 0 {
			continue
		}
		labels[seed] = n
		stack := []int{seed}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range m.AdjF2E(f) {
				if m.EdgeIsMarked(e) {
					continue
				}
				for _, g := range m.AdjE2F(e) {
					if labels[g] < 0 {
						labels[g] = n
						stack = append(stack, g)
					}
				}
			}
		}
		n++
	}
	return labels, n
}
