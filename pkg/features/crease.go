// Package features detects and prepares sharp features on surface meshes.
// Creases are stored as edge marks on the mesh; padding splits faces so
// that no face touches more than one crease.
package features

import (
	"fmt"

	"github.com/golang/geo/s1"
	"go.uber.org/zap"

	"github.com/chazu/meshkit/pkg/mesh"
)

// DefaultCreaseAngle is the dihedral angle used when no threshold is
// configured.
const DefaultCreaseAngle = 60 * s1.Degree

// MarkSharpCreases marks every edge shared by exactly two faces whose
// normals differ by at least thresh. Boundary and non-manifold edges are
// left alone, and existing marks are never cleared. It returns the number
// of edges at or above the threshold.
func MarkSharpCreases(m *mesh.Mesh, thresh s1.Angle) int {
	n := len(m.EdgeMarkIf(func(eid int) bool {
		a, ok := m.EdgeDihedralAngle(eid)
		return ok && a >= thresh
	}))
	m.Logger().Info("sharp creases marked",
		zap.Float64("threshold_deg", thresh.Degrees()),
		zap.Int("marked", n),
		zap.Int("edges", m.NumEdges()))
	return n
}

// CreaseCandidates returns the faces touching more than one marked edge,
// in ascending id order.
func CreaseCandidates(m *mesh.Mesh) []int {
	var out []int
	for fid := 0; fid < m.NumFaces(); fid++ {
		n := 0
		for _, eid := range m.AdjF2E(fid) {
			if m.EdgeIsMarked(eid) {
				n++
			}
		}
		if n > 1 {
			out = append(out, fid)
		}
	}
	return out
}

// PadCreases splits every face touching more than one marked edge at its
// centroid, in ascending face id order, and returns the number of faces
// split. Afterwards every face touches at most one marked edge, so a
// second call splits nothing.
//
// Each split is committed on its own. On error the faces split so far stay
// split and their count is returned with the error.
func PadCreases(m *mesh.Mesh) (int, error) {
	candidates := CreaseCandidates(m)
	for i, fid := range candidates {
		// Children of a split keep fid or take new ids past the end, so the
		// remaining candidate ids are still valid.
		if _, err := m.FaceSplit(fid, m.FaceCentroid(fid)); err != nil {
			return i, fmt.Errorf("features: pad creases: face %d: %w", fid, err)
		}
	}
	m.Logger().Info("creases padded",
		zap.Int("split", len(candidates)),
		zap.Int("faces", m.NumFaces()))
	return len(candidates), nil
}

// MarkedEdgePairs returns the vertex pairs of the marked edges in
// ascending edge id order, ready to hand to an exporter.
func MarkedEdgePairs(m *mesh.Mesh) [][2]int {
	eids := m.MarkedEdges()
	out := make([][2]int, len(eids))
	for i, eid := range eids {
		out[i] = m.Edge(eid)
	}
	return out
}
