package features

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/meshkit/pkg/geom"
	"github.com/chazu/meshkit/pkg/mesh"
)

// RayHits returns the faces of m hit by ray r, in ascending order. A face
// is hit when r meets any of its fan triangles. Rays lying in a face's
// plane do not hit it.
func RayHits(m *mesh.Mesh, r geom.Ray) ([]int, error) {
	k := m.Predicates()
	tris, _, err := fanTriangles(m)
	if err != nil {
		return nil, fmt.Errorf("features: ray hits: %w", err)
	}
	// Triangles entirely on one side of either plane through the ray, or
	// entirely behind its origin, cannot be hit.
	planes := r.ToPlanes()
	eps := 1e-9 * (geom.Diagonal3(m.BoundingBox()) + 1)

	var out []int
	tested := 0
	for _, t := range tris {
		if len(out) > 0 && out[len(out)-1] == t.face {
			continue
		}
		if !straddles(planes, t, eps) || behind(r, t) {
			continue
		}
		tested++
		hit, err := k.RayHitsTriangle(r, t.p[0], t.p[1], t.p[2])
		if err != nil {
			return nil, fmt.Errorf("features: ray hits: face %d: %w", t.face, err)
		}
		if hit {
			out = append(out, t.face)
		}
	}
	m.Logger().Debug("ray hits",
		zap.Int("triangles", len(tris)),
		zap.Int("tested", tested),
		zap.Int("faces", len(out)))
	return out, nil
}

// straddles reports whether t comes within eps of every plane.
func straddles(planes []geom.Plane, t *triangle, eps float64) bool {
	for _, pl := range planes {
		below, above := false, false
		for _, p := range t.p {
			d := pl.SignedDistance(p)
			below = below || d <= eps
			above = above || d >= -eps
		}
		if !below || !above {
			return false
		}
	}
	return true
}

func behind(r geom.Ray, t *triangle) bool {
	for _, p := range t.p {
		if r.OnPositiveHalfSpace(p) {
			return false
		}
	}
	return true
}
