package predicates

import (
	"errors"
	"fmt"
)

// PointInSimplex locates a query point relative to a simplex. The value
// names the lowest dimensional sub-simplex that contains the point. Vertex,
// edge and face numbering follows the tables in tables.go.
type PointInSimplex int

const (
	Outside PointInSimplex = iota // strictly outside the simplex
	Inside                        // strictly inside (borders excluded)
	OnVert0
	OnVert1
	OnVert2 // triangles and tets
	OnVert3 // tets
	OnEdge0 // triangles and tets
	OnEdge1
	OnEdge2
	OnEdge3 // tets
	OnEdge4
	OnEdge5
	OnFace0 // tets
	OnFace1
	OnFace2
	OnFace3
)

// OnVert returns the location for vertex i.
func OnVert(i int) PointInSimplex { return OnVert0 + PointInSimplex(i) }

// OnEdge returns the location for edge i.
func OnEdge(i int) PointInSimplex { return OnEdge0 + PointInSimplex(i) }

// OnFace returns the location for face i.
func OnFace(i int) PointInSimplex { return OnFace0 + PointInSimplex(i) }

// IsVertex reports whether the point coincides with a vertex.
func (p PointInSimplex) IsVertex() bool { return p >= OnVert0 && p <= OnVert3 }

// IsEdge reports whether the point lies inside an edge.
func (p PointInSimplex) IsEdge() bool { return p >= OnEdge0 && p <= OnEdge5 }

// IsFace reports whether the point lies inside a face of a tet.
func (p PointInSimplex) IsFace() bool { return p >= OnFace0 && p <= OnFace3 }

// Index returns the sub-simplex index for vertex, edge and face locations,
// and -1 for Inside and Outside.
func (p PointInSimplex) Index() int {
	switch {
	case p.IsVertex():
		return int(p - OnVert0)
	case p.IsEdge():
		return int(p - OnEdge0)
	case p.IsFace():
		return int(p - OnFace0)
	default:
		return -1
	}
}

func (p PointInSimplex) String() string {
	switch {
	case p == Outside:
		return "outside"
	case p == Inside:
		return "inside"
	case p.IsVertex():
		return fmt.Sprintf("on-vert-%d", p.Index())
	case p.IsEdge():
		return fmt.Sprintf("on-edge-%d", p.Index())
	case p.IsFace():
		return fmt.Sprintf("on-face-%d", p.Index())
	default:
		return fmt.Sprintf("PointInSimplex(%d)", int(p))
	}
}

// SimplexIntersection classifies how two simplices meet.
type SimplexIntersection int

const (
	// DoNotIntersect means the simplices are fully disjoint.
	DoNotIntersect SimplexIntersection = iota
	// SimplicialComplex means the simplices coincide or meet exactly at a
	// shared sub-simplex, forming a valid simplicial complex.
	SimplicialComplex
	// Intersect means the simplices meet in a non-conforming way.
	Intersect
	// Overlap means collinear segments partially overlap.
	Overlap
)

func (s SimplexIntersection) String() string {
	switch s {
	case DoNotIntersect:
		return "do-not-intersect"
	case SimplicialComplex:
		return "simplicial-complex"
	case Intersect:
		return "intersect"
	case Overlap:
		return "overlap"
	default:
		return fmt.Sprintf("SimplexIntersection(%d)", int(s))
	}
}

// ErrDegenerateInput is the sentinel wrapped by every DegenerateInputError.
var ErrDegenerateInput = errors.New("degenerate input")

// DegenerateInputError reports an intersection test called with a zero
// length segment, zero area triangle or zero volume tet. Callers filter such
// simplices with the *IsDegenerate predicates beforehand.
type DegenerateInputError struct {
	Op      string // predicate that rejected the input
	Simplex string // "ray", "segment", "triangle" or "tet"
	Arg     int    // which simplex argument, 0-based
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("predicates: %s: %s argument %d is degenerate", e.Op, e.Simplex, e.Arg)
}

// Unwrap lets errors.Is match ErrDegenerateInput.
func (e *DegenerateInputError) Unwrap() error { return ErrDegenerateInput }
