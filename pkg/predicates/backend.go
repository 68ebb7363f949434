// Package predicates provides orientation, in-circle and in-sphere
// predicates plus the point-in-simplex and simplex-intersection tests built
// on top of them. The arithmetic is delegated to a Backend, so the same
// Kernel code runs either in native floating point or in exact arithmetic.
// Backends are explicit values: several configurations can coexist in one
// process.
package predicates

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mode selects the arithmetic used by a Backend.
type Mode int

const (
	// Inexact evaluates the predicates in native float64. Results may have
	// the wrong sign when the true value is within a few ulps of zero.
	Inexact Mode = iota
	// Exact evaluates the predicates in arbitrary precision. The sign of
	// every result is correct.
	Exact
)

func (m Mode) String() string {
	switch m {
	case Inexact:
		return "inexact"
	case Exact:
		return "exact"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inexact":
		return Inexact, nil
	case "exact":
		return Exact, nil
	}
	return Inexact, fmt.Errorf("predicates: unknown mode %q, expected exact or inexact", s)
}

// Backend is the arithmetic core of the predicate kernel.
//
// Sign conventions follow Shewchuk:
//   - Orient2D > 0 when a, b, c are in counter-clockwise order.
//   - Orient3D > 0 when d lies below the plane through a, b, c, where a, b, c
//     appear counter-clockwise seen from above. The value is
//     (a-d) . ((b-d) x (c-d)), six times the signed tet volume.
//   - InCircle > 0 when d lies inside the circle through a, b, c, with a, b, c
//     counter-clockwise.
//   - InSphere > 0 when e lies inside the sphere through a, b, c, d, with
//     Orient3D(a, b, c, d) > 0.
type Backend interface {
	Mode() Mode
	Orient2D(a, b, c v2.Vec) float64
	Orient3D(a, b, c, d v3.Vec) float64
	InCircle(a, b, c, d v2.Vec) float64
	InSphere(a, b, c, d, e v3.Vec) float64
}

// NewBackend returns the backend for mode.
func NewBackend(mode Mode) Backend {
	if mode == Exact {
		return exactBackend{}
	}
	return inexactBackend{}
}
