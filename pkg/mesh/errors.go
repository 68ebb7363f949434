package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural is wrapped by every *StructuralError.
	ErrStructural = errors.New("structural validity error")
	// ErrTopology is wrapped by every *TopologyError.
	ErrTopology = errors.New("topology invariant violation")
	// ErrCapability is returned by methods that do not apply to the mesh kind.
	ErrCapability = errors.New("operation not supported by mesh kind")
	// ErrOutOfRange is returned for element ids outside the mesh.
	ErrOutOfRange = errors.New("id out of range")
)

// StructuralError reports malformed connectivity passed to a constructor.
// No mesh is created.
type StructuralError struct {
	Elem  string // "face", "poly" or "tet"
	Index int
	Msg   string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("mesh: %s %d: %s", e.Elem, e.Index, e.Msg)
}

// Unwrap lets errors.Is match ErrStructural.
func (e *StructuralError) Unwrap() error { return ErrStructural }

func structural(elem string, index int, format string, args ...any) error {
	return &StructuralError{Elem: elem, Index: index, Msg: fmt.Sprintf(format, args...)}
}

// TopologyError reports an edit that was rejected because it would break
// manifoldness, orientation or validity. The mesh is left unchanged.
type TopologyError struct {
	Op     string
	ID     int
	Reason string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("mesh: %s %d: %s", e.Op, e.ID, e.Reason)
}

// Unwrap lets errors.Is match ErrTopology.
func (e *TopologyError) Unwrap() error { return ErrTopology }

func topologyErr(op string, id int, format string, args ...any) error {
	return &TopologyError{Op: op, ID: id, Reason: fmt.Sprintf(format, args...)}
}

func outOfRange(elem string, id, n int) error {
	return fmt.Errorf("mesh: %s %d of %d: %w", elem, id, n, ErrOutOfRange)
}

func capability(op string, k Kind) error {
	return fmt.Errorf("mesh: %s on %s mesh: %w", op, k, ErrCapability)
}
