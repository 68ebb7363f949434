// Package script runs mesh pipelines written in a small Lisp. It wraps
// zygomys in a sandboxed environment with builtins for building meshes,
// editing them and running the feature and layout passes.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/golang/geo/s1"
	"go.uber.org/zap"

	"github.com/chazu/meshkit/pkg/features"
	"github.com/chazu/meshkit/pkg/mesh"
	"github.com/chazu/meshkit/pkg/predicates"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a failing builtin.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the output of a successful evaluation.
type Result struct {
	// Mesh is the mesh most recently built or passed to a builtin.
	Mesh *mesh.Mesh
	// Meshes holds every mesh the script built, in creation order.
	Meshes []*mesh.Mesh
	// Value is the printed form of the last expression.
	Value string
}

// Engine evaluates scripts. It is safe for concurrent use; each call to
// Evaluate creates a fresh sandboxed environment.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	pred    *predicates.Kernel
	log     *zap.Logger
	timeout time.Duration
	crease  s1.Angle
}

// Option configures an Engine.
type Option func(*Engine)

// WithPredicates sets the predicate kernel given to every mesh a script
// builds and used by the orientation builtins.
func WithPredicates(k *predicates.Kernel) Option {
	return func(e *Engine) {
		if k != nil {
			e.pred = k
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTimeout sets the hard limit for a single evaluation.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithCreaseAngle sets the threshold mark-creases uses when a script does
// not pass one.
func WithCreaseAngle(a s1.Angle) Option {
	return func(e *Engine) { e.crease = a }
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		pred:    predicates.Default(),
		log:     zap.NewNop(),
		timeout: EvalTimeout,
		crease:  features.DefaultCreaseAngle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs source in a fresh sandbox.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On parse or builtin failure: returns nil result + eval errors + nil error
//   - On fatal failure: returns nil + nil + error, wrapping ErrTimeout or
//     ErrSuperseded where they apply
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	gen := e.begin()
	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(source)
		ch <- evalResult{result: res, errors: evalErrs, err: err}
	}()

	return e.await(ch, gen)
}

func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return &Result{}, nil, nil
	}
	start := time.Now()

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	s := &session{e: e}
	registerBuiltins(env, s)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	v, err := env.Run()
	if err != nil {
		evalErrs := parseZygomysError(err)
		e.log.Debug("script failed", zap.String("error", evalErrs[0].Message))
		return nil, evalErrs, nil
	}

	res := &Result{Mesh: s.last, Meshes: s.meshes}
	if v != nil {
		res.Value = v.SexpString(nil)
	}
	e.log.Debug("script evaluated",
		zap.Int("meshes", len(s.meshes)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// keeping the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, p := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := p.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
