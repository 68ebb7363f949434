package script

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past the engine's limit.
	ErrTimeout = errors.New("script: evaluation timed out")
	// ErrSuperseded is returned for a script that finished after a newer
	// Evaluate call had started.
	ErrSuperseded = errors.New("script: evaluation superseded by newer request")
)

type evalResult struct {
	result *Result
	errors []EvalError
	err    error
}

// begin starts a new generation and returns its number.
func (e *Engine) begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

func (e *Engine) isCurrent(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}

// await returns the outcome sent on ch for generation gen. The evaluating
// goroutine is left running after a timeout; ch is buffered so its send
// never blocks.
func (e *Engine) await(ch <-chan evalResult, gen uint64) (*Result, []EvalError, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if !e.isCurrent(gen) {
			return nil, nil, ErrSuperseded
		}
		return res.result, res.errors, res.err
	case <-timer.C:
		e.log.Warn("script timed out", zap.Duration("limit", e.timeout))
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	}
}
