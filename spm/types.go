package spm

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gamegraph/parity"
	"github.com/katalvlaran/gamegraph/solution"
)

// Sentinel errors for measure solving.
var (
	// ErrGraphNil is returned if a nil arena or graph is passed.
	ErrGraphNil = errors.New("spm: graph is nil")

	// ErrInvalidInput is the precondition failure family shared with parity.
	ErrInvalidInput = parity.ErrInvalidInput

	// ErrInvariantViolation signals a measure state no correct run produces.
	// It is always wrapped in an *InvariantError.
	ErrInvariantViolation = errors.New("spm: invariant violation")

	// ErrOutOfMemory is returned when the measure arena would exceed MaxCells.
	ErrOutOfMemory = errors.New("spm: measure arena too large")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("spm: invalid option supplied")
)

// InvariantError reports the vertex and both counters of a broken measure.
type InvariantError struct {
	Vertex   string
	Reason   string
	Counter0 []int // coordinates 0, 2, 4, …; -1 at index 0 is TOP
	Counter1 []int // coordinates 1, 3, 5, …; -1 at index 0 is TOP
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("spm: invariant violation at vertex %q: %s (counter0=%v counter1=%v)",
		e.Vertex, e.Reason, e.Counter0, e.Counter1)
}

// Unwrap lets errors.Is match ErrInvariantViolation.
func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

// DefaultStabilizeFactor is the lift budget multiplier between stabilization passes.
const DefaultStabilizeFactor = 10

// DefaultMaxCells caps |V|·k measure cells (2 GiB of int on 64-bit platforms).
const DefaultMaxCells = 1 << 28

// Option configures Solve via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation by Solve.
type Option func(*Options)

// Options holds the tunables of a Solve call.
type Options struct {
	// StabilizeFactor triggers a stabilization pass after StabilizeFactor·|V|
	// lifts since the previous one. Zero disables the pass.
	StabilizeFactor int

	// MaxCells bounds the measure arena size |V|·k.
	MaxCells int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns stabilization every 10·|V| lifts and DefaultMaxCells.
func DefaultOptions() Options {
	return Options{
		StabilizeFactor: DefaultStabilizeFactor,
		MaxCells:        DefaultMaxCells,
	}
}

// WithStabilizeFactor sets the stabilization throttle.
//
//	f > 0: pass after f·|V| lifts
//	f == 0: no stabilization
//	f < 0: invalid option → ErrOptionViolation
func WithStabilizeFactor(f int) Option {
	return func(o *Options) {
		if f < 0 {
			o.err = fmt.Errorf("%w: StabilizeFactor cannot be negative (%d)", ErrOptionViolation, f)
			return
		}
		o.StabilizeFactor = f
	}
}

// WithMaxCells bounds the measure arena; n must be positive.
func WithMaxCells(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxCells must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxCells = n
	}
}

// Stats counts the work of one Solve call.
type Stats struct {
	Lifts          int // lift calls that raised a counter
	Attempts       int // lift calls that changed nothing
	Stabilizations int // stabilization passes (both players)
	Resolved       int // vertices decided by stabilization
	Sweeps         int // closing full re-lift sweeps
}

// Result is the outcome of Solve.
type Result struct {
	Solution *solution.Solution
	Stats    Stats
}
