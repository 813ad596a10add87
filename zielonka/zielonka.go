// Package zielonka solves parity games with Zielonka's recursive algorithm.
//
// Given a subgame G with highest priority d favoring p = d mod 2:
//
//  1. A  = Attr_p(G, vertices of priority d)
//  2. (W'_0, W'_1) = solve(G \ A)
//  3. If W'_{1-p} is empty, p wins all of G.
//  4. Otherwise B = Attr_{1-p}(G, W'_{1-p}); 1-p wins B and the rest is
//     solve(G \ B).
//
// Subgames are masks over one shared arena; nothing is copied. The worst
// case is exponential, but the solver is fast on typical games and is the
// reference the measure solver is checked against.
package zielonka

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gamegraph/attractor"
	"github.com/katalvlaran/gamegraph/parity"
	"github.com/katalvlaran/gamegraph/solution"
	"github.com/plan-systems/klog"
)

// Sentinel errors for recursive solving.
var (
	// ErrGraphNil is returned if a nil arena is passed.
	ErrGraphNil = errors.New("zielonka: graph is nil")

	// ErrDepthExceeded is returned when recursion passes Options.MaxDepth.
	ErrDepthExceeded = errors.New("zielonka: maximum recursion depth exceeded")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("zielonka: invalid option supplied")
)

// Option configures Solve via functional arguments.
type Option func(*Options)

// Options holds the tunables of a Solve call.
type Options struct {
	// MaxDepth, if > 0, bounds the recursion depth. 0 means unbounded.
	MaxDepth int

	err error
}

// DefaultOptions returns unbounded recursion.
func DefaultOptions() Options { return Options{} }

// WithMaxDepth bounds the recursion depth.
//
//	d > 0: fail with ErrDepthExceeded beyond depth d
//	d == 0: explicit no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Stats describes the recursion of one Solve call.
type Stats struct {
	MaxDepth int // deepest recursion level reached (root = 1)
	Subgames int // non-empty subgames solved
}

// Result is the outcome of Solve.
type Result struct {
	Solution *solution.Solution
	Stats    Stats
}

type solver struct {
	arena    *parity.Arena
	opts     Options
	winner   []parity.Player
	strategy []int
	stats    Stats
}

// Solve computes winning regions and winning strategies of a.
func Solve(a *parity.Arena, opts ...Option) (*Result, error) {
	if a == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	n := a.Len()
	s := &solver{
		arena:    a,
		opts:     o,
		winner:   make([]parity.Player, n),
		strategy: make([]int, n),
	}
	for v := range s.strategy {
		s.strategy[v] = -1
	}
	all := make([]bool, n)
	for v := range all {
		all[v] = true
	}
	if err := s.solve(all, 1); err != nil {
		return nil, err
	}
	s.fillStrategies()

	sol := solution.New(n)
	for v := 0; v < n; v++ {
		sol.SetWinner(a.ID(v), s.winner[v])
		if a.Owner(v) == s.winner[v] && s.strategy[v] >= 0 {
			sol.SetStrategy(a.ID(v), a.ID(s.strategy[v]))
		}
	}
	klog.V(2).Infof("zielonka: solved %d vertices: %d subgames, depth %d", n, s.stats.Subgames, s.stats.MaxDepth)

	return &Result{Solution: sol, Stats: s.stats}, nil
}

// solve writes winners and owner strategies for every vertex of active.
func (s *solver) solve(active []bool, depth int) error {
	d, size := -1, 0
	for v, in := range active {
		if in {
			size++
			if pr := s.arena.Priority(v); pr > d {
				d = pr
			}
		}
	}
	if size == 0 {
		return nil
	}
	if s.opts.MaxDepth > 0 && depth > s.opts.MaxDepth {
		return fmt.Errorf("zielonka: depth %d: %w", depth, ErrDepthExceeded)
	}
	s.stats.Subgames++
	if depth > s.stats.MaxDepth {
		s.stats.MaxDepth = depth
	}
	p := parity.PlayerOf(d)
	klog.V(3).Infof("zielonka: depth %d, %d vertices, top priority %d", depth, size, d)

	top := make([]bool, len(active))
	for v, in := range active {
		top[v] = in && s.arena.Priority(v) == d
	}
	attr, err := attractor.Compute(s.arena, active, top, p)
	if err != nil {
		return err
	}
	sub := minus(active, attr.Set)
	if err := s.solve(sub, depth+1); err != nil {
		return err
	}

	lost := make([]bool, len(active))
	opponentWins := false
	for v, in := range sub {
		if in && s.winner[v] != p {
			lost[v] = true
			opponentWins = true
		}
	}

	if !opponentWins {
		for v, in := range attr.Set {
			if !in {
				continue
			}
			s.winner[v] = p
			if s.arena.Owner(v) != p {
				continue
			}
			s.strategy[v] = attr.Strategy[v]
			if s.strategy[v] < 0 {
				s.strategy[v] = s.firstIn(v, active)
			}
		}
		return nil
	}

	back, err := attractor.Compute(s.arena, active, lost, p.Opponent())
	if err != nil {
		return err
	}
	for v, in := range back.Set {
		if !in {
			continue
		}
		s.winner[v] = p.Opponent()
		if s.arena.Owner(v) == p.Opponent() && !lost[v] {
			s.strategy[v] = back.Strategy[v]
		}
	}

	return s.solve(minus(active, back.Set), depth+1)
}

// fillStrategies gives any winning owner still without a move a successor
// inside its own region.
func (s *solver) fillStrategies() {
	for v := 0; v < s.arena.Len(); v++ {
		w := s.winner[v]
		if s.arena.Owner(v) != w || s.strategy[v] >= 0 {
			continue
		}
		for _, u := range s.arena.Successors(v) {
			if s.winner[u] == w {
				s.strategy[v] = u
				break
			}
		}
	}
}

// firstIn returns v's first successor inside active, or -1.
func (s *solver) firstIn(v int, active []bool) int {
	for _, w := range s.arena.Successors(v) {
		if active[w] {
			return w
		}
	}

	return -1
}

func minus(a, b []bool) []bool {
	out := make([]bool, len(a))
	for v := range a {
		out[v] = a[v] && !b[v]
	}

	return out
}
