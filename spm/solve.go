package spm

import (
	"fmt"

	"github.com/emirpasic/gods/queues/circularbuffer"
	"github.com/katalvlaran/gamegraph/parity"
	"github.com/katalvlaran/gamegraph/solution"
	"github.com/plan-systems/klog"
)

// solver holds the mutable state of one Solve call.
type solver struct {
	arena    *parity.Arena
	opts     Options
	lat      *lattice
	strategy []int
	sched    *scheduler

	// stabilization state
	unstable   []bool
	work       *circularbuffer.Queue
	lastUpdate int

	// scratch measures for prog results
	tmp, best []int

	stats Stats
}

// Solve computes winning regions and winning strategies of a.
//
// Implementation:
//   - Stage 1: Apply options and size the measure arena (ErrOutOfMemory).
//   - Stage 2: Seed: visit vertices from last to first with a full lift,
//     re-lifting the predecessors of every vertex that rose.
//   - Stage 3: Drain the worklist, re-lifting predecessors of each popped
//     vertex; stabilize both players whenever the lift budget is spent.
//   - Stage 4: Sweep every vertex once with a full lift; repeat Stage 3 if
//     anything rose.
//   - Stage 5: Extract winners and strategies.
//
// Errors:
//   - ErrGraphNil, ErrOptionViolation, ErrOutOfMemory.
//   - *InvariantError (matches ErrInvariantViolation) on a corrupted state.
//
// Determinism:
//   - Vertex and edge order of a fully determine the result.
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
	if n == 0 {
		return &Result{Solution: solution.New(0)}, nil
	}
	k := a.MaxPriority() + 1
	if k < 2 {
		k = 2
	}
	if n > o.MaxCells/k {
		return nil, fmt.Errorf("spm: Solve: %d vertices × %d coordinates exceed %d cells: %w", n, k, o.MaxCells, ErrOutOfMemory)
	}

	s := &solver{
		arena:    a,
		opts:     o,
		lat:      newLattice(n, k, a.Priority),
		strategy: make([]int, n),
		sched:    newScheduler(n),
		unstable: make([]bool, n),
		work:     circularbuffer.New(n),
		tmp:      make([]int, k),
		best:     make([]int, k),
	}
	for v := range s.strategy {
		s.strategy[v] = none
	}

	if err := s.run(); err != nil {
		return nil, err
	}
	sol, err := s.extract()
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("spm: solved %d vertices, k=%d: %d lifts, %d attempts, %d stabilizations (%d resolved), %d sweeps",
		n, k, s.stats.Lifts, s.stats.Attempts, s.stats.Stabilizations, s.stats.Resolved, s.stats.Sweeps)

	return &Result{Solution: sol, Stats: s.stats}, nil
}

// SolveGraph compiles g and solves it.
func SolveGraph(g *parity.Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	a, err := g.Compile()
	if err != nil {
		return nil, fmt.Errorf("spm: SolveGraph: %w", err)
	}

	return Solve(a, opts...)
}

// run drives the lifts to a fixpoint.
func (s *solver) run() error {
	if err := s.seed(); err != nil {
		return err
	}
	for {
		if err := s.drain(); err != nil {
			return err
		}
		moved, err := s.sweep()
		if err != nil {
			return err
		}
		if !moved {
			return nil
		}
	}
}

func (s *solver) seed() error {
	for v := s.arena.Len() - 1; v >= 0; v-- {
		ok, err := s.lift(v, none)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		for _, u := range s.arena.Predecessors(v) {
			ok, err := s.lift(u, v)
			if err != nil {
				return err
			}
			if ok {
				s.sched.pushIfAbsent(u)
			}
		}
	}

	return nil
}

func (s *solver) drain() error {
	budget := s.opts.StabilizeFactor * s.arena.Len()
	for {
		v, ok := s.sched.pop()
		if !ok {
			return nil
		}
		for _, u := range s.arena.Predecessors(v) {
			lifted, err := s.lift(u, v)
			if err != nil {
				return err
			}
			if lifted {
				s.sched.pushIfAbsent(u)
			}
		}
		if budget > 0 && s.lastUpdate+budget < s.stats.Lifts {
			s.lastUpdate = s.stats.Lifts
			s.stabilize(0)
			s.stabilize(1)
			s.stats.Stabilizations++
			klog.V(3).Infof("spm: stabilization %d after %d lifts, %d resolved so far",
				s.stats.Stabilizations, s.stats.Lifts, s.stats.Resolved)
		}
	}
}

// sweep re-lifts every vertex against all successors and reports whether
// any counter rose. A sweep without lifts proves the fixpoint and leaves
// every strategy minimal under the final measures.
func (s *solver) sweep() (bool, error) {
	s.stats.Sweeps++
	moved := false
	for v := s.arena.Len() - 1; v >= 0; v-- {
		ok, err := s.lift(v, none)
		if err != nil {
			return false, err
		}
		if ok {
			moved = true
			s.sched.pushIfAbsent(v)
		}
	}

	return moved, nil
}
