package spm

import (
	"github.com/katalvlaran/gamegraph/parity"
	"github.com/katalvlaran/gamegraph/solution"
)

// extract reads the converged measures into a Solution. It only reads
// solver state, so repeated calls return equal solutions.
func (s *solver) extract() (*solution.Solution, error) {
	n := s.arena.Len()
	sol := solution.New(n)
	for v := 0; v < n; v++ {
		pm := s.lat.measure(v)
		top0, top1 := pm[0] == top, pm[1] == top
		if top0 == top1 {
			reason := "neither counter saturated"
			if top0 {
				reason = "both counters saturated"
			}
			return nil, s.violation(v, reason)
		}

		winner := parity.Odd
		if top0 {
			winner = parity.Even
		}
		id := s.arena.ID(v)
		sol.SetWinner(id, winner)
		if s.arena.Owner(v) == winner && s.strategy[v] != none {
			sol.SetStrategy(id, s.arena.ID(s.strategy[v]))
		}
	}

	return sol, nil
}

// violation captures v's counters into an *InvariantError.
func (s *solver) violation(v int, reason string) error {
	pm := s.lat.measure(v)

	return &InvariantError{
		Vertex:   s.arena.ID(v),
		Reason:   reason,
		Counter0: s.lat.counter(pm, 0),
		Counter1: s.lat.counter(pm, 1),
	}
}
