package solution

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gamegraph/parity"
)

// ErrInvalidSolution is wrapped by every error returned from Check.
var ErrInvalidSolution = errors.New("solution: invalid solution")

// Sentinel errors reported by Check.
var (
	ErrGraphNil           = errors.New("solution: graph is nil")
	ErrUnknownVertex      = fmt.Errorf("%w: unknown vertex", ErrInvalidSolution)
	ErrIncomplete         = fmt.Errorf("%w: vertex without winner", ErrInvalidSolution)
	ErrMissingStrategy    = fmt.Errorf("%w: winning owner without strategy", ErrInvalidSolution)
	ErrUnexpectedStrategy = fmt.Errorf("%w: strategy at a vertex lost by its owner", ErrInvalidSolution)
	ErrIllegalMove        = fmt.Errorf("%w: strategy move is not an edge", ErrInvalidSolution)
	ErrRegionNotClosed    = fmt.Errorf("%w: winning region not closed", ErrInvalidSolution)
)

// Check verifies s against a. It requires:
//
//  1. totality: every vertex of a has a winner and s names no other vertex;
//  2. strategy soundness: a vertex won by its owner has a move along an edge
//     of a that stays in the owner's region, and no other vertex has a move;
//  3. closure: a vertex won by the player not owning it has all successors
//     in that player's region.
//
// These are necessary conditions of a correct solution, not a proof of one.
//
// Complexity: O(V + E).
func Check(a *parity.Arena, s *Solution) error {
	if a == nil {
		return ErrGraphNil
	}
	for id := range s.winner {
		if _, ok := a.Index(id); !ok {
			return fmt.Errorf("solution: Check: winner of %q: %w", id, ErrUnknownVertex)
		}
	}

	winners := make([]parity.Player, a.Len())
	for v := 0; v < a.Len(); v++ {
		w, ok := s.winner[a.ID(v)]
		if !ok {
			return fmt.Errorf("solution: Check: %q: %w", a.ID(v), ErrIncomplete)
		}
		winners[v] = w
	}

	for v := 0; v < a.Len(); v++ {
		id := a.ID(v)
		w := winners[v]
		to, hasMove := s.strategy[id]
		if a.Owner(v) != w {
			if hasMove {
				return fmt.Errorf("solution: Check: %q: %w", id, ErrUnexpectedStrategy)
			}
			for _, u := range a.Successors(v) {
				if winners[u] != w {
					return fmt.Errorf("solution: Check: %q (won by %s) escapes to %q: %w", id, w, a.ID(u), ErrRegionNotClosed)
				}
			}
			continue
		}
		if !hasMove {
			return fmt.Errorf("solution: Check: %q: %w", id, ErrMissingStrategy)
		}
		u, ok := a.Index(to)
		if !ok || !a.HasEdge(v, u) {
			return fmt.Errorf("solution: Check: %q→%q: %w", id, to, ErrIllegalMove)
		}
		if winners[u] != w {
			return fmt.Errorf("solution: Check: %q (won by %s) moves to %q: %w", id, w, to, ErrRegionNotClosed)
		}
	}

	return nil
}
