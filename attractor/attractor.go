// Package attractor computes player attractors in parity game arenas.
//
// The attractor of player p to a target set T inside an active subgame is
// the least set containing T and closed under two rules:
//
//   - a vertex owned by p joins when one of its active successors is in the set;
//   - a vertex owned by 1-p joins when all of its active successors are.
//
// From the attractor p can force the play into T. Its complement in the
// subgame is a trap for p, and every complement vertex keeps a successor
// in the complement, so it is again a subgame.
package attractor

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/katalvlaran/gamegraph/parity"
)

// Sentinel errors for attractor computation.
var (
	// ErrGraphNil is returned if a nil arena is passed.
	ErrGraphNil = errors.New("attractor: graph is nil")

	// ErrMaskLength is returned when a mask does not have one entry per vertex.
	ErrMaskLength = errors.New("attractor: mask length mismatch")

	// ErrInvalidPlayer is returned for a player outside {0,1}.
	ErrInvalidPlayer = errors.New("attractor: invalid player")
)

// Result is an attractor and the moves that realize it.
type Result struct {
	// Set marks attractor members.
	Set []bool

	// Strategy[v] is the successor through which a p-owned vertex v was
	// attracted, or -1 for target vertices, opponent vertices and non-members.
	Strategy []int

	// Size is the number of members.
	Size int
}

// Compute returns player's attractor to target within active.
// A nil active mask means the whole arena; target members outside active
// are ignored.
//
// Implementation:
//   - Stage 1: Count the active successors of every active vertex.
//   - Stage 2: Seed a FIFO with the active target vertices.
//   - Stage 3: For each dequeued x, visit its active predecessors u not yet
//     in the set: owners of player's side join immediately (moving to x),
//     others decrement their counter and join at zero.
//
// Complexity:
//   - Time O(V + E), Space O(V).
func Compute(a *parity.Arena, active, target []bool, player parity.Player) (*Result, error) {
	if a == nil {
		return nil, ErrGraphNil
	}
	if !player.Valid() {
		return nil, fmt.Errorf("attractor: Compute: player %d: %w", int(player), ErrInvalidPlayer)
	}
	n := a.Len()
	if (active != nil && len(active) != n) || len(target) != n {
		return nil, fmt.Errorf("attractor: Compute: want %d entries: %w", n, ErrMaskLength)
	}
	in := func(v int) bool { return active == nil || active[v] }

	res := &Result{
		Set:      make([]bool, n),
		Strategy: make([]int, n),
	}
	remaining := make([]int, n)
	queue := linkedlistqueue.New()
	for v := 0; v < n; v++ {
		res.Strategy[v] = -1
		if !in(v) {
			continue
		}
		for _, w := range a.Successors(v) {
			if in(w) {
				remaining[v]++
			}
		}
		if target[v] {
			res.Set[v] = true
			res.Size++
			queue.Enqueue(v)
		}
	}

	for !queue.Empty() {
		x, _ := queue.Dequeue()
		to := x.(int)
		for _, u := range a.Predecessors(to) {
			if !in(u) || res.Set[u] {
				continue
			}
			if a.Owner(u) == player {
				res.Strategy[u] = to
			} else {
				remaining[u]--
				if remaining[u] > 0 {
					continue
				}
			}
			res.Set[u] = true
			res.Size++
			queue.Enqueue(u)
		}
	}

	return res, nil
}
