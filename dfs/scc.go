package dfs

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/gamegraph/parity"
)

// Components is the SCC decomposition of an arena.
type Components struct {
	// Of[v] is the component index of v, or -1 for inactive vertices.
	Of []int

	// Members lists each component's vertices in ascending order.
	// Components come out in reverse topological order: no edge leaves
	// a component for one with a larger index.
	Members [][]int
}

// Len returns the number of components.
func (c *Components) Len() int { return len(c.Members) }

// Bottom reports whether no edge leaves component i for another component.
func (c *Components) Bottom(a *parity.Arena, i int) bool {
	for _, v := range c.Members[i] {
		for _, u := range a.Successors(v) {
			if c.Of[u] >= 0 && c.Of[u] != i {
				return false
			}
		}
	}

	return true
}

// BottomCount returns the number of bottom components.
func (c *Components) BottomCount(a *parity.Arena) int {
	n := 0
	for i := range c.Members {
		if c.Bottom(a, i) {
			n++
		}
	}

	return n
}

// SCC computes strongly connected components with Kosaraju's two passes.
// A nil active mask means every vertex.
//
//  1. A full forward DFS yields the post-order of the active vertices.
//  2. Walking the transposed arena from the latest-finished unassigned
//     vertex collects exactly one component per root.
func SCC(a *parity.Arena, active []bool) (*Components, error) {
	if a == nil {
		return nil, ErrGraphNil
	}
	n := a.Len()
	if active != nil && len(active) != n {
		return nil, fmt.Errorf("%w: %d != %d", ErrMaskLength, len(active), n)
	}
	c := &Components{Of: make([]int, n)}
	for v := range c.Of {
		c.Of[v] = -1
	}
	start := -1
	for v := 0; v < n; v++ {
		if active == nil || active[v] {
			start = v
			break
		}
	}
	if start < 0 {
		return c, nil
	}

	fwd, err := DFS(a, start, WithActive(active), WithFullTraversal())
	if err != nil {
		return nil, fmt.Errorf("dfs: SCC: %w", err)
	}

	o := DefaultOptions()
	o.Active = active
	o.Reverse = true
	back := newWalker(a, o)
	var found [][]int
	for i := len(fwd.Order) - 1; i >= 0; i-- {
		v := fwd.Order[i]
		if back.state[v] != White {
			continue
		}
		mark := len(back.res.Order)
		if err := back.walk(v); err != nil {
			return nil, fmt.Errorf("dfs: SCC: %w", err)
		}
		members := append([]int(nil), back.res.Order[mark:]...)
		sort.Ints(members)
		found = append(found, members)
	}

	// found is in topological order, sources first.
	c.Members = make([][]int, len(found))
	for i, members := range found {
		id := len(found) - 1 - i
		c.Members[id] = members
		for _, v := range members {
			c.Of[v] = id
		}
	}

	return c, nil
}
