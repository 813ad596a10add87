// File: arena.go
// Role: Immutable, index-addressed snapshot of a Graph.
//
// Layout:
//   - Vertex i (0 ≤ i < Len) is the i-th vertex in Graph insertion order.
//   - Successors and predecessors are stored in CSR form: the neighbors of i
//     are succ[succOff[i]:succOff[i+1]] (pred likewise).
//
// Concurrency:
//   - An Arena is never mutated after Compile; concurrent readers are safe.
package parity

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Arena is the frozen form of a Graph consumed by the solvers.
type Arena struct {
	ids      []string
	index    map[string]int
	owner    []Player
	priority []int

	succOff []int
	succ    []int
	predOff []int
	pred    []int

	maxPriority int
}

// Compile validates g and freezes it into an Arena.
//
// Implementation:
//   - Stage 1: Validate under the read lock (ErrInvalidInput family).
//   - Stage 2: Copy IDs, owners and priorities in insertion order.
//   - Stage 3: Flatten successors into CSR arrays.
//   - Stage 4: Build the reversed CSR (predecessors) by counting sort, so the
//     predecessors of each vertex appear in ascending source order.
//
// Complexity:
//   - Time O(V + E), Space O(V + E).
func (g *Graph) Compile() (*Arena, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if err := g.validateLocked(); err != nil {
		return nil, fmt.Errorf("parity: Compile: %w", err)
	}

	n := len(g.vertices)
	a := &Arena{
		ids:         make([]string, n),
		index:       make(map[string]int, n),
		owner:       make([]Player, n),
		priority:    make([]int, n),
		succOff:     make([]int, n+1),
		succ:        make([]int, 0, g.edges),
		maxPriority: -1,
	}
	for i, v := range g.vertices {
		a.ids[i] = v.ID
		a.index[v.ID] = i
		a.owner[i] = v.Owner
		a.priority[i] = v.Priority
		if v.Priority > a.maxPriority {
			a.maxPriority = v.Priority
		}
		a.succ = append(a.succ, g.succ[i]...)
		a.succOff[i+1] = len(a.succ)
	}
	a.buildPredecessors()

	return a, nil
}

// buildPredecessors fills predOff/pred from succOff/succ.
func (a *Arena) buildPredecessors() {
	n := len(a.ids)
	a.predOff = make([]int, n+1)
	for _, w := range a.succ {
		a.predOff[w+1]++
	}
	for i := 0; i < n; i++ {
		a.predOff[i+1] += a.predOff[i]
	}
	a.pred = make([]int, len(a.succ))
	fill := make([]int, n)
	copy(fill, a.predOff[:n])
	for u := 0; u < n; u++ {
		for _, w := range a.succ[a.succOff[u]:a.succOff[u+1]] {
			a.pred[fill[w]] = u
			fill[w]++
		}
	}
}

// Len returns the number of vertices.
func (a *Arena) Len() int { return len(a.ids) }

// EdgeCount returns the number of edges.
func (a *Arena) EdgeCount() int { return len(a.succ) }

// ID returns the identifier of vertex v.
func (a *Arena) ID(v int) string { return a.ids[v] }

// Index returns the dense index of id.
func (a *Arena) Index(id string) (int, bool) {
	i, ok := a.index[id]
	return i, ok
}

// Owner returns the player moving at v.
func (a *Arena) Owner(v int) Player { return a.owner[v] }

// Priority returns the priority of v.
func (a *Arena) Priority(v int) int { return a.priority[v] }

// MaxPriority returns the highest priority, or -1 for an empty arena.
func (a *Arena) MaxPriority() int { return a.maxPriority }

// Successors returns v's successors in edge insertion order.
// The slice aliases arena storage and must not be modified.
func (a *Arena) Successors(v int) []int { return a.succ[a.succOff[v]:a.succOff[v+1]:a.succOff[v+1]] }

// Predecessors returns v's predecessors in ascending index order.
// The slice aliases arena storage and must not be modified.
func (a *Arena) Predecessors(v int) []int { return a.pred[a.predOff[v]:a.predOff[v+1]:a.predOff[v+1]] }

// HasEdge reports whether u→v is a move. O(out-degree of u).
func (a *Arena) HasEdge(u, v int) bool {
	for _, w := range a.Successors(u) {
		if w == v {
			return true
		}
	}

	return false
}

// Fingerprint returns a 64-bit structural hash covering IDs, owners,
// priorities and edges in enumeration order. Equal arenas hash equally.
func (a *Arena) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(x int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		_, _ = d.Write(buf[:])
	}
	put(len(a.ids))
	for v, id := range a.ids {
		_, _ = d.WriteString(id)
		_, _ = d.Write([]byte{0})
		put(int(a.owner[v]))
		put(a.priority[v])
		succ := a.Successors(v)
		put(len(succ))
		for _, w := range succ {
			put(w)
		}
	}

	return d.Sum64()
}

// Induced returns the sub-arena on the vertices with keep[v] set, keeping
// only edges between kept vertices, together with the mapping from new
// indices to indices of a. Relative vertex and edge order is preserved.
// A kept vertex left without successors yields ErrNoSuccessor.
//
// Complexity: O(V + E).
func (a *Arena) Induced(keep []bool) (*Arena, []int, error) {
	if len(keep) != a.Len() {
		return nil, nil, fmt.Errorf("parity: Induced: mask length %d, want %d: %w", len(keep), a.Len(), ErrInvalidInput)
	}
	remap := make([]int, a.Len())
	var orig []int
	for v := range keep {
		remap[v] = -1
		if keep[v] {
			remap[v] = len(orig)
			orig = append(orig, v)
		}
	}

	sub := &Arena{
		ids:         make([]string, len(orig)),
		index:       make(map[string]int, len(orig)),
		owner:       make([]Player, len(orig)),
		priority:    make([]int, len(orig)),
		succOff:     make([]int, len(orig)+1),
		maxPriority: -1,
	}
	for i, v := range orig {
		sub.ids[i] = a.ids[v]
		sub.index[a.ids[v]] = i
		sub.owner[i] = a.owner[v]
		sub.priority[i] = a.priority[v]
		if a.priority[v] > sub.maxPriority {
			sub.maxPriority = a.priority[v]
		}
		for _, w := range a.Successors(v) {
			if remap[w] >= 0 {
				sub.succ = append(sub.succ, remap[w])
			}
		}
		if len(sub.succ) == sub.succOff[i] {
			return nil, nil, fmt.Errorf("parity: Induced: vertex %q: %w", a.ids[v], ErrNoSuccessor)
		}
		sub.succOff[i+1] = len(sub.succ)
	}
	sub.buildPredecessors()

	return sub, orig, nil
}
