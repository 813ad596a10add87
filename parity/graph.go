// File: graph.go
// Role: Vertex and edge lifecycle, queries, validation.
//
// Determinism:
//   - Vertices() and Successors() return insertion order.
//
// Concurrency:
//   - All methods take g.mu; readers share the read lock.
package parity

import "fmt"

// AddVertex registers a vertex.
//
// Implementation:
//   - Stage 1: Reject an empty ID (ErrEmptyVertexID).
//   - Stage 2: Under the write lock, reject a known ID (ErrDuplicateVertex).
//   - Stage 3: Append the vertex and an empty successor list.
//
// Owner and priority are not checked here; Validate reports them so that a
// whole graph can be loaded before its problems are listed.
//
// Complexity:
//   - Time O(1) amortized.
func (g *Graph) AddVertex(id string, owner Player, priority int) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.index[id]; exists {
		return fmt.Errorf("parity: AddVertex(%q): %w", id, ErrDuplicateVertex)
	}
	g.index[id] = len(g.vertices)
	g.vertices = append(g.vertices, Vertex{ID: id, Owner: owner, Priority: priority})
	g.succ = append(g.succ, nil)

	return nil
}

// AddEdge adds the move from→to. Both endpoints must exist and the edge
// must be new.
//
// Complexity:
//   - Time O(1) amortized.
func (g *Graph) AddEdge(from, to string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, ok := g.index[from]
	if !ok {
		return fmt.Errorf("parity: AddEdge(%q→%q): source %w", from, to, ErrVertexNotFound)
	}
	v, ok := g.index[to]
	if !ok {
		return fmt.Errorf("parity: AddEdge(%q→%q): target %w", from, to, ErrVertexNotFound)
	}
	key := [2]int{u, v}
	if _, dup := g.edgeSet[key]; dup {
		return fmt.Errorf("parity: AddEdge(%q→%q): %w", from, to, ErrDuplicateEdge)
	}
	g.edgeSet[key] = struct{}{}
	g.succ[u] = append(g.succ[u], v)
	g.edges++

	return nil
}

// HasVertex reports whether id is registered.
func (g *Graph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.index[id]

	return ok
}

// HasEdge reports whether the move from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	u, ok1 := g.index[from]
	v, ok2 := g.index[to]
	if !ok1 || !ok2 {
		return false
	}
	_, ok := g.edgeSet[[2]int{u, v}]

	return ok
}

// Vertex returns the vertex registered under id.
func (g *Graph) Vertex(id string) (Vertex, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i, ok := g.index[id]
	if !ok {
		return Vertex{}, fmt.Errorf("parity: Vertex(%q): %w", id, ErrVertexNotFound)
	}

	return g.vertices[i], nil
}

// Vertices returns a copy of all vertices in insertion order.
func (g *Graph) Vertices() []Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Vertex, len(g.vertices))
	copy(out, g.vertices)

	return out
}

// Successors returns the IDs of id's successors in edge insertion order.
func (g *Graph) Successors(id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("parity: Successors(%q): %w", id, ErrVertexNotFound)
	}
	out := make([]string, len(g.succ[i]))
	for j, w := range g.succ[i] {
		out[j] = g.vertices[w].ID
	}

	return out, nil
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}

// MaxPriority returns the highest priority in the graph, or -1 when empty.
func (g *Graph) MaxPriority() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m := -1
	for _, v := range g.vertices {
		if v.Priority > m {
			m = v.Priority
		}
	}

	return m
}

// Validate checks the solver preconditions: every owner is 0 or 1, every
// priority is non-negative and every vertex has a successor. The first
// violation in insertion order is returned. An empty graph is valid.
//
// Complexity:
//   - Time O(V).
func (g *Graph) Validate() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.validateLocked()
}

func (g *Graph) validateLocked() error {
	for i, v := range g.vertices {
		switch {
		case !v.Owner.Valid():
			return fmt.Errorf("parity: vertex %q owner %d: %w", v.ID, int(v.Owner), ErrInvalidOwner)
		case v.Priority < 0:
			return fmt.Errorf("parity: vertex %q priority %d: %w", v.ID, v.Priority, ErrNegativePriority)
		case len(g.succ[i]) == 0:
			return fmt.Errorf("parity: vertex %q: %w", v.ID, ErrNoSuccessor)
		}
	}

	return nil
}
