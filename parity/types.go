// Package parity defines the game graph shared by every solver in this module:
// vertices owned by one of two players and labeled with a priority, connected
// by payload-free directed edges.
//
// This file declares Player, Vertex, the sentinel errors, and the mutable
// Graph builder. Arena (arena.go) is the frozen, index-addressed form that
// solvers consume.
//
// Errors:
//
//	ErrInvalidInput      - umbrella for every precondition failure below.
//	ErrEmptyVertexID     - vertex ID is the empty string.
//	ErrVertexNotFound    - requested vertex does not exist.
//	ErrDuplicateVertex   - vertex ID already registered.
//	ErrDuplicateEdge     - edge from→to already registered.
//	ErrInvalidOwner      - owner outside {0,1}.
//	ErrNegativePriority  - priority below zero.
//	ErrNoSuccessor       - vertex with out-degree zero.
package parity

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// ErrInvalidInput is wrapped by every precondition error of this package.
var ErrInvalidInput = errors.New("parity: invalid input")

// Sentinel errors for graph construction and validation.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = fmt.Errorf("%w: vertex ID is empty", ErrInvalidInput)

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = fmt.Errorf("%w: vertex not found", ErrInvalidInput)

	// ErrDuplicateVertex indicates AddVertex was called twice with the same ID.
	ErrDuplicateVertex = fmt.Errorf("%w: duplicate vertex", ErrInvalidInput)

	// ErrDuplicateEdge indicates a parallel edge from→to.
	ErrDuplicateEdge = fmt.Errorf("%w: duplicate edge", ErrInvalidInput)

	// ErrInvalidOwner indicates an owner other than player 0 or player 1.
	ErrInvalidOwner = fmt.Errorf("%w: owner must be 0 or 1", ErrInvalidInput)

	// ErrNegativePriority indicates a priority below zero.
	ErrNegativePriority = fmt.Errorf("%w: negative priority", ErrInvalidInput)

	// ErrNoSuccessor indicates a vertex without outgoing edges.
	ErrNoSuccessor = fmt.Errorf("%w: vertex has no successor", ErrInvalidInput)
)

// Player identifies one of the two players. Player Even (0) wins plays whose
// highest recurring priority is even, Player Odd (1) the others.
type Player int

const (
	Even Player = 0
	Odd  Player = 1
)

// Valid reports whether p is 0 or 1.
func (p Player) Valid() bool { return p == Even || p == Odd }

// Opponent returns the other player.
func (p Player) Opponent() Player { return 1 - p }

// String renders the player as its number, the form used in reports.
func (p Player) String() string { return strconv.Itoa(int(p)) }

// PlayerOf returns the player favored by a priority (its parity).
func PlayerOf(priority int) Player { return Player(priority & 1) }

// Vertex is one game position.
type Vertex struct {
	// ID uniquely identifies this Vertex within its Graph.
	ID string

	// Owner is the player choosing the successor at this vertex.
	Owner Player

	// Priority is the label deciding the winner of plays that visit it infinitely often.
	Priority int
}

// Graph is the mutable, goroutine-safe builder for a game graph.
//
// Vertices keep insertion order, which is the enumeration order used by
// Compile and therefore by every solver. mu guards all fields.
type Graph struct {
	mu sync.RWMutex

	index    map[string]int // vertex ID → insertion index
	vertices []Vertex
	succ     [][]int             // insertion index → successor indices in edge order
	edgeSet  map[[2]int]struct{} // duplicate-edge guard
	edges    int
}

// NewGraph creates an empty Graph.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		index:   make(map[string]int),
		edgeSet: make(map[[2]int]struct{}),
	}
}
