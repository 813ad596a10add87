package dfs

import (
	"context"
	"errors"
)

// Vertex visitation states.
const (
	White = iota // not visited
	Gray         // on the DFS stack
	Black        // finished
)

var (
	// ErrGraphNil is returned when a nil arena is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates an out-of-range or inactive start vertex.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")

	// ErrMaskLength is returned when an active mask has the wrong length.
	ErrMaskLength = errors.New("dfs: mask length does not match arena")
)

// Option configures DFS.
type Option func(*Options)

// Options holds the traversal parameters of DFS.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit is called when a vertex turns Gray; an error aborts.
	OnVisit func(v int) error

	// OnExit is called when a vertex turns Black, before it is appended
	// to Result.Order; an error aborts.
	OnExit func(v int) error

	// Active restricts the walk to vertices with Active[v]; nil means all.
	Active []bool

	// FullTraversal restarts from every unvisited active vertex in index order.
	FullTraversal bool

	// Reverse walks predecessor edges instead of successor edges.
	Reverse bool
}

// DefaultOptions returns a single-source walk over the whole arena.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Ctx = ctx }
}

// WithOnVisit sets the pre-order hook.
func WithOnVisit(fn func(v int) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnExit sets the post-order hook.
func WithOnExit(fn func(v int) error) Option {
	return func(o *Options) { o.OnExit = fn }
}

// WithActive restricts the walk to a mask of vertices.
func WithActive(active []bool) Option {
	return func(o *Options) { o.Active = active }
}

// WithFullTraversal covers every active vertex, not only those reachable
// from the start.
func WithFullTraversal() Option {
	return func(o *Options) { o.FullTraversal = true }
}

// WithReverse walks the transposed arena.
func WithReverse() Option {
	return func(o *Options) { o.Reverse = true }
}

// Result of DFS.
type Result struct {
	// Order lists visited vertices in post-order.
	Order []int

	// Parent[v] is v's DFS tree parent, or -1 for roots and unvisited vertices.
	Parent []int

	// Depth[v] is v's tree depth, or -1 if unvisited.
	Depth []int
}

// Visited reports whether v was reached.
func (r *Result) Visited(v int) bool { return r.Depth[v] >= 0 }
