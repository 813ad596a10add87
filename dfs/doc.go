// Package dfs implements iterative depth-first search over a parity.Arena:
// post-order traversal (single source or full forest, forward or over
// predecessors) and Kosaraju's strongly connected components built on it.
//
// Both work on the compiled CSR tables, optionally restricted to an
// active mask, and never recurse, so deep games cannot overflow the stack.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors:
//
//   - ErrGraphNil            if the arena is nil.
//   - ErrStartVertexNotFound if the start index is out of range or inactive.
//   - ErrMaskLength          if an active mask does not match the arena.
//   - context errors         if Options.Ctx is done.
//   - any error returned by OnVisit or OnExit.
package dfs
