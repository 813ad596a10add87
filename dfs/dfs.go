package dfs

import (
	"fmt"

	"github.com/katalvlaran/gamegraph/parity"
)

// frame is one entry of the explicit DFS stack: vertex and next successor slot.
type frame struct {
	v, next int
}

// walker holds the state of one DFS call.
type walker struct {
	arena *parity.Arena
	opts  Options
	state []int
	res   *Result
	stack []frame
}

// DFS walks a depth-first from start, or over the whole active forest
// with WithFullTraversal (roots in index order, start first).
func DFS(a *parity.Arena, start int, opts ...Option) (*Result, error) {
	if a == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	n := a.Len()
	if o.Active != nil && len(o.Active) != n {
		return nil, fmt.Errorf("%w: %d != %d", ErrMaskLength, len(o.Active), n)
	}
	w := newWalker(a, o)

	if n == 0 && o.FullTraversal {
		return w.res, nil
	}
	if start < 0 || start >= n || !w.active(start) {
		return nil, fmt.Errorf("dfs: DFS: %w: %d", ErrStartVertexNotFound, start)
	}
	if err := w.walk(start); err != nil {
		return nil, err
	}
	if o.FullTraversal {
		for v := 0; v < n; v++ {
			if w.state[v] == White && w.active(v) {
				if err := w.walk(v); err != nil {
					return nil, err
				}
			}
		}
	}

	return w.res, nil
}

func newWalker(a *parity.Arena, o Options) *walker {
	n := a.Len()
	w := &walker{
		arena: a,
		opts:  o,
		state: make([]int, n),
		res: &Result{
			Order:  make([]int, 0, n),
			Parent: make([]int, n),
			Depth:  make([]int, n),
		},
	}
	for v := 0; v < n; v++ {
		w.res.Parent[v] = -1
		w.res.Depth[v] = -1
	}

	return w
}

func (w *walker) next(v int) []int {
	if w.opts.Reverse {
		return w.arena.Predecessors(v)
	}

	return w.arena.Successors(v)
}

func (w *walker) active(v int) bool { return w.opts.Active == nil || w.opts.Active[v] }

func (w *walker) enter(v, parent, depth int) error {
	if err := w.opts.Ctx.Err(); err != nil {
		return err
	}
	w.state[v] = Gray
	w.res.Parent[v] = parent
	w.res.Depth[v] = depth
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(v); err != nil {
			return err
		}
	}
	w.stack = append(w.stack, frame{v: v})

	return nil
}

func (w *walker) walk(root int) error {
	if err := w.enter(root, -1, 0); err != nil {
		return err
	}
	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		succ := w.next(top.v)
		if top.next < len(succ) {
			u := succ[top.next]
			top.next++
			if w.state[u] == White && w.active(u) {
				if err := w.enter(u, top.v, w.res.Depth[top.v]+1); err != nil {
					return err
				}
			}
			continue
		}
		v := top.v
		w.stack = w.stack[:len(w.stack)-1]
		w.state[v] = Black
		if w.opts.OnExit != nil {
			if err := w.opts.OnExit(v); err != nil {
				return err
			}
		}
		w.res.Order = append(w.res.Order, v)
	}

	return nil
}
