package runner

import (
	"sort"

	"github.com/katalvlaran/gamegraph/parity"
	"github.com/katalvlaran/gamegraph/solution"
	"github.com/katalvlaran/gamegraph/spm"
	"github.com/katalvlaran/gamegraph/zielonka"
)

// Outcome is what a Solver returns for one game.
type Outcome struct {
	Solution *solution.Solution
	Stats    map[string]int
}

// Solver solves one arena.
type Solver interface {
	Solve(a *parity.Arena) (Outcome, error)
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(a *parity.Arena) (Outcome, error)

// Solve calls f(a).
func (f SolverFunc) Solve(a *parity.Arena) (Outcome, error) { return f(a) }

// Registry maps solver names to solvers.
type Registry map[string]Solver

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// DefaultRegistry returns "spm" (small progress measures) and "recursive"
// (Zielonka) with their default options.
func DefaultRegistry() Registry {
	return Registry{
		"spm": SolverFunc(func(a *parity.Arena) (Outcome, error) {
			res, err := spm.Solve(a)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Solution: res.Solution, Stats: map[string]int{
				"lifts":          res.Stats.Lifts,
				"attempts":       res.Stats.Attempts,
				"stabilizations": res.Stats.Stabilizations,
				"resolved":       res.Stats.Resolved,
				"sweeps":         res.Stats.Sweeps,
			}}, nil
		}),
		"recursive": SolverFunc(func(a *parity.Arena) (Outcome, error) {
			res, err := zielonka.Solve(a)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Solution: res.Solution, Stats: map[string]int{
				"depth":    res.Stats.MaxDepth,
				"subgames": res.Stats.Subgames,
			}}, nil
		}),
	}
}
