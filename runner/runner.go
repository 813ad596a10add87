// Package runner executes benchmark suites: it generates the games of each
// family, solves them with every configured solver, checks the answers and
// records timings.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/gamegraph/dfs"
	"github.com/katalvlaran/gamegraph/generator"
	"github.com/katalvlaran/gamegraph/parity"
	"github.com/katalvlaran/gamegraph/solution"
	"github.com/katalvlaran/gamegraph/store"
	"github.com/katalvlaran/gamegraph/suite"
	"github.com/plan-systems/klog"
)

var (
	// ErrUnknownSolver is returned when a suite names an unregistered solver.
	ErrUnknownSolver = errors.New("runner: unknown solver")

	// ErrDisagreement is returned when two solvers report different winning regions.
	ErrDisagreement = errors.New("runner: solvers disagree")

	// ErrNoSuites is returned by Run for an empty suite list.
	ErrNoSuites = errors.New("runner: no suites")
)

// Options configures Run.
type Options struct {
	// Registry resolves solver names; nil means DefaultRegistry().
	Registry Registry

	// Cache, if set, is consulted before solving and filled after.
	Cache *store.Store

	// NoVerify skips solution.Check even for suites with verify = true.
	NoVerify bool
}

// Report is the outcome of Run.
type Report struct {
	Suites []SuiteReport `json:"suites"`
}

// SuiteReport holds the games of one suite in generation order.
type SuiteReport struct {
	Name    string       `json:"name"`
	Solvers []string     `json:"solvers"`
	Games   []GameReport `json:"games"`
}

// GameReport describes one generated game and every solver's answer.
type GameReport struct {
	Family      string         `json:"family"`
	Index       int            `json:"index"`
	Seed        int64          `json:"seed"`
	Vertices    int            `json:"vertices"`
	Edges       int            `json:"edges"`
	Components  int            `json:"components"`
	Bottom      int            `json:"bottom_components"`
	Fingerprint string         `json:"fingerprint"`
	Results     []SolverResult `json:"results"`
}

// SolverResult is one solver's answer on one game.
type SolverResult struct {
	Solver   string             `json:"solver"`
	Time     time.Duration      `json:"time_ns"`
	Cached   bool               `json:"cached"`
	Verified bool               `json:"verified"`
	Even     int                `json:"even"`
	Odd      int                `json:"odd"`
	Stats    map[string]int     `json:"stats,omitempty"`
	Solution *solution.Solution `json:"solution"`
}

// Run executes suites in order and stops at the first error. ctx is
// checked before every game.
func Run(ctx context.Context, suites []*suite.Suite, opts Options) (*Report, error) {
	if len(suites) == 0 {
		return nil, ErrNoSuites
	}
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	for _, s := range suites {
		for _, name := range s.Solvers {
			if _, ok := reg[name]; !ok {
				return nil, fmt.Errorf("%w: %q in suite %q (known: %s)", ErrUnknownSolver, name, s.Name, strings.Join(reg.Names(), ", "))
			}
		}
	}

	r := &Report{Suites: make([]SuiteReport, 0, len(suites))}
	for _, s := range suites {
		klog.V(1).Infof("runner: suite %q: %d games, solvers %v", s.Name, s.Games(), s.Solvers)
		sr := SuiteReport{Name: s.Name, Solvers: s.Solvers}
		verify := s.Verify && !opts.NoVerify
		for _, f := range s.Families {
			for i := 0; i < f.Count; i++ {
				if err := ctx.Err(); err != nil {
					return r, err
				}
				g, err := runGame(reg, s.Solvers, f, i, verify, opts.Cache)
				if err != nil {
					return r, fmt.Errorf("runner: suite %q family %q game %d: %w", s.Name, f.Name, i, err)
				}
				sr.Games = append(sr.Games, g)
			}
		}
		r.Suites = append(r.Suites, sr)
	}

	return r, nil
}

func runGame(reg Registry, solvers []string, f suite.Family, index int, verify bool, cache *store.Store) (GameReport, error) {
	cfg := f.Game
	cfg.Seed = generator.DeriveSeed(f.Game.Seed, uint64(index))
	a, err := generator.GenerateArena(cfg)
	if err != nil {
		return GameReport{}, err
	}
	comps, err := dfs.SCC(a, nil)
	if err != nil {
		return GameReport{}, err
	}
	g := GameReport{
		Family:      f.Name,
		Index:       index,
		Seed:        cfg.Seed,
		Vertices:    a.Len(),
		Edges:       a.EdgeCount(),
		Components:  comps.Len(),
		Bottom:      comps.BottomCount(a),
		Fingerprint: fmt.Sprintf("%016x", a.Fingerprint()),
	}

	for _, name := range solvers {
		res, err := solveOne(reg[name], name, a, cache)
		if err != nil {
			return g, err
		}
		if verify {
			if err := solution.Check(a, res.Solution); err != nil {
				return g, fmt.Errorf("solver %q: %w", name, err)
			}
			res.Verified = true
		}
		if len(g.Results) > 0 {
			first := g.Results[0]
			if !first.Solution.SameRegions(res.Solution) {
				return g, fmt.Errorf("%w: %q and %q on %v", ErrDisagreement, first.Solver, name, first.Solution.Diff(res.Solution))
			}
		}
		klog.V(2).Infof("runner: %s #%d [%s] %v (cached=%v)", f.Name, index, name, res.Time, res.Cached)
		g.Results = append(g.Results, res)
	}

	return g, nil
}

func solveOne(s Solver, name string, a *parity.Arena, cache *store.Store) (SolverResult, error) {
	res := SolverResult{Solver: name}
	if cache != nil {
		sol, found, err := cache.Get(a, name)
		if err != nil {
			return res, err
		}
		if found {
			res.Cached = true
			res.Solution = sol
			res.count()
			return res, nil
		}
	}

	start := time.Now()
	out, err := s.Solve(a)
	res.Time = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("solver %q: %w", name, err)
	}
	res.Solution = out.Solution
	res.Stats = out.Stats
	res.count()

	if cache != nil {
		if err := cache.Put(a, name, out.Solution); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (r *SolverResult) count() {
	r.Even = len(r.Solution.Region(parity.Even))
	r.Odd = len(r.Solution.Region(parity.Odd))
}
