package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/katalvlaran/gamegraph/generator"
	"github.com/katalvlaran/gamegraph/parity"
	"github.com/katalvlaran/gamegraph/runner"
	"github.com/katalvlaran/gamegraph/solution"
	"github.com/katalvlaran/gamegraph/spm"
	"github.com/katalvlaran/gamegraph/store"
	"github.com/katalvlaran/gamegraph/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoFamilies = `
suite "mixed" {
  family "sparse" {
    vertices       = 15
    max_priority   = 4
    max_out_degree = 2
    count          = 3
    seed           = 10
  }
  family "dense" {
    vertices       = 8
    min_out_degree = 3
    count          = 2
    seed           = 99
  }
}
`

func parse(t *testing.T, src string) []*suite.Suite {
	t.Helper()
	suites, err := suite.Parse([]byte(src), "test.hcl", nil)
	require.NoError(t, err)

	return suites
}

func TestRun_DefaultSolversAgree(t *testing.T) {
	r, err := runner.Run(context.Background(), parse(t, twoFamilies), runner.Options{})
	require.NoError(t, err)
	require.Len(t, r.Suites, 1)
	s := r.Suites[0]
	assert.Equal(t, []string{"spm", "recursive"}, s.Solvers)
	require.Len(t, s.Games, 5)

	assert.Equal(t, "sparse", s.Games[0].Family)
	assert.Equal(t, generator.DeriveSeed(10, 2), s.Games[2].Seed)
	assert.Equal(t, "dense", s.Games[3].Family)
	assert.Equal(t, 0, s.Games[3].Index)
	for _, g := range s.Games {
		require.Len(t, g.Results, 2)
		assert.Len(t, g.Fingerprint, 16)
		assert.GreaterOrEqual(t, g.Components, 1)
		assert.LessOrEqual(t, g.Components, g.Vertices)
		assert.GreaterOrEqual(t, g.Bottom, 1, "every finite game has a bottom component")
		assert.LessOrEqual(t, g.Bottom, g.Components)
		for _, res := range g.Results {
			assert.True(t, res.Verified)
			assert.False(t, res.Cached)
			assert.Equal(t, g.Vertices, res.Even+res.Odd)
			assert.NotEmpty(t, res.Stats)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	suites := parse(t, `suite "x" {
  solvers = ["spm", "magic"]
  family "f" { vertices = 4 }
}`)
	_, err := runner.Run(context.Background(), suites, runner.Options{})
	require.ErrorIs(t, err, runner.ErrUnknownSolver)

	_, err = runner.Run(context.Background(), nil, runner.Options{})
	require.ErrorIs(t, err, runner.ErrNoSuites)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Run(ctx, parse(t, twoFamilies), runner.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

// allEven claims every vertex for player 0 with no strategy.
var allEven = runner.SolverFunc(func(a *parity.Arena) (runner.Outcome, error) {
	sol := solution.New(a.Len())
	for v := 0; v < a.Len(); v++ {
		sol.SetWinner(a.ID(v), parity.Even)
	}
	return runner.Outcome{Solution: sol}, nil
})

// noMoves returns the right regions but drops every strategy.
var noMoves = runner.SolverFunc(func(a *parity.Arena) (runner.Outcome, error) {
	res, err := spm.Solve(a)
	if err != nil {
		return runner.Outcome{}, err
	}
	sol := solution.New(a.Len())
	for _, id := range res.Solution.IDs() {
		w, _ := res.Solution.Winner(id)
		sol.SetWinner(id, w)
	}
	return runner.Outcome{Solution: sol}, nil
})

func TestRun_DetectsDisagreement(t *testing.T) {
	reg := runner.DefaultRegistry()
	reg["even"] = allEven
	suites := parse(t, `suite "x" {
  solvers = ["spm", "even"]
  verify  = false
  family "f" {
    vertices = 30
    count    = 5
  }
}`)
	_, err := runner.Run(context.Background(), suites, runner.Options{Registry: reg})
	require.ErrorIs(t, err, runner.ErrDisagreement)
}

func TestRun_VerifyAndNoVerify(t *testing.T) {
	reg := runner.Registry{"nomoves": noMoves}
	suites := parse(t, `suite "x" {
  solvers = ["nomoves"]
  family "f" {
    vertices = 30
    count    = 5
  }
}`)
	_, err := runner.Run(context.Background(), suites, runner.Options{Registry: reg})
	require.ErrorIs(t, err, solution.ErrInvalidSolution)

	r, err := runner.Run(context.Background(), suites, runner.Options{Registry: reg, NoVerify: true})
	require.NoError(t, err)
	assert.False(t, r.Suites[0].Games[0].Results[0].Verified)
}

func TestRun_UsesCache(t *testing.T) {
	st, err := store.Open(store.Options{InMemory: true})
	require.NoError(t, err)
	defer st.Close()
	suites := parse(t, twoFamilies)

	first, err := runner.Run(context.Background(), suites, runner.Options{Cache: st})
	require.NoError(t, err)
	second, err := runner.Run(context.Background(), suites, runner.Options{Cache: st})
	require.NoError(t, err)

	for i, g := range second.Suites[0].Games {
		for j, res := range g.Results {
			assert.True(t, res.Cached)
			assert.True(t, res.Verified, "cached answers are still checked")
			assert.Nil(t, res.Stats)
			assert.True(t, first.Suites[0].Games[i].Results[j].Solution.Equal(res.Solution))
		}
	}
}

func TestReport_Plain(t *testing.T) {
	r, err := runner.Run(context.Background(), parse(t, `suite "tiny" {
  solvers = ["spm"]
  family "pair" {
    vertices = 2
    count    = 2
  }
}`), runner.Options{})
	require.NoError(t, err)

	var full bytes.Buffer
	require.NoError(t, r.WritePlain(&full, runner.PlainOptions{SolverName: true}))
	out := full.String()
	assert.True(t, strings.HasPrefix(out, "Suite tiny: 2 games, solvers spm\n"), out)
	assert.Contains(t, out, fmt.Sprintf("Game pair #1: seed %d, 2 vertices", generator.DeriveSeed(0, 1)))
	assert.Equal(t, 2, strings.Count(out, "[spm]\n"))
	assert.Equal(t, 2, strings.Count(out, "Winning regions: {"))
	assert.Equal(t, 2, strings.Count(out, "Time: "))
	assert.Contains(t, out, "Total: 2 solves over 4 vertices in ")

	var short bytes.Buffer
	require.NoError(t, r.WritePlain(&short, runner.PlainOptions{TimeOnly: true}))
	assert.NotContains(t, short.String(), "Winning regions")
	assert.NotContains(t, short.String(), "[spm]")
	assert.Equal(t, 2, strings.Count(short.String(), "Time: "))
}

func TestReport_JSON(t *testing.T) {
	r, err := runner.Run(context.Background(), parse(t, `suite "tiny" {
  family "pair" { vertices = 3 }
}`), runner.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))
	var decoded struct {
		Suites []struct {
			Name  string `json:"name"`
			Games []struct {
				Vertices int `json:"vertices"`
				Results  []struct {
					Solver   string             `json:"solver"`
					Solution *solution.Solution `json:"solution"`
				} `json:"results"`
			} `json:"games"`
		} `json:"suites"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Suites, 1)
	assert.Equal(t, "tiny", decoded.Suites[0].Name)
	g := decoded.Suites[0].Games[0]
	assert.Equal(t, 3, g.Vertices)
	require.Len(t, g.Results, 2)
	assert.Equal(t, "spm", g.Results[0].Solver)
	assert.Equal(t, 3, g.Results[0].Solution.Len())
	assert.True(t, r.Suites[0].Games[0].Results[0].Solution.Equal(g.Results[0].Solution))
}

func TestRun_FamilyGamesAreDistinct(t *testing.T) {
	r, err := runner.Run(context.Background(), parse(t, `suite "s" {
  solvers = ["spm"]
  family "f" {
    vertices = 12
    count    = 3
  }
}`), runner.Options{})
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, g := range r.Suites[0].Games {
		prev, dup := seen[g.Fingerprint]
		require.False(t, dup, "games %d and %d are the same game", prev, g.Index)
		seen[g.Fingerprint] = g.Index
		assert.Equal(t, generator.DeriveSeed(0, uint64(g.Index)), g.Seed)
	}
}
