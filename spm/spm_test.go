package spm_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/gamegraph/generator"
	"github.com/katalvlaran/gamegraph/parity"
	"github.com/katalvlaran/gamegraph/solution"
	"github.com/katalvlaran/gamegraph/spm"
	"github.com/katalvlaran/gamegraph/zielonka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expect asserts the winner and (optional) move of one vertex.
func expect(t *testing.T, s *solution.Solution, id string, winner parity.Player, move string) {
	t.Helper()
	w, ok := s.Winner(id)
	require.True(t, ok, "winner of %s", id)
	assert.Equal(t, winner, w, "winner of %s", id)
	to, ok := s.Strategy(id)
	if move == "" {
		assert.False(t, ok, "%s needs no move", id)
		return
	}
	require.True(t, ok, "move of %s", id)
	assert.Equal(t, move, to, "move of %s", id)
}

func TestSolve_SelfLoopEven(t *testing.T) {
	a := compile(t, []vspec{{"v", parity.Even, 0}}, [][2]string{{"v", "v"}})
	res, err := spm.Solve(a)
	require.NoError(t, err)
	expect(t, res.Solution, "v", parity.Even, "v")
}

func TestSolve_SelfLoopOdd(t *testing.T) {
	a := compile(t, []vspec{{"v", parity.Odd, 1}}, [][2]string{{"v", "v"}})
	res, err := spm.Solve(a)
	require.NoError(t, err)
	expect(t, res.Solution, "v", parity.Odd, "v")
}

func TestSolve_OpponentLoopLoses(t *testing.T) {
	// Owners differ from the winners: no moves are recorded.
	a := compile(t, []vspec{{"x", parity.Odd, 4}, {"y", parity.Even, 3}}, [][2]string{{"x", "x"}, {"y", "y"}})
	res, err := spm.Solve(a)
	require.NoError(t, err)
	expect(t, res.Solution, "x", parity.Even, "")
	expect(t, res.Solution, "y", parity.Odd, "")
}

func TestSolve_TwoCycle(t *testing.T) {
	res, err := spm.Solve(compile(t, twoCycleVertices, twoCycleEdges))
	require.NoError(t, err)
	expect(t, res.Solution, "a", parity.Even, "b")
	expect(t, res.Solution, "b", parity.Even, "")
}

func TestSolve_PicksEvenCycle(t *testing.T) {
	res, err := spm.Solve(compile(t, choiceVertices, choiceEdges))
	require.NoError(t, err)
	expect(t, res.Solution, "s", parity.Even, "e")
	expect(t, res.Solution, "o", parity.Odd, "o")
	expect(t, res.Solution, "e", parity.Even, "e")
}

func TestSolve_DisconnectedComponents(t *testing.T) {
	vs := append(append([]vspec{}, twoCycleVertices...), choiceVertices...)
	es := append(append([][2]string{}, twoCycleEdges...), choiceEdges...)
	whole := compile(t, vs, es)
	all, err := spm.Solve(whole)
	require.NoError(t, err)

	for _, keep := range [][]bool{
		{true, true, false, false, false},
		{false, false, true, true, true},
	} {
		part, _, err := whole.Induced(keep)
		require.NoError(t, err)
		alone, err := spm.Solve(part)
		require.NoError(t, err)
		for v := 0; v < part.Len(); v++ {
			id := part.ID(v)
			w1, _ := all.Solution.Winner(id)
			w2, _ := alone.Solution.Winner(id)
			assert.Equal(t, w2, w1, "winner of %s", id)
			m1, ok1 := all.Solution.Strategy(id)
			m2, ok2 := alone.Solution.Strategy(id)
			assert.Equal(t, ok2, ok1, "move presence of %s", id)
			assert.Equal(t, m2, m1, "move of %s", id)
		}
	}
}

func TestSolve_EmptyAndErrors(t *testing.T) {
	empty, err := parity.NewGraph().Compile()
	require.NoError(t, err)
	res, err := spm.Solve(empty)
	require.NoError(t, err)
	assert.Zero(t, res.Solution.Len())

	_, err = spm.Solve(nil)
	require.ErrorIs(t, err, spm.ErrGraphNil)
	_, err = spm.SolveGraph(nil)
	require.ErrorIs(t, err, spm.ErrGraphNil)

	g := parity.NewGraph()
	require.NoError(t, g.AddVertex("dead", parity.Even, 0))
	_, err = spm.SolveGraph(g)
	require.ErrorIs(t, err, spm.ErrInvalidInput)
	require.ErrorIs(t, err, parity.ErrNoSuccessor)

	a := compile(t, twoCycleVertices, twoCycleEdges)
	_, err = spm.Solve(a, spm.WithStabilizeFactor(-1))
	require.ErrorIs(t, err, spm.ErrOptionViolation)
	_, err = spm.Solve(a, spm.WithMaxCells(0))
	require.ErrorIs(t, err, spm.ErrOptionViolation)
	_, err = spm.Solve(a, spm.WithMaxCells(5))
	require.ErrorIs(t, err, spm.ErrOutOfMemory, "2 vertices × 3 coordinates > 5 cells")
	_, err = spm.Solve(a, spm.WithMaxCells(6))
	require.NoError(t, err)
}

func TestSolveGraph(t *testing.T) {
	g := parity.NewGraph()
	require.NoError(t, g.AddVertex("v", parity.Odd, 3))
	require.NoError(t, g.AddEdge("v", "v"))
	res, err := spm.SolveGraph(g)
	require.NoError(t, err)
	expect(t, res.Solution, "v", parity.Odd, "v")
	assert.Positive(t, res.Stats.Lifts)
	assert.Positive(t, res.Stats.Sweeps)
}

func TestInvariantError(t *testing.T) {
	err := error(&spm.InvariantError{Vertex: "v", Reason: "both counters saturated", Counter0: []int{-1, 0}, Counter1: []int{-1}})
	require.ErrorIs(t, err, spm.ErrInvariantViolation)
	assert.Equal(t, `spm: invariant violation at vertex "v": both counters saturated (counter0=[-1 0] counter1=[-1])`, err.Error())
}

// randomConfigs spans sparse and dense games with few and many priorities.
func randomConfigs() []generator.Config {
	var out []generator.Config
	for _, shape := range []struct{ n, maxPrio, minOut, maxOut int }{
		{1, 0, 1, 1},
		{5, 2, 1, 2},
		{12, 4, 1, 3},
		{25, 6, 1, 2},
		{40, 8, 2, 4},
		{60, 3, 1, 5},
	} {
		for seed := int64(1); seed <= 8; seed++ {
			out = append(out, generator.Config{
				Vertices: shape.n, MaxPriority: shape.maxPrio,
				MinOutDegree: shape.minOut, MaxOutDegree: shape.maxOut,
				Seed: seed*1000 + int64(shape.n),
			})
		}
	}

	return out
}

func TestSolve_AgreesWithRecursive(t *testing.T) {
	for _, c := range randomConfigs() {
		a, err := generator.GenerateArena(c)
		require.NoError(t, err)

		got, err := spm.Solve(a)
		require.NoError(t, err, "%+v", c)
		want, err := zielonka.Solve(a)
		require.NoError(t, err, "%+v", c)

		require.True(t, got.Solution.SameRegions(want.Solution), "%+v: differing vertices %v", c, got.Solution.Diff(want.Solution))
		require.NoError(t, solution.Check(a, got.Solution), "%+v", c)
	}
}

func TestSolve_StabilizationDoesNotChangeRegions(t *testing.T) {
	var passes, resolved int
	for _, c := range randomConfigs() {
		a, err := generator.GenerateArena(c)
		require.NoError(t, err)

		eager, err := spm.Solve(a, spm.WithStabilizeFactor(1))
		require.NoError(t, err)
		never, err := spm.Solve(a, spm.WithStabilizeFactor(0))
		require.NoError(t, err)
		assert.Zero(t, never.Stats.Stabilizations)
		require.True(t, eager.Solution.SameRegions(never.Solution), "%+v", c)
		require.NoError(t, solution.Check(a, eager.Solution), "%+v", c)
		passes += eager.Stats.Stabilizations
		resolved += eager.Stats.Resolved
	}
	assert.Positive(t, passes, "factor 1 must trigger stabilization")
	assert.Positive(t, resolved, "stabilization must decide some vertices")
}

func TestSolve_Deterministic(t *testing.T) {
	a, err := generator.GenerateArena(generator.Config{Vertices: 50, MaxPriority: 6, MinOutDegree: 1, MaxOutDegree: 4, Seed: 99})
	require.NoError(t, err)

	first, err := spm.Solve(a)
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first.Solution)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := spm.Solve(a)
		require.NoError(t, err)
		againJSON, err := json.Marshal(again.Solution)
		require.NoError(t, err)
		if diff := cmp.Diff(string(firstJSON), string(againJSON)); diff != "" {
			t.Fatalf("solution changed between runs (-first +again):\n%s", diff)
		}
		assert.Equal(t, first.Stats, again.Stats)
	}
}
