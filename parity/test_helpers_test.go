package parity_test

import (
	"testing"

	"github.com/katalvlaran/gamegraph/parity"
	"github.com/stretchr/testify/require"
)

// Common vertex IDs used across parity tests.
const (
	VertexA = "A"
	VertexB = "B"
	VertexC = "C"
	VertexD = "D"
)

// Common priorities used across parity tests (avoid magic numbers in test bodies).
const (
	Prio0 = 0
	Prio1 = 1
	Prio2 = 2
	Prio3 = 3
)

// vspec is a compact vertex description for fixtures.
type vspec struct {
	id       string
	owner    parity.Player
	priority int
}

// buildGraph constructs a Graph from vertex and edge lists, failing the test on error.
func buildGraph(t testing.TB, vs []vspec, edges [][2]string) *parity.Graph {
	t.Helper()
	g := parity.NewGraph()
	for _, v := range vs {
		require.NoError(t, g.AddVertex(v.id, v.owner, v.priority))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}

	return g
}

// diamond returns A→{B,C}, B→D, C→D, D→A.
func diamond(t testing.TB) *parity.Graph {
	return buildGraph(t,
		[]vspec{
			{VertexA, parity.Even, Prio0},
			{VertexB, parity.Odd, Prio1},
			{VertexC, parity.Even, Prio2},
			{VertexD, parity.Odd, Prio3},
		},
		[][2]string{{VertexA, VertexB}, {VertexA, VertexC}, {VertexB, VertexD}, {VertexC, VertexD}, {VertexD, VertexA}},
	)
}
