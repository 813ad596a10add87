package spm_test

import (
	"testing"

	"github.com/katalvlaran/gamegraph/parity"
	"github.com/stretchr/testify/require"
)

// vspec is a compact vertex description for fixtures.
type vspec struct {
	id       string
	owner    parity.Player
	priority int
}

// compile builds and freezes a game, failing the test on error.
func compile(t testing.TB, vs []vspec, edges [][2]string) *parity.Arena {
	t.Helper()
	g := parity.NewGraph()
	for _, v := range vs {
		require.NoError(t, g.AddVertex(v.id, v.owner, v.priority))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	a, err := g.Compile()
	require.NoError(t, err)

	return a
}

// Fixture vertex and edge lists.
var (
	// twoCycleVertices: a(prio 2, player 0) ⇄ b(prio 1, player 1). Player 0 wins both.
	twoCycleVertices = []vspec{{"a", parity.Even, 2}, {"b", parity.Odd, 1}}
	twoCycleEdges    = [][2]string{{"a", "b"}, {"b", "a"}}

	// choiceVertices: s(player 0) chooses between the odd loop o and the even loop e.
	choiceVertices = []vspec{{"s", parity.Even, 0}, {"o", parity.Odd, 1}, {"e", parity.Even, 2}}
	choiceEdges    = [][2]string{{"s", "o"}, {"s", "e"}, {"o", "o"}, {"e", "e"}}
)
