package dfs_test

import (
	"fmt"

	"github.com/katalvlaran/gamegraph/dfs"
	"github.com/katalvlaran/gamegraph/parity"
)

// ExampleSCC splits a game into strongly connected components:
//
//	a → b ⇄ c → d ↺
//
// Components come out sinks first.
func ExampleSCC() {
	g := parity.NewGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		_ = g.AddVertex(id, parity.Odd, 1)
	}
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"c", "b"}, {"c", "d"}, {"d", "d"}, {"a", "a"}} {
		_ = g.AddEdge(e[0], e[1])
	}
	a, _ := g.Compile()

	c, err := dfs.SCC(a, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for i, members := range c.Members {
		ids := make([]string, len(members))
		for j, v := range members {
			ids[j] = a.ID(v)
		}
		fmt.Println(i, ids, c.Bottom(a, i))
	}

	// Output:
	// 0 [d] true
	// 1 [b c] false
	// 2 [a] false
}
