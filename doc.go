// Package gamegraph solves two-player parity games: finite directed graphs
// whose vertices belong to player 0 (Even) or player 1 (Odd) and carry a
// non-negative priority. An infinite play is won by the player matching
// the parity of the highest priority seen infinitely often.
//
// What's inside:
//
//	parity/     game construction, validation, compiled arenas, fingerprints
//	spm/        small progress measures with early stabilization
//	zielonka/   Zielonka's recursive algorithm, the reference solver
//	attractor/  attractor sets shared by both solvers and checks
//	dfs/        iterative DFS and strongly connected components on arenas
//	solution/   winning regions and strategies, JSON and text, Check
//	generator/  seeded random games
//	store/      badger-backed solution cache
//	suite/      HCL benchmark suites
//	runner/     suite execution, agreement checks, reports
//	cmd/pgsolve the command line front end
//
// Quick example:
//
//	g := parity.NewGraph()
//	_ = g.AddVertex("a", parity.Even, 2)
//	_ = g.AddVertex("b", parity.Odd, 1)
//	_ = g.AddEdge("a", "b")
//	_ = g.AddEdge("b", "a")
//	res, _ := spm.SolveGraph(g)
//	// both vertices are won by player 0: priority 2 dominates the cycle
//
//	go get github.com/katalvlaran/gamegraph
package gamegraph
