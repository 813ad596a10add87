package zielonka_test

import (
	"testing"

	"github.com/katalvlaran/gamegraph/generator"
	"github.com/katalvlaran/gamegraph/zielonka"
)

// BenchmarkSolve_Sparse1000 solves 1000 vertices with out-degree 1..3.
func BenchmarkSolve_Sparse1000(b *testing.B) {
	a, err := generator.GenerateArena(generator.Config{Vertices: 1000, MaxPriority: 10, MinOutDegree: 1, MaxOutDegree: 3, Seed: 1})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = zielonka.Solve(a)
	}
}
