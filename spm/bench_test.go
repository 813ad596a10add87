package spm_test

import (
	"testing"

	"github.com/katalvlaran/gamegraph/generator"
	"github.com/katalvlaran/gamegraph/spm"
)

// benchSolve generates one random game and solves it b.N times.
func benchSolve(b *testing.B, c generator.Config, opts ...spm.Option) {
	a, err := generator.GenerateArena(c)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := spm.Solve(a, opts...); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSolve_Sparse1000 measures 1000 vertices with out-degree 1..3.
func BenchmarkSolve_Sparse1000(b *testing.B) {
	benchSolve(b, generator.Config{Vertices: 1000, MaxPriority: 10, MinOutDegree: 1, MaxOutDegree: 3, Seed: 1})
}

// BenchmarkSolve_Dense200 measures 200 vertices with out-degree 10..20.
func BenchmarkSolve_Dense200(b *testing.B) {
	benchSolve(b, generator.Config{Vertices: 200, MaxPriority: 10, MinOutDegree: 10, MaxOutDegree: 20, Seed: 1})
}

// BenchmarkSolve_NoStabilization runs the sparse game without the attractor step.
func BenchmarkSolve_NoStabilization(b *testing.B) {
	benchSolve(b, generator.Config{Vertices: 1000, MaxPriority: 10, MinOutDegree: 1, MaxOutDegree: 3, Seed: 1},
		spm.WithStabilizeFactor(0))
}
