// SPDX-License-Identifier: MIT

package diffusion_test

import (
	"testing"

	"github.com/katalvlaran/flowdiff/diffusion"
)

func BenchmarkMapFromPoints_Circle300(b *testing.B) {
	X, _ := circle(b, 300)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := diffusion.MapFromPoints(X); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCoordinates_LanczosSparse400(b *testing.B) {
	op := sparseOperator(b, cloud(b, 400, 3, 1), 0.2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := diffusion.Coordinates(op.P, op.Degree, diffusion.WithSolver(diffusion.LanczosSolver{})); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCoordinates_Jacobi60(b *testing.B) {
	X := cloud(b, 60, 3, 1)
	op, err := diffusion.Symmetric(gaussianAffinity(b, X, 0.3))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = diffusion.Coordinates(op.P, op.Degree, diffusion.WithSolver(diffusion.JacobiSolver{})); err != nil {
			b.Fatal(err)
		}
	}
}
