// SPDX-License-Identifier: MIT

package diffusion_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/flowdiff/diffusion"
	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/sparsify"
)

// sparseOperator is the symmetric operator of a thresholded Gaussian kernel,
// kept in CSR form.
func sparseOperator(t testing.TB, X matrix.Matrix, sigma float64) *diffusion.Operator {
	t.Helper()
	S, err := sparsify.ZeroNegligible(gaussianAffinity(t, X, sigma), sparsify.WithThreshold(1e-4))
	require.NoError(t, err)
	op, err := diffusion.Symmetric(S)
	require.NoError(t, err)
	require.Equal(t, matrix.KindSparse, op.P.Kind())

	return op
}

// diagonal is the CSR matrix diag(3, 3, 3, 2, then distinct values below 1).
func diagonal(t testing.TB, n int) *matrix.Sparse {
	t.Helper()
	ts := make([]matrix.Triplet, n)
	for i := range ts {
		v := 1 - float64(i)/float64(n)
		switch {
		case i < 3:
			v = 3
		case i == 3:
			v = 2
		}
		ts[i] = matrix.Triplet{Row: i, Col: i, Val: v}
	}
	P, err := matrix.NewSparseFromTriplets(n, n, ts)
	require.NoError(t, err)

	return P
}

// topValues returns the k largest values, ascending.
func topValues(vals []float64, k int) []float64 {
	s := slices.Clone(vals)
	slices.Sort(s)

	return s[len(s)-k:]
}

// residual returns ‖P·x − θ·x‖ for pair c of spec.
func residual(t testing.TB, P matrix.Matrix, spec *diffusion.Spectrum, c int) float64 {
	t.Helper()
	x := mat.Col(nil, c, spec.Vectors)
	y, err := matrix.MatVec(P, x)
	require.NoError(t, err)
	floats.AddScaled(y, -spec.Values[c], x)

	return floats.Norm(y, 2)
}

func TestLanczosSolver_AgreesWithGonum(t *testing.T) {
	t.Parallel()

	const n, k = 150, 6
	op := sparseOperator(t, cloud(t, n, 3, 21), 0.4)
	want, err := diffusion.GonumSolver{}.Solve(op.P, k, 1e-10)
	require.NoError(t, err)
	got, err := diffusion.LanczosSolver{MaxBasis: 100}.Solve(op.P, k, 1e-10)
	require.NoError(t, err)

	require.Len(t, got.Values, k)
	rows, cols := got.Vectors.Dims()
	require.Equal(t, n, rows)
	require.Equal(t, k, cols)
	require.InDeltaSlice(t, topValues(want.Values, k), got.Values, 1e-8)
	for c := 0; c < k; c++ {
		require.Less(t, residual(t, op.P, got, c), 1e-9, "pair %d", c)
		require.InDelta(t, 1, floats.Norm(mat.Col(nil, c, got.Vectors), 2), 1e-10, "pair %d", c)
	}
}

func TestLanczosSolver_RepeatedEigenvalues(t *testing.T) {
	t.Parallel()

	P := diagonal(t, 60)
	spec, err := diffusion.LanczosSolver{}.Solve(P, 4, 1e-10)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{2, 3, 3, 3}, spec.Values, 1e-10)
	for c := 0; c < 4; c++ {
		require.Less(t, residual(t, P, spec, c), 1e-9, "pair %d", c)
	}
}

func TestLanczosSolver_Deterministic(t *testing.T) {
	t.Parallel()

	op := sparseOperator(t, cloud(t, 80, 3, 13), 0.4)
	a, err := diffusion.LanczosSolver{MaxBasis: 60}.Solve(op.P, 4, 1e-10)
	require.NoError(t, err)
	b, err := diffusion.LanczosSolver{MaxBasis: 60}.Solve(op.P, 4, 1e-10)
	require.NoError(t, err)
	require.Equal(t, a.Values, b.Values)
	require.True(t, mat.Equal(a.Vectors, b.Vectors))
}

func TestLanczosSolver_Errors(t *testing.T) {
	t.Parallel()

	_, err := diffusion.LanczosSolver{}.Solve(nil, 2, 1e-8)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	asym := dense(t, [][]float64{{0.5, 0.5}, {0.1, 0.9}})
	_, err = diffusion.LanczosSolver{}.Solve(asym, 2, 1e-8)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	// a zero residual target is unreachable before the basis spans R^n
	_, err = diffusion.LanczosSolver{MaxBasis: 8, MaxRestarts: 1}.Solve(diagonal(t, 60), 4, 0)
	require.ErrorIs(t, err, diffusion.ErrEigenFailed)
}

func TestLanczosSolver_RestartsConverge(t *testing.T) {
	t.Parallel()

	op := sparseOperator(t, cloud(t, 150, 3, 21), 0.4)
	want, err := diffusion.GonumSolver{}.Solve(op.P, 6, 1e-10)
	require.NoError(t, err)

	// a basis of 20 cannot hold the answer without restarting
	got, err := diffusion.LanczosSolver{MaxBasis: 20}.Solve(op.P, 6, 1e-10)
	require.NoError(t, err)
	require.InDeltaSlice(t, topValues(want.Values, 6), got.Values, 1e-8)
	for c := 0; c < 6; c++ {
		require.Less(t, residual(t, op.P, got, c), 1e-9, "pair %d", c)
	}
}

func TestAutoSolver_Dispatch(t *testing.T) {
	t.Parallel()

	op := sparseOperator(t, cloud(t, 40, 3, 5), 0.4)

	small, err := diffusion.AutoSolver{}.Solve(op.P, 4, 1e-10)
	require.NoError(t, err)
	require.Len(t, small.Values, 40, "dense path computes every pair")

	large, err := diffusion.AutoSolver{DenseLimit: 10}.Solve(op.P, 4, 1e-10)
	require.NoError(t, err)
	require.Len(t, large.Values, 4, "Lanczos computes only k pairs")
	require.InDeltaSlice(t, topValues(small.Values, 4), large.Values, 1e-8)

	// asymmetric operators always take the general dense path
	rows := make([][]float64, 12)
	for i := range rows {
		rows[i] = make([]float64, 12)
		rows[i][(i+1)%12] = 1
	}
	spec, err := diffusion.AutoSolver{DenseLimit: 10}.Solve(dense(t, rows), 4, 1e-10)
	require.NoError(t, err)
	require.Len(t, spec.Values, 12)
	require.NotNil(t, spec.Imag)
}

func TestCoordinates_LanczosMatchesDense(t *testing.T) {
	t.Parallel()

	op := sparseOperator(t, cloud(t, 150, 3, 21), 0.4)
	g, err := diffusion.Coordinates(op.P, op.Degree,
		diffusion.WithSolver(diffusion.GonumSolver{}),
		diffusion.WithTolerance(1e-11),
	)
	require.NoError(t, err)
	l, err := diffusion.Coordinates(op.P, op.Degree,
		diffusion.WithSolver(diffusion.AutoSolver{DenseLimit: 50}),
		diffusion.WithTolerance(1e-11),
	)
	require.NoError(t, err)

	require.InDelta(t, g.Trivial, l.Trivial, 1e-10)
	require.InDeltaSlice(t, g.Eigenvalues, l.Eigenvalues, 1e-9)
	for c := 0; c < g.Coords.Cols(); c++ {
		for i := 0; i < g.Coords.Rows(); i++ {
			require.InDelta(t, at(t, g.Coords, i, c), at(t, l.Coords, i, c), 1e-6, "col %d row %d", c, i)
		}
	}
}
