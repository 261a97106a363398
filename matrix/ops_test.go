// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowdiff/matrix"
)

func TestToSparse_ToDense_RoundTrip(t *testing.T) {
	t.Parallel()

	d := RandNonNegDense(t, 7, 5, 0.4, 1)
	s, err := matrix.ToSparse(d)
	require.NoError(t, err)
	require.Equal(t, d.NNZ(), s.NNZ())

	back, err := matrix.ToDense(s)
	require.NoError(t, err)
	CompareClose(t, d, back, 0, 0)

	// generic path (neither *Dense nor *Sparse)
	s2, err := matrix.ToSparse(hide{d})
	require.NoError(t, err)
	CompareClose(t, s, s2, 0, 0)
}

func TestToDense_Nil(t *testing.T) {
	t.Parallel()

	_, err := matrix.ToDense(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.ToSparse(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestRowSums_MatVec_RepresentationAgnostic(t *testing.T) {
	t.Parallel()

	d := NewFilledDense(t, 2, 3, []float64{1, 0, 2, 0, 3, 4})
	s, err := matrix.ToSparse(d)
	require.NoError(t, err)

	for _, m := range []matrix.Matrix{d, s} {
		sums, err := matrix.RowSums(m)
		require.NoError(t, err)
		require.Equal(t, []float64{3, 7}, sums)

		y, err := matrix.MatVec(m, []float64{1, 1, 0.5})
		require.NoError(t, err)
		require.Equal(t, []float64{2, 5}, y)
	}

	_, err = matrix.MatVec(d, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMax_ImplicitZeros(t *testing.T) {
	t.Parallel()

	s, err := matrix.NewSparseFromTriplets(2, 2, []matrix.Triplet{{Row: 0, Col: 1, Val: -3}})
	require.NoError(t, err)
	mx, err := matrix.Max(s)
	require.NoError(t, err)
	require.Equal(t, 0.0, mx)

	d := NewFilledDense(t, 1, 2, []float64{-3, -1})
	mx, err = matrix.Max(d)
	require.NoError(t, err)
	require.Equal(t, -1.0, mx)
}

func TestScaleRowsCols(t *testing.T) {
	t.Parallel()

	d := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	got, err := matrix.ScaleRowsCols(d, []float64{1, 10}, []float64{2, 0.5})
	require.NoError(t, err)
	CompareClose(t, got, NewFilledDense(t, 2, 2, []float64{2, 1, 60, 20}), 0, 1e-15)

	rowsOnly, err := matrix.ScaleRowsCols(d, []float64{2, 2}, nil)
	require.NoError(t, err)
	CompareClose(t, rowsOnly, NewFilledDense(t, 2, 2, []float64{2, 4, 6, 8}), 0, 0)

	_, err = matrix.ScaleRowsCols(d, []float64{1}, nil)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestThresholdMask_MaskMul(t *testing.T) {
	t.Parallel()

	d := NewFilledDense(t, 2, 2, []float64{0.5, 0.01, 0, 1})
	mask, err := matrix.ThresholdMask(d, 0.1)
	require.NoError(t, err)
	require.Equal(t, 2, mask.NNZ())

	kept, err := matrix.MaskMul(d, mask)
	require.NoError(t, err)
	require.Equal(t, matrix.KindDense, kept.Kind())
	require.Equal(t, 0.5, MustAt(t, kept, 0, 0))
	require.Equal(t, 0.0, MustAt(t, kept, 0, 1))
	require.Equal(t, 1.0, MustAt(t, kept, 1, 1))

	_, err = matrix.ThresholdMask(d, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	other, _ := matrix.NewSparse(3, 3)
	_, err = matrix.MaskMul(d, other)
	require.ErrorIs(t, err, matrix.ErrShape)
}

func TestWithoutDiagonal(t *testing.T) {
	t.Parallel()

	d := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	s, err := matrix.ToSparse(d)
	require.NoError(t, err)

	od, err := matrix.WithoutDiagonal(d)
	require.NoError(t, err)
	CompareClose(t, od, NewFilledDense(t, 2, 2, []float64{0, 2, 3, 0}), 0, 0)

	os, err := matrix.WithoutDiagonal(s)
	require.NoError(t, err)
	require.Equal(t, 2, os.NNZ())

	_, err = matrix.WithoutDiagonal(NewFilledDense(t, 1, 2, []float64{1, 2}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestSymmetrize(t *testing.T) {
	t.Parallel()

	d := NewFilledDense(t, 2, 2, []float64{1, 2, 4, 1})
	sym, err := matrix.Symmetrize(d)
	require.NoError(t, err)
	require.Equal(t, 3.0, MustAt(t, sym, 0, 1))
	require.Equal(t, 3.0, MustAt(t, sym, 1, 0))
	require.NoError(t, matrix.ValidateSymmetric(sym, 0))
	require.ErrorIs(t, matrix.ValidateSymmetric(d, 1e-9), matrix.ErrAsymmetry)
}

func TestMaxAsymmetry_SparseStoredOneSide(t *testing.T) {
	t.Parallel()

	// a[2][0] is stored, a[0][2] is not
	d := NewFilledDense(t, 3, 3, []float64{
		0, 1, 0,
		1, 0, 0,
		0.25, 0, 0,
	})
	s, err := matrix.ToSparse(d)
	require.NoError(t, err)

	for _, m := range []matrix.Matrix{d, s} {
		dev, err := matrix.MaxAsymmetry(m)
		require.NoError(t, err)
		require.Equal(t, 0.25, dev, m.Kind())
	}
}

func TestValidateNonNegative(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateNonNegative(NewFilledDense(t, 1, 2, []float64{0, 1})))
	err := matrix.ValidateNonNegative(NewFilledDense(t, 1, 2, []float64{0, -1}))
	require.ErrorIs(t, err, matrix.ErrNegativeEntry)
	require.ErrorIs(t, err, matrix.ErrShape)
}

func TestAllClose(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 1, 2, []float64{1, 2})
	b := NewFilledDense(t, 1, 2, []float64{1, 2 + 1e-9})
	ok, err := matrix.AllClose(a, b, 0, 1e-8)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 1e-12)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.AllClose(a, b, -1, 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	d := NewFilledDense(t, 2, 2, []float64{1, 0, 0, 1})
	out, converted, err := matrix.Canonicalize(d)
	require.NoError(t, err)
	require.False(t, converted)
	require.Same(t, d, out)

	out, converted, err = matrix.Canonicalize(hide{d})
	require.NoError(t, err)
	require.True(t, converted)
	require.Equal(t, matrix.KindSparse, out.Kind())
	require.Equal(t, 2, out.NNZ())

	_, _, err = matrix.Canonicalize(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
