// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowdiff/matrix"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	t.Parallel()

	for _, shape := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := matrix.NewDense(shape[0], shape[1])
		require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
		require.ErrorIs(t, err, matrix.ErrShape)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 7))
	require.Equal(t, 7.0, MustAt(t, m, 1, 2))

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 3, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
}

func TestNewDenseFromRows(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	r, c := m.Shape()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	require.Equal(t, 6.0, MustAt(t, m, 2, 1))

	_, err = matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFromRows(nil)
	require.True(t, errors.Is(err, matrix.ErrShape))
}

func TestDense_CloneIndependent(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 100))
	require.Equal(t, 1.0, MustAt(t, m, 0, 0))
	require.Equal(t, matrix.KindDense, cp.Kind())
}

func TestDense_RangeMapNNZ(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 3, []float64{0, 1, 0, 2, 0, 3})
	require.Equal(t, 3, m.NNZ())

	var visited int
	m.Range(func(i, j int, v float64) bool {
		visited++
		return visited < 4 // early stop after 4 entries
	})
	require.Equal(t, 4, visited)

	doubled := m.Map(func(_, _ int, v float64) float64 { return 2 * v })
	require.Equal(t, matrix.KindDense, doubled.Kind())
	require.Equal(t, 6.0, MustAt(t, doubled, 1, 2))
	require.Equal(t, 3.0, MustAt(t, m, 1, 2), "Map must not mutate the receiver")
}

func TestDense_RowTo(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	row, err := m.RowTo(nil, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, row)

	buf := make([]float64, 8)
	row, err = m.RowTo(buf, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, row)

	_, err = m.RowTo(nil, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}
