// SPDX-License-Identifier: MIT

package flashlight_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/flowdiff/distance"
	"github.com/katalvlaran/flowdiff/flashlight"
	"github.com/katalvlaran/flowdiff/kernel"
	"github.com/katalvlaran/flowdiff/matrix"
)

func dense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func at(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// line returns three collinear points with a uniform +x flow.
func line(t testing.TB) (X, F *matrix.Dense) {
	return dense(t, [][]float64{{0, 0}, {1, 0}, {2, 0}}),
		dense(t, [][]float64{{1, 0}, {1, 0}, {1, 0}})
}

func TestAffinity_Directionality(t *testing.T) {
	t.Parallel()

	X, F := line(t)
	A, err := flashlight.Affinity(X, F, flashlight.WithSigma(1))
	require.NoError(t, err)

	require.Greater(t, at(t, A, 0, 1), at(t, A, 1, 0))
	require.Greater(t, at(t, A, 1, 2), at(t, A, 2, 1))

	// along the flow: deviation is the step length only
	require.InDelta(t, math.Exp(-1), at(t, A, 0, 1), 1e-15)
	require.InDelta(t, math.Exp(-2), at(t, A, 0, 2), 1e-15)
	// against the flow: |1 − (−1)| + 1
	require.InDelta(t, math.Exp(-3), at(t, A, 1, 0), 1e-15)
	// diagonal: zero displacement contributes s·‖f_i‖
	require.InDelta(t, math.Exp(-1), at(t, A, 1, 1), 1e-15)
}

func TestAffinity_FlowStrength(t *testing.T) {
	t.Parallel()

	X, F := line(t)
	A, err := flashlight.Affinity(X, F, flashlight.WithSigma(2), flashlight.WithFlowStrength(5))
	require.NoError(t, err)
	require.InDelta(t, math.Exp(-(5*2+1)/2.0), at(t, A, 1, 0), 1e-15)
	require.InDelta(t, math.Exp(-0.5), at(t, A, 0, 1), 1e-15)

	// zero strength degenerates to a distance-only exponential kernel
	A0, err := flashlight.Affinity(X, F, flashlight.WithSigma(1), flashlight.WithFlowStrength(0))
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(A0, 0))
}

func TestAffinity_AutomaticSigma(t *testing.T) {
	t.Parallel()

	X := dense(t, [][]float64{{0, 0}, {1, 0}, {3, 0}, {6, 0}})
	F := dense(t, [][]float64{{0, 1}, {0, 1}, {0, 1}, {0, 1}})
	D, err := distance.Pairwise(X)
	require.NoError(t, err)
	sigma, err := distance.MedianKthNeighbor(D, 2)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	auto, err := flashlight.Affinity(X, F, flashlight.WithNeighbors(2), flashlight.WithLogger(zap.New(core)))
	require.NoError(t, err)
	fixed, err := flashlight.Affinity(X, F, flashlight.WithSigma(sigma))
	require.NoError(t, err)

	ok, err := matrix.AllClose(auto, fixed, 0, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sigma, logs.FilterMessage("flashlight bandwidth").All()[0].ContextMap()["sigma"])
}

func TestCrossAffinity(t *testing.T) {
	t.Parallel()

	X, F := line(t)
	to := dense(t, [][]float64{{1, 0}, {-1, 0}})
	C, err := flashlight.CrossAffinity(X, to, F, flashlight.WithSigma(1))
	require.NoError(t, err)
	require.Equal(t, 3, C.Rows())
	require.Equal(t, 2, C.Cols())

	A, err := flashlight.Affinity(X, F, flashlight.WithSigma(1))
	require.NoError(t, err)
	require.Equal(t, at(t, A, 0, 1), at(t, C, 0, 0))
	require.Greater(t, at(t, C, 0, 0), at(t, C, 0, 1))
}

func TestAffinity_Errors(t *testing.T) {
	t.Parallel()

	X, _ := line(t)
	short := dense(t, [][]float64{{1, 0}, {1, 0}})
	_, err := flashlight.Affinity(X, short, flashlight.WithSigma(1))
	require.ErrorIs(t, err, matrix.ErrShape)

	wide := dense(t, [][]float64{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}})
	_, err = flashlight.Affinity(X, wide, flashlight.WithSigma(1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = flashlight.CrossAffinity(X, wide, X, flashlight.WithSigma(1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = flashlight.Affinity(X, X, flashlight.WithSigma(0))
	require.ErrorIs(t, err, kernel.ErrNonPositiveBandwidth)

	_, err = flashlight.Affinity(X, X, flashlight.WithSigma(1), flashlight.WithFlowStrength(-1))
	require.ErrorIs(t, err, flashlight.ErrInvalidFlowStrength)

	_, err = flashlight.Affinity(nil, X)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
