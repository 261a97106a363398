// SPDX-License-Identifier: MIT

package diffusion_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/flowdiff/distance"
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

// circle returns n equally spaced points on the unit circle and their angles.
func circle(t testing.TB, n int) (*matrix.Dense, []float64) {
	t.Helper()
	rows := make([][]float64, n)
	theta := make([]float64, n)
	for i := range rows {
		theta[i] = 2 * math.Pi * float64(i) / float64(n)
		rows[i] = []float64{math.Cos(theta[i]), math.Sin(theta[i])}
	}

	return dense(t, rows), theta
}

// cloud returns n random points in the unit cube.
func cloud(t testing.TB, n, d int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, d)
		for j := range rows[i] {
			rows[i][j] = rng.Float64()
		}
	}

	return dense(t, rows)
}

// gaussianAffinity is a plain symmetric kernel of a point cloud.
func gaussianAffinity(t testing.TB, X matrix.Matrix, sigma float64) *matrix.Dense {
	t.Helper()
	D, err := distance.Pairwise(X)
	require.NoError(t, err)
	W, err := kernel.Anisotropic(D, sigma, 0)
	require.NoError(t, err)

	return W
}

// ranks returns the 0-based rank of every value (no tie handling needed
// for the continuous samples used here).
func ranks(xs []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
	r := make([]float64, len(xs))
	for rank, i := range idx {
		r[i] = float64(rank)
	}

	return r
}

// spearman is the Pearson correlation of ranks.
func spearman(a, b []float64) float64 {
	return stat.Correlation(ranks(a), ranks(b), nil)
}

// recoverAngles reads an angle from the first two embedding columns and
// aligns it with theta up to reflection and rotation (circular mean offset).
func recoverAngles(t testing.TB, coords matrix.Matrix, theta []float64) []float64 {
	t.Helper()
	n := len(theta)
	phi := make([]float64, n)
	for i := range phi {
		phi[i] = math.Atan2(at(t, coords, i, 1), at(t, coords, i, 0))
	}

	var sign, offset, bestR float64
	for _, s := range []float64{1, -1} {
		var sx, cx float64
		for i := range phi {
			r := s*phi[i] - theta[i]
			sx += math.Sin(r)
			cx += math.Cos(r)
		}
		if R := math.Hypot(sx, cx) / float64(n); R > bestR {
			bestR, sign, offset = R, s, math.Atan2(sx, cx)
		}
	}

	out := make([]float64, n)
	for i := range phi {
		out[i] = math.Mod(sign*phi[i]-offset+4*math.Pi, 2*math.Pi)
	}

	return out
}
