// SPDX-License-Identifier: MIT

package distance

import (
	"math"
	"slices"

	"github.com/katalvlaran/flowdiff/matrix"
)

const (
	opKthNeighbor       = "KthNeighbor"
	opMedianKthNeighbor = "MedianKthNeighbor"
)

// KthNeighbor returns, for every row of the square distance matrix D, the
// k-th smallest entry, counting the zero self-distance as position 0.
// k is clamped to [1, n−1].
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, ErrTooFewPoints.
// Complexity: O(n² log n).
func KthNeighbor(D matrix.Matrix, k int) ([]float64, error) {
	if err := matrix.ValidateSquare(D); err != nil {
		return nil, distanceErrorf(opKthNeighbor, err)
	}
	n := D.Rows()
	if n < 2 {
		return nil, distanceErrorf(opKthNeighbor, ErrTooFewPoints)
	}
	k = min(max(k, 1), n-1)

	out := make([]float64, n)
	row := make([]float64, n)
	var err error
	for i := 0; i < n; i++ {
		if row, err = D.RowTo(row, i); err != nil {
			return nil, distanceErrorf(opKthNeighbor, err)
		}
		slices.Sort(row)
		out[i] = row[k]
	}

	return out, nil
}

// MedianKthNeighbor is the automatic bandwidth heuristic: the median over all
// points of the distance to their k-th nearest neighbour. For an even number
// of points the two central values are averaged.
//
// Errors: as KthNeighbor.
func MedianKthNeighbor(D matrix.Matrix, k int) (float64, error) {
	radii, err := KthNeighbor(D, k)
	if err != nil {
		return 0, distanceErrorf(opMedianKthNeighbor, err)
	}

	return Median(radii), nil
}

// Median returns the median of xs (NaN for an empty slice). xs is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	s := slices.Clone(xs)
	slices.Sort(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}

	return 0.5 * (s[mid-1] + s[mid])
}
