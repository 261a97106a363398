// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/flowdiff/internal/parallel"
	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/warn"
)

const opPairwise = "Pairwise"

// Pairwise returns the n×n distance matrix between the rows of points.
// MAIN DESCRIPTION:
//   - One point per row; every pair (i<j) is evaluated once with the selected
//     metric and mirrored, the diagonal is exactly zero.
//
// Implementation:
//   - Stage 1: resolve the metric; normalise the representation (Dense/Sparse
//     pass through, anything else becomes canonical Sparse with a warning).
//   - Stage 2: gather rows into one contiguous n·d buffer.
//   - Stage 3: fan the upper triangle out over parallel.Rows and mirror.
//
// Behavior highlights:
//   - Deterministic: each cell is written by exactly one worker.
//
// Errors:
//   - *UnsupportedMetricError, matrix.ErrNilMatrix, matrix.ErrShape family
//     (empty point set), matrix.ErrNaNInf (non-finite metric output).
//
// Complexity:
//   - Time O(n²·d / workers), Space O(n² + n·d).
func Pairwise(points matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts)
	metric, err := Lookup(o.Metric)
	if err != nil {
		return nil, distanceErrorf(opPairwise, err)
	}
	points, converted, err := matrix.Canonicalize(points)
	if err != nil {
		return nil, distanceErrorf(opPairwise, err)
	}
	if converted {
		o.sink().Emit(warn.SparseConversion, opPairwise, "converted %dx%d input to canonical sparse form", points.Rows(), points.Cols())
	}

	n, d := points.Rows(), points.Cols()
	flat := make([]float64, n*d)
	for i := 0; i < n; i++ {
		if _, err = points.RowTo(flat[i*d:(i+1)*d], i); err != nil {
			return nil, distanceErrorf(opPairwise, err)
		}
	}

	out := make([]float64, n*n)
	err = parallel.Rows(n, func(lo, hi int) error {
		var i, j int
		var v float64
		for i = lo; i < hi; i++ {
			a := flat[i*d : (i+1)*d]
			for j = i + 1; j < n; j++ {
				v = metric.Distance(a, flat[j*d:(j+1)*d])
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("points %d and %d: %w", i, j, matrix.ErrNaNInf)
				}
				out[i*n+j] = v
				out[j*n+i] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, distanceErrorf(opPairwise, fmt.Errorf("metric %q: %w", o.Metric, err))
	}

	D, err := matrix.NewDenseFrom(n, n, out)
	if err != nil {
		return nil, distanceErrorf(opPairwise, fmt.Errorf("metric %q: %w", o.Metric, err))
	}

	return D, nil
}
