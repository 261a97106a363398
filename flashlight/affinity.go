// SPDX-License-Identifier: MIT

package flashlight

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/flowdiff/distance"
	"github.com/katalvlaran/flowdiff/internal/parallel"
	"github.com/katalvlaran/flowdiff/kernel"
	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/warn"
)

const (
	opAffinity      = "Affinity"
	opCrossAffinity = "CrossAffinity"
)

// Affinity returns the n×n flashlight affinity of points under flow.
// MAIN DESCRIPTION:
//   - A_ij = exp(−(s·|‖f_i‖ − f_i·u_ij| + ‖x_j − x_i‖)/σ), see package doc.
//
// Implementation:
//   - Stage 1: canonicalise inputs, check points and flow have equal shape.
//   - Stage 2: resolve σ (automatic σ needs the euclidean distance matrix).
//   - Stage 3: evaluate every (i, j) row-parallel.
//
// Behavior highlights:
//   - Not symmetric; the diagonal is exp(−s·‖f_i‖/σ).
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrShape family (shape mismatch),
//     kernel.ErrNonPositiveBandwidth, ErrInvalidFlowStrength.
//
// Complexity:
//   - Time O(n²·d / workers), Space O(n² + n·d).
func Affinity(points, flow matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	A, err := cross(opAffinity, points, points, flow, gatherOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opAffinity, err)
	}

	return A, nil
}

// CrossAffinity returns the n1×n2 flashlight affinity from the points of
// `from` (carrying flow, one vector per row of from) to the points of `to`.
// The automatic bandwidth is computed from the distances among `from`.
//
// Errors: as Affinity.
func CrossAffinity(from, to, flow matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	A, err := cross(opCrossAffinity, from, to, flow, gatherOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCrossAffinity, err)
	}

	return A, nil
}

func cross(op string, from, to, flow matrix.Matrix, o Options) (*matrix.Dense, error) {
	if math.IsNaN(o.FlowStrength) || math.IsInf(o.FlowStrength, 0) || o.FlowStrength < 0 {
		return nil, fmt.Errorf("flow strength=%g: %w", o.FlowStrength, ErrInvalidFlowStrength)
	}
	sink := warn.Sink{Logger: o.Logger, OnWarning: o.OnWarning}
	X1, err := canonical(op, from, sink)
	if err != nil {
		return nil, err
	}
	X2, err := canonical(op, to, sink)
	if err != nil {
		return nil, err
	}
	F, err := canonical(op, flow, sink)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateSameShape(X1, F); err != nil {
		return nil, fmt.Errorf("flow vs points: %w", err)
	}
	if X2.Cols() != X1.Cols() {
		return nil, fmt.Errorf("from has %d dims, to has %d: %w", X1.Cols(), X2.Cols(), matrix.ErrDimensionMismatch)
	}

	sigma, err := bandwidth(X1, o)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("flashlight bandwidth", zap.String("op", op), zap.Float64("sigma", sigma))

	n1, n2, d := X1.Rows(), X2.Rows(), X1.Cols()
	xs, err := flatRows(X1)
	if err != nil {
		return nil, err
	}
	ys, err := flatRows(X2)
	if err != nil {
		return nil, err
	}
	fs, err := flatRows(F)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n1*n2)
	err = parallel.Rows(n1, func(lo, hi int) error {
		disp := make([]float64, d)
		var i, j int
		var fnorm, length, along float64
		for i = lo; i < hi; i++ {
			xi, fi := xs[i*d:(i+1)*d], fs[i*d:(i+1)*d]
			fnorm = floats.Norm(fi, 2)
			for j = 0; j < n2; j++ {
				floats.SubTo(disp, ys[j*d:(j+1)*d], xi)
				length = floats.Norm(disp, 2)
				along = 0
				if length > 0 {
					along = floats.Dot(fi, disp) / length
				}
				out[i*n2+j] = math.Exp(-(o.FlowStrength*math.Abs(fnorm-along) + length) / sigma)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matrix.NewDenseFrom(n1, n2, out)
}

// bandwidth skips the distance matrix when σ is fixed.
func bandwidth(X matrix.Matrix, o Options) (float64, error) {
	if fixed, ok := o.Bandwidth.(kernel.FixedBandwidth); ok {
		return fixed.Bandwidth(nil)
	}
	D, err := distance.Pairwise(X, distance.WithLogger(o.Logger), distance.WithOnWarning(o.OnWarning))
	if err != nil {
		return 0, err
	}

	return o.Bandwidth.Bandwidth(D)
}

func canonical(op string, m matrix.Matrix, sink warn.Sink) (matrix.Matrix, error) {
	out, converted, err := matrix.Canonicalize(m)
	if err != nil {
		return nil, err
	}
	if converted {
		sink.Emit(warn.SparseConversion, op, "converted %dx%d input to canonical sparse form", out.Rows(), out.Cols())
	}

	return out, nil
}

func flatRows(m matrix.Matrix) ([]float64, error) {
	n, d := m.Rows(), m.Cols()
	flat := make([]float64, n*d)
	for i := 0; i < n; i++ {
		if _, err := m.RowTo(flat[i*d:(i+1)*d], i); err != nil {
			return nil, err
		}
	}

	return flat, nil
}
