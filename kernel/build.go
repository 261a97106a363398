// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/flowdiff/distance"
	"github.com/katalvlaran/flowdiff/internal/parallel"
	"github.com/katalvlaran/flowdiff/matrix"
)

const (
	opBuild               = "Build"
	opAnisotropic         = "Anisotropic"
	opAdaptiveAnisotropic = "AdaptiveAnisotropic"
)

// adaptiveScale is the leading constant of the adaptive kernel, √(2π)/2.
var adaptiveScale = math.Sqrt(2*math.Pi) / 2

// Build returns the density-renormalised kernel of the distance matrix D.
// MAIN DESCRIPTION:
//   - Gaussian affinities with a global (TypeAnisotropic) or per-point
//     (TypeAdaptive) bandwidth, then W' = q^-α · W · q^-α with q = row sums of W.
//
// Implementation:
//   - Stage 1: validate D (square, non-negative) and α.
//   - Stage 2: resolve bandwidths (policy σ, or k-th-neighbour radii ε).
//   - Stage 3: fill W row-parallel; unstored sparse distances count as 0.
//   - Stage 4: renormalise with matrix.RowSums + matrix.ScaleRowsCols.
//
// Behavior highlights:
//   - Output is symmetric for symmetric D: both kernels and the D·W·D
//     sandwich are symmetric in (i,j).
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrShape family, matrix.ErrNaNInf,
//     ErrNonPositiveBandwidth, ErrInvalidAlpha, *UnsupportedKernelTypeError.
//
// Complexity:
//   - Time O(n²) (+ O(n² log n) for k-th-neighbour radii), Space O(n²).
func Build(D matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts)
	if err := matrix.ValidateSquare(D); err != nil {
		return nil, kernelErrorf(opBuild, err)
	}
	if err := matrix.ValidateNonNegative(D); err != nil {
		return nil, kernelErrorf(opBuild, err)
	}
	if math.IsNaN(o.Alpha) || o.Alpha < 0 || o.Alpha > 1 {
		return nil, kernelErrorf(opBuild, fmt.Errorf("alpha=%g: %w", o.Alpha, ErrInvalidAlpha))
	}
	dd, err := matrix.ToDense(D)
	if err != nil {
		return nil, kernelErrorf(opBuild, err)
	}

	var W *matrix.Dense
	switch o.Type {
	case TypeAnisotropic:
		W, err = fixedGaussian(dd, o)
	case TypeAdaptive:
		W, err = adaptiveGaussian(dd, o)
	default:
		err = &UnsupportedKernelTypeError{Name: o.Type.String()}
	}
	if err != nil {
		return nil, kernelErrorf(opBuild, err)
	}

	out, err := renormalize(W, o.Alpha)
	if err != nil {
		return nil, kernelErrorf(opBuild, err)
	}

	return out, nil
}

// Anisotropic is Build with TypeAnisotropic, a fixed σ and degree α.
func Anisotropic(D matrix.Matrix, sigma, alpha float64) (*matrix.Dense, error) {
	W, err := Build(D, WithType(TypeAnisotropic), WithSigma(sigma), WithAlpha(alpha))
	if err != nil {
		return nil, kernelErrorf(opAnisotropic, err)
	}

	return W, nil
}

// AdaptiveAnisotropic is Build with TypeAdaptive, k neighbours and degree α.
func AdaptiveAnisotropic(D matrix.Matrix, k int, alpha float64) (*matrix.Dense, error) {
	W, err := Build(D, WithType(TypeAdaptive), WithNeighbors(k), WithAlpha(alpha))
	if err != nil {
		return nil, kernelErrorf(opAdaptiveAnisotropic, err)
	}

	return W, nil
}

func fixedGaussian(D *matrix.Dense, o Options) (*matrix.Dense, error) {
	sigma, err := o.Bandwidth.Bandwidth(D)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("kernel bandwidth", zap.Stringer("type", TypeAnisotropic), zap.Float64("sigma", sigma))

	n := D.Rows()
	d := D.Values()
	inv := 1 / (2 * sigma * sigma)
	w := make([]float64, n*n)
	err = parallel.Rows(n, func(lo, hi int) error {
		for k := lo * n; k < hi*n; k++ {
			w[k] = math.Exp(-d[k] * d[k] * inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matrix.NewDenseFrom(n, n, w)
}

func adaptiveGaussian(D *matrix.Dense, o Options) (*matrix.Dense, error) {
	eps, err := distance.KthNeighbor(D, o.Neighbors)
	if err != nil {
		return nil, err
	}
	for i, e := range eps {
		if _, err = checkBandwidth(e); err != nil {
			return nil, fmt.Errorf("radius of point %d is %g: %w", i, e, err)
		}
	}
	o.Logger.Debug("kernel bandwidth",
		zap.Stringer("type", TypeAdaptive),
		zap.Int("k", o.Neighbors),
		zap.Float64("median_radius", distance.Median(eps)),
	)

	n := D.Rows()
	d := D.Values()
	w := make([]float64, n*n)
	err = parallel.Rows(n, func(lo, hi int) error {
		var i, j int
		var d2, ei, ej float64
		for i = lo; i < hi; i++ {
			ei = eps[i]
			for j = 0; j < n; j++ {
				d2 = d[i*n+j] * d[i*n+j]
				ej = eps[j]
				w[i*n+j] = adaptiveScale * (math.Exp(-d2/(2*ej*ej))/ej + math.Exp(-d2/(2*ei*ei))/ei)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matrix.NewDenseFrom(n, n, w)
}

// renormalize applies W' = q^-α·W·q^-α with q the row sums of W.
func renormalize(W *matrix.Dense, alpha float64) (*matrix.Dense, error) {
	if alpha == 0 {
		return W, nil
	}
	q, err := matrix.RowSums(W)
	if err != nil {
		return nil, err
	}
	for i, s := range q {
		q[i] = math.Pow(s, -alpha)
	}
	out, err := matrix.ScaleRowsCols(W, q, q)
	if err != nil {
		return nil, err
	}

	return out.(*matrix.Dense), nil
}
