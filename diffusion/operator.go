// SPDX-License-Identifier: MIT

package diffusion

import (
	"math"

	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/warn"
)

const (
	opRowStochastic = "RowStochastic"
	opSymmetric     = "Symmetric"
)

// Operator is a normalised diffusion operator together with the degree
// vector it was normalised by.
type Operator struct {
	P         matrix.Matrix // same representation as the input affinity
	Degree    []float64     // Deg_i = Σ_j A_ij
	Symmetric bool          // true: P = Deg^-½·A·Deg^-½; false: P = Deg⁻¹·A
}

// RowStochastic returns P = Deg⁻¹·A. Every row of P sums to 1.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrShape family (non-square, negative
// entries), *SingularDegreeError.
// Complexity: O(stored entries).
func RowStochastic(A matrix.Matrix, opts ...Option) (*Operator, error) {
	return NewOperator(A, false, opts...)
}

// Symmetric returns P_sym = Deg^-½·A·Deg^-½ and Deg.
// For a symmetric A the result is symmetric and shares its spectrum with
// the row-stochastic operator.
//
// Errors: as RowStochastic.
func Symmetric(A matrix.Matrix, opts ...Option) (*Operator, error) {
	return NewOperator(A, true, opts...)
}

// NewOperator builds the symmetric or the row-stochastic operator of A.
func NewOperator(A matrix.Matrix, symmetric bool, opts ...Option) (*Operator, error) {
	op := opRowStochastic
	if symmetric {
		op = opSymmetric
	}
	o := gatherOptions(opts)

	A, converted, err := matrix.Canonicalize(A)
	if err != nil {
		return nil, diffusionErrorf(op, err)
	}
	if converted {
		o.sink().Emit(warn.SparseConversion, op, "converted %dx%d input to canonical sparse form", A.Rows(), A.Cols())
	}
	if err = matrix.ValidateSquare(A); err != nil {
		return nil, diffusionErrorf(op, err)
	}
	if err = matrix.ValidateNonNegative(A); err != nil {
		return nil, diffusionErrorf(op, err)
	}

	deg, err := matrix.RowSums(A)
	if err != nil {
		return nil, diffusionErrorf(op, err)
	}
	if err = checkDegree(deg); err != nil {
		return nil, diffusionErrorf(op, err)
	}

	scale := make([]float64, len(deg))
	var P matrix.Matrix
	if symmetric {
		for i, d := range deg {
			scale[i] = 1 / math.Sqrt(d)
		}
		P, err = matrix.ScaleRowsCols(A, scale, scale)
	} else {
		for i, d := range deg {
			scale[i] = 1 / d
		}
		P, err = matrix.ScaleRowsCols(A, scale, nil)
	}
	if err != nil {
		return nil, diffusionErrorf(op, err)
	}

	return &Operator{P: P, Degree: deg, Symmetric: symmetric}, nil
}

func checkDegree(deg []float64) error {
	for i, d := range deg {
		if !(d > 0) || math.IsInf(d, 0) {
			return &SingularDegreeError{Row: i, Degree: d}
		}
	}

	return nil
}
