// SPDX-License-Identifier: MIT
// Package matrix - representation-agnostic capability operations.
//
// Purpose:
//   - Express every algebra step the diffusion pipeline needs (row sums,
//     diagonal scaling, threshold masks, mat-vec) ONCE, on top of Range/Map,
//     so Dense and Sparse inputs flow through identical code.
//   - Conversions between the two representations (ToDense / ToSparse).
//
// Determinism:
//   - Range is row-major for both representations; accumulations therefore
//     happen in the same order whatever the representation.
//
// AI-Hints:
//   - ScaleRowsCols(A, d, d) is the D·A·D sandwich used by density
//     renormalization and by both diffusion normalizations.
//   - ThresholdMask + MaskMul is the sparsification primitive: retained
//     magnitudes are multiplied by exactly 1.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping.
const (
	opToDense         = "ToDense"
	opToSparse        = "ToSparse"
	opRowSums         = "RowSums"
	opMatVec          = "MatVec"
	opMax             = "Max"
	opScaleRowsCols   = "ScaleRowsCols"
	opThresholdMask   = "ThresholdMask"
	opMaskMul         = "MaskMul"
	opWithoutDiagonal = "WithoutDiagonal"
	opAllClose        = "AllClose"
	opSymmetrize      = "Symmetrize"
)

// ToDense materializes m as a new *Dense (always a copy).
// Complexity: O(r*c) allocation + O(stored entries) writes.
func ToDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToDense, err)
	}
	if d, ok := m.(*Dense); ok {
		return d.Clone().(*Dense), nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(opToDense, err)
	}
	cols := out.c
	m.Range(func(i, j int, v float64) bool {
		out.data[i*cols+j] = v
		return true
	})

	return out, nil
}

// ToSparse returns the canonical CSR form of m (non-zeros only, always a copy).
// MAIN DESCRIPTION:
//   - Range is row-major with ascending columns for every representation, so
//     CSR buffers are appended directly without sorting.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, ErrNaNInf (non-finite stored entry).
//
// Complexity:
//   - Time O(stored entries + r), Space O(nnz + r).
func ToSparse(m Matrix) (*Sparse, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToSparse, err)
	}
	if s, ok := m.(*Sparse); ok {
		return s.Clone().(*Sparse), nil
	}
	out, err := NewSparse(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(opToSparse, err)
	}
	var bad error
	m.Range(func(i, j int, v float64) bool {
		if v == 0 {
			return true
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf)
			return false
		}
		out.indices = append(out.indices, j)
		out.data = append(out.data, v)
		out.indptr[i+1]++
		return true
	})
	if bad != nil {
		return nil, matrixErrorf(opToSparse, bad)
	}
	for i := 0; i < out.r; i++ {
		out.indptr[i+1] += out.indptr[i]
	}

	return out, nil
}

// RowSums returns r[i] = Σ_j m[i,j].
// Complexity: O(stored entries).
//
// AI-Hints: degree vectors for density renormalization and diffusion operators.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	sums := make([]float64, m.Rows())
	m.Range(func(i, _ int, v float64) bool {
		sums[i] += v
		return true
	})

	return sums, nil
}

// MatVec computes y = m·x.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(stored entries).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.Rows())
	m.Range(func(i, j int, v float64) bool {
		y[i] += v * x[j]
		return true
	})

	return y, nil
}

// Max returns the largest entry of m, counting unstored sparse entries as 0.
// Complexity: O(stored entries).
func Max(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opMax, err)
	}
	best := math.Inf(-1)
	var stored int
	m.Range(func(_, _ int, v float64) bool {
		stored++
		if v > best {
			best = v
		}
		return true
	})
	// implicit zeros take part in the maximum
	if stored < m.Rows()*m.Cols() && best < 0 {
		best = 0
	}

	return best, nil
}

// ScaleRowsCols returns diag(left)·m·diag(right) in m's representation.
// A nil left or right stands for the all-ones vector.
//
// Implementation:
//   - Stage 1: validate vector lengths against the shape.
//   - Stage 2: Map each stored entry to left[i]*v*right[j].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(stored entries), Space O(stored entries).
func ScaleRowsCols(m Matrix, left, right []float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScaleRowsCols, err)
	}
	if left != nil {
		if err := ValidateVecLen(left, m.Rows()); err != nil {
			return nil, matrixErrorf(opScaleRowsCols, err)
		}
	}
	if right != nil {
		if err := ValidateVecLen(right, m.Cols()); err != nil {
			return nil, matrixErrorf(opScaleRowsCols, err)
		}
	}

	return m.Map(func(i, j int, v float64) float64 {
		if left != nil {
			v *= left[i]
		}
		if right != nil {
			v *= right[j]
		}
		return v
	}), nil
}

// ThresholdMask returns a 0/1 CSR mask with ones where m[i,j] ≥ cut and m[i,j] ≠ 0.
// Complexity: O(stored entries).
func ThresholdMask(m Matrix, cut float64) (*Sparse, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opThresholdMask, err)
	}
	if math.IsNaN(cut) {
		return nil, matrixErrorf(opThresholdMask, ErrNaNInf)
	}
	ones := m.Map(func(_, _ int, v float64) float64 {
		if v != 0 && v >= cut {
			return 1
		}
		return 0
	})

	return ToSparse(ones)
}

// MaskMul returns the element-wise product m ⊙ mask in m's representation.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(stored entries · log nnz_row(mask)).
func MaskMul(m Matrix, mask *Sparse) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMaskMul, err)
	}
	if mask == nil {
		return nil, matrixErrorf(opMaskMul, ErrNilMatrix)
	}
	if err := ValidateSameShape(m, mask); err != nil {
		return nil, matrixErrorf(opMaskMul, err)
	}

	return m.Map(func(i, j int, v float64) float64 {
		w, _ := mask.At(i, j) // indices come from m's own range
		return v * w
	}), nil
}

// WithoutDiagonal returns a copy of a square m with the diagonal removed:
// sparse inputs lose the stored diagonal entries, dense inputs get zeros.
// Errors: ErrNilMatrix, ErrNonSquare.
func WithoutDiagonal(m Matrix) (Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opWithoutDiagonal, err)
	}

	return m.Map(func(i, j int, v float64) float64 {
		if i == j {
			return 0
		}
		return v
	}), nil
}

// Symmetrize returns (m + mᵀ)/2 as a new Dense.
// AI-Hints: repairs floating-point asymmetry drift before symmetric eigensolvers.
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	d, err := ToDense(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	n := d.r
	var i, j int
	var avg float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			avg = 0.5 * (d.data[i*n+j] + d.data[j*n+i])
			d.data[i*n+j], d.data[j*n+i] = avg, avg
		}
	}

	return d, nil
}

// AllClose reports whether |a−b| ≤ atol + rtol·|b| element-wise.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (bad tolerances).
// Complexity: O(r*c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if math.IsNaN(rtol) || math.IsNaN(atol) || rtol < 0 || atol < 0 {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	da, err := ToDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := ToDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for k := range da.data {
		if math.Abs(da.data[k]-db.data[k]) > atol+rtol*math.Abs(db.data[k]) {
			return false, nil
		}
	}

	return true, nil
}

// Canonicalize returns m unchanged when it is *Dense or *Sparse; any other
// implementation is copied into canonical *Sparse form and converted is true.
// Errors: ErrNilMatrix, ErrNaNInf.
func Canonicalize(m Matrix) (out Matrix, converted bool, err error) {
	if err = ValidateNotNil(m); err != nil {
		return nil, false, err
	}
	switch m.(type) {
	case *Dense, *Sparse:
		return m, false, nil
	}
	sp, err := ToSparse(m)
	if err != nil {
		return nil, false, err
	}

	return sp, true, nil
}
