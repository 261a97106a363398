// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating shape/nil/symmetry checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    wrap once more with their operation name and errors.Is still matches.
//
// Determinism & Performance:
//  - All checks are pure and deterministic.
//  - Symmetry check runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil. Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Errors: ErrNilMatrix, ErrNonSquare. Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%dx%d: %w", m.Rows(), m.Cols(), ErrNonSquare))
	}

	return nil
}

// ValidateSameShape checks that a and b describe the same number of items
// with the same dimensionality (points vs. flow vectors).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateSameShape(a, b Matrix) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateSameShape", ErrNilMatrix)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape",
			fmt.Errorf("%dx%d vs %dx%d: %w", a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch))
	}

	return nil
}

// ValidateVecLen ensures len(x) == n.
// Errors: ErrDimensionMismatch.
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("len %d, want %d: %w", len(x), n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateNonNegative checks every stored entry is finite and ≥ 0.
// Errors: ErrNilMatrix, ErrNaNInf, ErrNegativeEntry (first offending entry
// in row-major order). Complexity: O(stored entries).
func ValidateNonNegative(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	var bad error
	m.Range(func(i, j int, v float64) bool {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			bad = fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf)
		case v < 0:
			bad = fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNegativeEntry)
		}
		return bad == nil
	})
	if bad != nil {
		return validatorErrorf("ValidateNonNegative", bad)
	}

	return nil
}

// ValidateSymmetric checks A is square and |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf (bad tol), ErrAsymmetry.
// Complexity: O(n²) At calls.
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	dev, err := MaxAsymmetry(m)
	if err != nil {
		return err
	}
	if dev > math.Abs(tol) {
		return validatorErrorf("ValidateSymmetric", fmt.Errorf("max |a_ij-a_ji|=%g: %w", dev, ErrAsymmetry))
	}

	return nil
}

// MaxAsymmetry returns max_{i<j} |A[i,j] - A[j,i]| for a square matrix.
// Sparse input only visits stored entries: a pair with both sides unstored
// cannot deviate.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n²) Dense, O(nnz·log(nnz/n)) Sparse.
func MaxAsymmetry(m Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, err
	}
	var maxDev float64
	if m.Kind() == KindSparse {
		m.Range(func(i, j int, v float64) bool {
			if i != j {
				aji, _ := m.At(j, i)
				maxDev = math.Max(maxDev, math.Abs(v-aji))
			}
			return true
		})
		return maxDev, nil
	}
	n := m.Rows()
	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j) // bounds guaranteed by the loop
			aji, _ = m.At(j, i)
			if d := math.Abs(aij - aji); d > maxDev {
				maxDev = d
			}
		}
	}

	return maxDev, nil
}
