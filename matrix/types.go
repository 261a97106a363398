// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by both representations.
// This file intentionally contains ONLY the Matrix interface, the
// representation tag and the triplet helper type. Errors live in errors.go.
package matrix

// Kind tags the concrete representation behind a Matrix.
type Kind uint8

const (
	// KindDense is the row-major *Dense representation.
	KindDense Kind = iota
	// KindSparse is the compressed-sparse-row *Sparse representation.
	KindSparse
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindSparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// Matrix is a two-dimensional float64 array with a capability surface that
// lets algorithms stay representation-agnostic: they visit stored entries via
// Range and derive new matrices via Map instead of type-switching on Dense vs
// Sparse.
//
// Complexity notes: Rows/Cols/Kind are O(1). At/Set are O(1) on Dense and
// O(log nnz_row) / O(nnz) on Sparse. Range/Map/Clone are O(stored entries).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i or j are outside the matrix.
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange for invalid indices and ErrNaNInf for non-finite v.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix with the same representation.
	Clone() Matrix

	// Kind reports the representation tag.
	Kind() Kind

	// NNZ returns the number of non-zero entries.
	NNZ() int

	// Range visits stored entries in row-major order (every entry for Dense,
	// only non-zeros for Sparse) and stops early when f returns false.
	Range(f func(i, j int, v float64) bool)

	// Map returns a new matrix of the same representation whose stored
	// entries are f(i, j, v). Sparse results drop entries mapped to zero.
	Map(f func(i, j int, v float64) float64) Matrix

	// RowTo writes row i densely into dst (grown if too short) and returns it.
	RowTo(dst []float64, i int) ([]float64, error)
}

// Triplet is a single (row, col, value) entry used to assemble a *Sparse.
type Triplet struct {
	Row, Col int
	Val      float64
}
