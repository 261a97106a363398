// Package matrix provides the two matrix representations used by the
// diffusion-geometry pipeline and the capability operations that keep the
// algorithms representation-agnostic.
//
// The matrix package provides:
//
//   - Dense: row-major float64 storage with safe At/Set and a NaN/Inf policy.
//     Distance matrices and kernel work buffers live here.
//   - Sparse: canonical CSR storage (no explicit zeros). Sparsified affinities
//     and diffusion operators live here when n is large.
//   - Matrix: the tagged-union interface both implement. Range visits stored
//     entries, Map derives a new matrix in the same representation.
//   - Capability functions built on Range/Map: RowSums, MatVec, Max,
//     ScaleRowsCols, ThresholdMask, MaskMul, WithoutDiagonal, Symmetrize,
//     AllClose, ToDense, ToSparse.
//   - Validators (ValidateSquare, ValidateNonNegative, ValidateSymmetric) and
//     a deterministic Jacobi eigensolver for small symmetric operators.
//
// Errors are sentinels matched with errors.Is. Every dimension/shape
// violation also matches ErrShape.
package matrix
