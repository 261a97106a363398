// Package sparsify drops negligible affinities so that downstream diffusion
// operators and eigensolvers work on a sparse matrix.
//
// ZeroNegligible zeroes every entry strictly below threshold·max(A) and
// returns the canonical CSR form. The removal is a mask multiply
// (matrix.ThresholdMask + matrix.MaskMul): retained entries are multiplied
// by exactly 1, so their magnitudes are bit-for-bit unchanged and the
// operation is idempotent.
//
// When nothing is removed a warn.SparsificationNoOp warning is emitted.
package sparsify
