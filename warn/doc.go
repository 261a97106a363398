// Package warn is the non-fatal diagnostic channel shared by the numeric
// packages (distance, kernel, sparsify, flashlight, diffusion).
//
// A Warning never aborts a computation. It is delivered through a Sink, which
// forwards it to an optional OnWarning hook and logs it at Warn level on a
// *zap.Logger. Both ends are optional; a zero Sink discards everything.
//
// Kinds:
//
//   - NumericalInstability: imaginary eigen-components or slightly negative
//     eigenvalues were resolved during spectral embedding.
//   - SparsificationNoOp: the sparsification threshold removed nothing.
//   - SparseConversion: an input matrix in an unrecognised representation was
//     converted to the canonical sparse form.
package warn
