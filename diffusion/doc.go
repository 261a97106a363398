// Package diffusion turns affinity matrices into diffusion operators and
// spectral embeddings ("diffusion maps").
//
// Operators:
//
//	RowStochastic(A):  P     = Deg⁻¹·A           rows sum to 1
//	Symmetric(A):      P_sym = Deg^-½·A·Deg^-½   same spectrum as P, symmetric for symmetric A
//
// where Deg_i = Σ_j A_ij. Both keep the representation of A (sparse in,
// sparse out) and fail with *SingularDegreeError on an empty row.
//
// Embedding (Coordinates):
//
//  1. eigenpairs (λ, v) of P_sym via a Solver (AutoSolver by default:
//     dense gonum below DefaultDenseLimit points, sparse Lanczos above);
//  2. keep the k largest by real part, ties broken by solver order;
//  3. ψ = Deg^-½·v, unit-normalised, sign fixed so the largest-magnitude
//     component is positive;
//  4. drop the trivial (largest) pair;
//  5. order by decreasing eigenvalue and scale column c by λ_c^t.
//
// The result has n rows and k−1 columns. Imaginary eigenvalue parts above
// tolerance and slightly negative eigenvalues are resolved and reported as
// warn.NumericalInstability; a complex-conjugate pair is embedded as the
// real and imaginary parts of its eigenvector.
//
// Pipelines:
//
//	MapFromPoints:     distance → kernel → sparsify → Symmetric → Coordinates
//	MapFromAffinities: Symmetric → Coordinates
//	MatrixFromPoints:  distance → kernel → sparsify → RowStochastic
//
// All functions are synchronous and stateless; there is no cancellation and
// eigendecomposition always runs to completion.
package diffusion
