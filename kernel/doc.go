// Package kernel turns a distance matrix into a density-renormalised
// Gaussian affinity matrix.
//
// Kernels:
//
//	– TypeAnisotropic: W_ij = exp(−D_ij² / 2σ²) with a single bandwidth σ
//	  chosen by a BandwidthPolicy (FixedBandwidth or MedianKthNeighbor).
//	– TypeAdaptive:   per-point bandwidth ε_i = distance to the k-th neighbour,
//	  W_ij = (√(2π)/2)·(exp(−D_ij²/2ε_j²)/ε_j + exp(−D_ij²/2ε_i²)/ε_i).
//
// Both are followed by the anisotropic density renormalisation
//
//	q_i = Σ_j W_ij,   W'_ij = W_ij / (q_i^α · q_j^α),   α ∈ [0,1]
//
// α = 0 keeps the plain kernel, α = 1 removes the sampling density entirely
// (Laplace–Beltrami normalisation).
//
// Output is always an n×n *matrix.Dense, symmetric and non-negative.
//
// Errors:
//
//	– matrix.ErrShape family: non-square or negative-entry distances.
//	– ErrNonPositiveBandwidth: σ or some ε_i is ≤ 0 or not finite.
//	– ErrInvalidAlpha: α outside [0,1].
//	– *UnsupportedKernelTypeError (errors.Is(err, ErrUnsupportedKernelType)).
package kernel
