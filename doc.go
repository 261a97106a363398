// Package flowdiff turns point clouds, optionally carrying a velocity
// ("flow") per point, into diffusion operators and low-dimensional
// diffusion coordinates.
//
// 🚀 What is flowdiff?
//
//	A numeric library and CLI that chains:
//		• Distances: pairwise metric matrices (euclidean, cosine, ...)
//		• Kernels: anisotropic and adaptive Gaussian affinities with
//		  density renormalization and swappable bandwidth policies
//		• Flashlight kernel: directed, flow-aligned affinities
//		• Sparsification: relative thresholding into CSR form
//		• Diffusion: row-stochastic and symmetric operators, spectral
//		  embedding with trivial-eigenpair removal
//		• Neighbours: top-k directed edges of a transition matrix
//
// ✨ Why flowdiff?
//
//   - One matrix contract: dense and sparse inputs go everywhere
//   - Sentinel errors matched with errors.Is, no panics on user data
//   - Warnings surface through a hook and an optional zap logger
//   - Row-parallel kernels, gonum eigensolvers
//
// Packages:
//
//	matrix/      — Dense and CSR Sparse matrices, validators, Jacobi Eigen
//	distance/    — metric registry, Pairwise, k-th neighbour radii
//	kernel/      — anisotropic / adaptive kernels, bandwidth policies
//	flashlight/  — flow-conditioned directed affinities
//	sparsify/    — ZeroNegligible
//	diffusion/   — operators, Coordinates, MapFromPoints, MatrixFromPoints
//	neighbors/   — FlowNeighbors edge lists
//	warn/        — warning kinds and the Sink fan-out
//	cmd/flowdiff — embed, flow-neighbors and affinity commands
//
// Quick pipeline:
//
//	X ──Pairwise──▶ D ──Build──▶ W ──ZeroNegligible──▶ S ──Symmetric──▶ Ψ
//
//	emb, err := diffusion.MapFromPoints(X, diffusion.WithTime(2))
//
//	go get github.com/katalvlaran/flowdiff
package flowdiff
