// Package distance computes pairwise distance matrices over point sets and
// the k-th-nearest-neighbour statistics used for automatic kernel bandwidths.
//
// Overview:
//
//	D, err := distance.Pairwise(X)                               // euclidean
//	D, err := distance.Pairwise(X, distance.WithMetric("cosine")) // any registered metric
//	eps, err := distance.KthNeighbor(D, 10)                       // per-point k-NN radius
//	sigma, err := distance.MedianKthNeighbor(D, 10)               // bandwidth heuristic
//
// Output contract:
//
//	– D is an n×n *matrix.Dense, symmetric, non-negative, exact-zero diagonal.
//	– Only the upper triangle is evaluated; it is mirrored into the lower one.
//	– Rows of the upper triangle are distributed over GOMAXPROCS workers.
//
// Metrics (Lookup names):
//
//	– "euclidean", "l2"                 ‖a−b‖₂
//	– "sqeuclidean"                     ‖a−b‖₂²
//	– "manhattan", "cityblock", "l1"    ‖a−b‖₁
//	– "chebyshev"                       ‖a−b‖∞
//	– "cosine"                          1 − a·b/(‖a‖‖b‖), clipped to [0,2]; 1 when a or b is zero
//
// Inputs that are neither *matrix.Dense nor *matrix.Sparse are converted to
// the canonical sparse form first; a warn.SparseConversion warning reports it.
//
// Errors:
//
//	– *UnsupportedMetricError (errors.Is(err, ErrUnsupportedMetric)) for unknown names.
//	– matrix.ErrShape family for empty point sets and non-square distance input.
//	– ErrTooFewPoints when a neighbour statistic needs at least two points.
package distance
