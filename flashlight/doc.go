// Package flashlight builds directed, flow-conditioned affinities: the
// "flashlight kernel".
//
// For points x_i carrying flow vectors f_i, the affinity from i to j is
//
//	u_ij = (x_j − x_i) / ‖x_j − x_i‖            (0 when x_j = x_i)
//	dev  = s·| ‖f_i‖ − f_i·u_ij | + ‖x_j − x_i‖
//	A_ij = exp(−dev / σ)
//
// where s is the flow strength. A step along the flow costs only its length,
// a step against it pays an extra 2·s·‖f_i‖, so A is deliberately asymmetric:
// the beam of the flashlight points downstream.
//
// σ is either fixed (WithSigma) or chosen automatically as the median
// distance to the k-th nearest neighbour (WithNeighbors, default k = 10),
// the same heuristic as kernel.MedianKthNeighbor.
//
// All pairs are evaluated (O(n²·d)); there is no approximate neighbour search.
// Rows are computed in parallel.
package flashlight
