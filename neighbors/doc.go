// Package neighbors extracts directed k-nearest-neighbour edge lists from a
// transition (or affinity) matrix.
//
// FlowNeighbors removes self-loops structurally with matrix.WithoutDiagonal,
// so a node never appears among its own neighbours even when its diagonal
// entry is the largest of the row. Each row then keeps its k largest positive
// entries. Ties are broken by ascending column index, which makes the result
// deterministic for identical input.
//
// The EdgeList is ordered by source ascending and, within a source, by rank
// (highest weight first). EdgeList.Pairs returns the (sources, targets)
// index layout that graph consumers expect.
package neighbors
