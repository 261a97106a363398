// SPDX-License-Identifier: MIT

package neighbors

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/flowdiff/internal/parallel"
	"github.com/katalvlaran/flowdiff/matrix"
)

const opFlowNeighbors = "FlowNeighbors"

// Edge is a directed, weighted edge From → To.
type Edge struct {
	From, To int
	Weight   float64
}

// EdgeList is a sequence of directed edges.
type EdgeList []Edge

// Pairs returns the edge indices as two parallel slices: sources and targets.
func (l EdgeList) Pairs() [2][]int {
	src := make([]int, len(l))
	dst := make([]int, len(l))
	for i, e := range l {
		src[i], dst[i] = e.From, e.To
	}

	return [2][]int{src, dst}
}

// FlowNeighbors returns the top-k out-neighbours of every node of P.
// MAIN DESCRIPTION:
//   - The diagonal of P is removed structurally, then each row keeps its k
//     largest positive entries as edges i → j with weight P[i][j].
//
// Behavior highlights:
//   - Ties are broken by ascending column index.
//   - Rows with fewer than k positive off-diagonal entries yield fewer edges.
//   - Output order: source ascending, then weight descending.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare (ErrShape family), ErrInvalidK.
//
// Complexity:
//   - Time O(nnz + Σ_i m_i log m_i) with m_i the positive entries of row i,
//     Space O(nnz).
func FlowNeighbors(P matrix.Matrix, k int) (EdgeList, error) {
	if k < 1 {
		return nil, neighborsErrorf(opFlowNeighbors, fmt.Errorf("k=%d: %w", k, ErrInvalidK))
	}
	if err := matrix.ValidateSquare(P); err != nil {
		return nil, neighborsErrorf(opFlowNeighbors, err)
	}
	off, err := matrix.WithoutDiagonal(P)
	if err != nil {
		return nil, neighborsErrorf(opFlowNeighbors, err)
	}

	// bucket positive entries per row; Range visits row-major, so columns
	// within a bucket are already ascending
	n := off.Rows()
	rows := make([]EdgeList, n)
	off.Range(func(i, j int, v float64) bool {
		if v > 0 {
			rows[i] = append(rows[i], Edge{From: i, To: j, Weight: v})
		}
		return true
	})

	err = parallel.Rows(n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			rows[i] = topK(rows[i], k)
		}
		return nil
	})
	if err != nil {
		return nil, neighborsErrorf(opFlowNeighbors, err)
	}

	total := 0
	for _, r := range rows {
		total += len(r)
	}
	out := make(EdgeList, 0, total)
	for _, r := range rows {
		out = append(out, r...)
	}

	return out, nil
}

// topK orders row by weight descending (stable, so ascending column breaks
// ties) and truncates it to k entries.
func topK(row EdgeList, k int) EdgeList {
	sort.SliceStable(row, func(a, b int) bool { return row[a].Weight > row[b].Weight })
	if len(row) > k {
		row = row[:k:k]
	}

	return row
}
