// SPDX-License-Identifier: MIT

// Package matrix - Sparse storage (compressed sparse row).
//
// Purpose:
//   - Canonical sparse form for affinities and diffusion operators: only
//     non-zero entries are stored, column indices are strictly increasing
//     within each row, and no explicit zeros survive any operation.
//   - Same safe surface as Dense (At/Set return errors, never panic).
//
// Complexity quicksheet:
//   - At: O(log nnz_row); Set: O(log nnz_row) update, O(nnz + r) insert/delete;
//     Range/Map/Clone: O(r + nnz).

package matrix

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
)

// Sparse is a CSR matrix.
//   - indptr[i]..indptr[i+1] delimit row i inside indices/data.
//   - indices are column indices, sorted ascending per row.
//   - data holds the matching non-zero values.
type Sparse struct {
	r, c    int
	indptr  []int     // len == r+1
	indices []int     // len == nnz
	data    []float64 // len == nnz
}

var (
	_ Matrix       = (*Sparse)(nil)
	_ fmt.Stringer = (*Sparse)(nil)
)

func sparseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Sparse.%s(%d,%d): %w", method, row, col, err)
}

// NewSparse returns an empty rows×cols CSR matrix.
// Errors: ErrInvalidDimensions on non-positive shapes.
func NewSparse(rows, cols int) (*Sparse, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Sparse{r: rows, c: cols, indptr: make([]int, rows+1)}, nil
}

// NewSparseFromTriplets assembles a CSR matrix from (row, col, value) entries.
// MAIN DESCRIPTION:
//   - COO → CSR conversion with the usual conventions: duplicates are summed,
//     zeros (including duplicates summing to zero) are dropped.
//
// Implementation:
//   - Stage 1: validate shape, indices and finiteness.
//   - Stage 2: stable sort a copy by (row, col); merge duplicates.
//   - Stage 3: emit indptr/indices/data.
//
// Errors:
//   - ErrInvalidDimensions, ErrOutOfRange, ErrNaNInf.
//
// Complexity:
//   - Time O(nnz log nnz + r), Space O(nnz + r).
func NewSparseFromTriplets(rows, cols int, ts []Triplet) (*Sparse, error) {
	s, err := NewSparse(rows, cols)
	if err != nil {
		return nil, err
	}
	for _, t := range ts {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, sparseErrorf("FromTriplets", t.Row, t.Col, ErrOutOfRange)
		}
		if math.IsNaN(t.Val) || math.IsInf(t.Val, 0) {
			return nil, sparseErrorf("FromTriplets", t.Row, t.Col, ErrNaNInf)
		}
	}

	sorted := slices.Clone(ts)
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].Row != sorted[b].Row {
			return sorted[a].Row < sorted[b].Row
		}
		return sorted[a].Col < sorted[b].Col
	})

	s.indices = make([]int, 0, len(sorted))
	s.data = make([]float64, 0, len(sorted))
	var k int
	for k < len(sorted) {
		row, col, sum := sorted[k].Row, sorted[k].Col, sorted[k].Val
		k++
		for k < len(sorted) && sorted[k].Row == row && sorted[k].Col == col {
			sum += sorted[k].Val
			k++
		}
		if sum == 0 {
			continue
		}
		s.indices = append(s.indices, col)
		s.data = append(s.data, sum)
		s.indptr[row+1]++
	}
	// prefix sums turn per-row counts into offsets
	for i := 0; i < rows; i++ {
		s.indptr[i+1] += s.indptr[i]
	}

	return s, nil
}

// Rows returns the row count.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the column count.
func (s *Sparse) Cols() int { return s.c }

// Kind reports KindSparse.
func (s *Sparse) Kind() Kind { return KindSparse }

// NNZ returns the number of stored (non-zero) entries.
func (s *Sparse) NNZ() int { return len(s.data) }

// find locates column j inside row i. When absent, pos is the insertion point.
func (s *Sparse) find(i, j int) (pos int, found bool) {
	lo, hi := s.indptr[i], s.indptr[i+1]
	pos = lo + sort.SearchInts(s.indices[lo:hi], j)

	return pos, pos < hi && s.indices[pos] == j
}

// At returns the value at (i, j); unstored entries read as zero.
func (s *Sparse) At(i, j int) (float64, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return 0, sparseErrorf(ctxAt, i, j, ErrOutOfRange)
	}
	if pos, ok := s.find(i, j); ok {
		return s.data[pos], nil
	}

	return 0, nil
}

// Set writes v at (i, j). Writing zero removes the entry, so the matrix stays
// canonical. Inserting a new entry shifts the tail of the buffers.
//
// Errors: ErrOutOfRange, ErrNaNInf.
func (s *Sparse) Set(i, j int, v float64) error {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return sparseErrorf(ctxSet, i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sparseErrorf(ctxSet, i, j, ErrNaNInf)
	}

	pos, ok := s.find(i, j)
	switch {
	case ok && v != 0:
		s.data[pos] = v
	case ok:
		s.indices = slices.Delete(s.indices, pos, pos+1)
		s.data = slices.Delete(s.data, pos, pos+1)
		for k := i + 1; k <= s.r; k++ {
			s.indptr[k]--
		}
	case v != 0:
		s.indices = slices.Insert(s.indices, pos, j)
		s.data = slices.Insert(s.data, pos, v)
		for k := i + 1; k <= s.r; k++ {
			s.indptr[k]++
		}
	}

	return nil
}

// Clone returns a deep copy.
func (s *Sparse) Clone() Matrix {
	return &Sparse{
		r:       s.r,
		c:       s.c,
		indptr:  slices.Clone(s.indptr),
		indices: slices.Clone(s.indices),
		data:    slices.Clone(s.data),
	}
}

// Range visits stored entries in row-major order; stops when f returns false.
func (s *Sparse) Range(f func(i, j int, v float64) bool) {
	var i, p int
	for i = 0; i < s.r; i++ {
		for p = s.indptr[i]; p < s.indptr[i+1]; p++ {
			if !f(i, s.indices[p], s.data[p]) {
				return
			}
		}
	}
}

// Map applies f to stored entries and drops the ones mapped to zero.
// Unstored entries are never visited: f(i,j,0) is assumed to be 0.
func (s *Sparse) Map(f func(i, j int, v float64) float64) Matrix {
	out := &Sparse{
		r:       s.r,
		c:       s.c,
		indptr:  make([]int, s.r+1),
		indices: make([]int, 0, len(s.data)),
		data:    make([]float64, 0, len(s.data)),
	}
	var i, p int
	var nv float64
	for i = 0; i < s.r; i++ {
		for p = s.indptr[i]; p < s.indptr[i+1]; p++ {
			nv = f(i, s.indices[p], s.data[p])
			if nv == 0 {
				continue
			}
			out.indices = append(out.indices, s.indices[p])
			out.data = append(out.data, nv)
		}
		out.indptr[i+1] = len(out.data)
	}

	return out
}

// RowTo scatters row i into a zeroed dst of length Cols().
func (s *Sparse) RowTo(dst []float64, i int) ([]float64, error) {
	if i < 0 || i >= s.r {
		return nil, sparseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	if cap(dst) < s.c {
		dst = make([]float64, s.c)
	}
	dst = dst[:s.c]
	clear(dst)
	for p := s.indptr[i]; p < s.indptr[i+1]; p++ {
		dst[s.indices[p]] = s.data[p]
	}

	return dst, nil
}

// String lists stored entries as "(i,j) v" lines, prefixed by the shape.
func (s *Sparse) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sparse %dx%d nnz=%d\n", s.r, s.c, len(s.data))
	s.Range(func(i, j int, v float64) bool {
		fmt.Fprintf(&b, "(%d,%d) %g\n", i, j, v)
		return true
	})

	return b.String()
}
