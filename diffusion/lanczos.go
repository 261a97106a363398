// SPDX-License-Identifier: MIT

package diffusion

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/flowdiff/matrix"
)

// Lanczos defaults.
const (
	// DefaultLanczosBlock is the block width, the largest eigenvalue
	// multiplicity LanczosSolver resolves in full.
	DefaultLanczosBlock = 4

	// DefaultLanczosBasis is the smallest basis size that triggers a restart.
	DefaultLanczosBasis = 128

	// DefaultLanczosRestarts bounds the thick restarts before giving up.
	DefaultLanczosRestarts = 100

	// DefaultLanczosSeed seeds the random start block.
	DefaultLanczosSeed = 1

	// lanczosBreakdown is the relative norm below which a residual column
	// counts as already spanned by the basis.
	lanczosBreakdown = 1e-10
)

// LanczosSolver computes only the k algebraically largest eigenpairs of a
// symmetric operator with block Lanczos and full reorthogonalisation.
// MAIN DESCRIPTION:
//   - P is touched only through matrix.MatVec, so a CSR operator is never
//     densified: memory is the n×m Krylov basis plus the m×m projection.
//
// Implementation:
//   - Stage 1: check P is symmetric within tol.
//   - Stage 2: extend an orthonormal basis Q block by block from a seeded
//     random start block; every product P·q is orthogonalised against the
//     whole basis twice and the leftovers form the next block. Columns that
//     vanish are replaced by fresh random directions.
//   - Stage 3: after each block, Rayleigh–Ritz on H = QᵀPQ (mat.EigenSym)
//     and stop once the k leading residuals ‖P·x − θ·x‖ fall below
//     tol·max(1, |θ|), or the basis spans R^n.
//   - Stage 4: a basis grown to MaxBasis is thick-restarted: it shrinks to
//     its leading Ritz vectors (H becomes diag(θ)) and the last residuals
//     seed the next block.
//   - Stage 5: lift the k Ritz vectors x = Q·s back to R^n.
//
// Behavior highlights:
//   - Deterministic for a fixed Seed.
//   - An eigenvalue repeated more often than Block times may lose copies.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrShape family, matrix.ErrAsymmetry,
//     ErrEigenFailed (no convergence within MaxRestarts).
//
// Complexity:
//   - Time O(m·nnz + m²·n + m³) per block, Space O(m·n + m²), m ≤ MaxBasis+Block.
type LanczosSolver struct {
	Block       int    // <= 0 selects min(k, DefaultLanczosBlock)
	MaxBasis    int    // <= 0 selects max(DefaultLanczosBasis, 8k); at least k+2·Block
	MaxRestarts int    // <= 0 selects DefaultLanczosRestarts
	Seed        uint64 // 0 selects DefaultLanczosSeed
}

// Solve implements Solver.
func (s LanczosSolver) Solve(P matrix.Matrix, k int, tol float64) (*Spectrum, error) {
	if err := matrix.ValidateSymmetric(P, tol); err != nil {
		return nil, err
	}
	n := P.Rows()
	k = min(max(k, 1), n)
	b := s.Block
	if b <= 0 {
		b = min(k, DefaultLanczosBlock)
	}
	limit := s.MaxBasis
	if limit <= 0 {
		limit = max(DefaultLanczosBasis, 8*k)
	}
	limit = max(limit, k+2*b)
	keep := max(k+b, limit/2)
	restarts := s.MaxRestarts
	if restarts <= 0 {
		restarts = DefaultLanczosRestarts
	}
	seed := s.Seed
	if seed == 0 {
		seed = DefaultLanczosSeed
	}

	l := &lanczos{
		P:   P,
		n:   n,
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
	block := l.fill(nil, b)
	for cycle := 0; ; {
		res, err := l.extend(block)
		if err != nil {
			return nil, err
		}
		m := len(l.basis)
		if m >= k {
			vals, vecs, err := l.ritz()
			if err != nil {
				return nil, err
			}
			if m >= n || l.converged(res, vals, vecs, k, tol) {
				return l.lift(vals, vecs, k), nil
			}
			if m >= limit {
				if cycle == restarts {
					return nil, fmt.Errorf("Lanczos: %d pairs not converged after %d restarts: %w", k, cycle, ErrEigenFailed)
				}
				cycle++
				l.restart(vals, vecs, keep)
			}
		}
		if block = l.fill(res, b); len(block) == 0 {
			return nil, fmt.Errorf("Lanczos: basis stalled at %d of %d: %w", m, n, ErrEigenFailed)
		}
	}
}

// lanczos is the state of one LanczosSolver run.
type lanczos struct {
	P     matrix.Matrix
	n     int
	rng   *rand.Rand
	basis [][]float64
	h     [][]float64 // h[i][j] = q_i·P·q_j, grown with the basis
	scale float64     // largest |h| seen, sizes the breakdown threshold
}

// extend appends block to the basis, records its projection and returns the
// residuals P·q − Q·(Qᵀ·P·q), one per block column.
func (l *lanczos) extend(block [][]float64) ([][]float64, error) {
	start := len(l.basis)
	l.basis = append(l.basis, block...)
	m := len(l.basis)
	for i := range l.h {
		l.h[i] = append(l.h[i], make([]float64, m-len(l.h[i]))...)
	}
	for len(l.h) < m {
		l.h = append(l.h, make([]float64, m))
	}

	res := make([][]float64, len(block))
	for c, q := range block {
		w, err := matrix.MatVec(l.P, q)
		if err != nil {
			return nil, err
		}
		j := start + c
		for i, qi := range l.basis {
			v := floats.Dot(qi, w)
			l.h[i][j], l.h[j][i] = v, v
			l.scale = math.Max(l.scale, math.Abs(v))
			floats.AddScaled(w, -v, qi)
		}
		l.orthogonalize(w, nil)
		res[c] = w
	}

	return res, nil
}

// orthogonalize removes from w its components along the basis and extra.
func (l *lanczos) orthogonalize(w []float64, extra [][]float64) {
	for _, set := range [2][][]float64{l.basis, extra} {
		for _, q := range set {
			floats.AddScaled(w, -floats.Dot(q, w), q)
		}
	}
}

// fill orthonormalises res into the next block of at most b columns,
// topping up vanished directions with random ones. A nil res draws the
// start block.
func (l *lanczos) fill(res [][]float64, b int) [][]float64 {
	thresh := lanczosBreakdown * math.Max(l.scale, math.SmallestNonzeroFloat64)
	next := make([][]float64, 0, b)
	add := func(w []float64, floor float64) bool {
		for range 2 {
			l.orthogonalize(w, next)
		}
		norm := floats.Norm(w, 2)
		if norm <= floor {
			return false
		}
		floats.Scale(1/norm, w)
		next = append(next, w)
		return true
	}
	for _, w := range res {
		add(w, thresh)
	}
	for tries := 0; len(next) < b && tries < 2*b; tries++ {
		if len(l.basis)+len(next) >= l.n {
			break
		}
		w := make([]float64, l.n)
		for i := range w {
			w[i] = l.rng.NormFloat64()
		}
		floats.Scale(1/floats.Norm(w, 2), w)
		add(w, lanczosBreakdown)
	}

	return next
}

// ritz solves the projected problem; values come back ascending.
func (l *lanczos) ritz() ([]float64, *mat.Dense, error) {
	m := len(l.basis)
	H := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			H.SetSym(i, j, l.h[i][j])
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(H, true); !ok {
		return nil, nil, fmt.Errorf("Lanczos projection %dx%d: %w", m, m, ErrEigenFailed)
	}
	vecs := new(mat.Dense)
	es.VectorsTo(vecs)

	return es.Values(nil), vecs, nil
}

// converged checks the k leading Ritz pairs. Every earlier residual lives in
// the basis, so P·x − θ·x reduces to the last residuals weighted by the
// trailing rows of s.
func (l *lanczos) converged(res [][]float64, vals []float64, vecs *mat.Dense, k int, tol float64) bool {
	m := len(l.basis)
	r := make([]float64, l.n)
	for c := m - k; c < m; c++ {
		for i := range r {
			r[i] = 0
		}
		for t, w := range res {
			floats.AddScaled(r, vecs.At(m-len(res)+t, c), w)
		}
		if floats.Norm(r, 2) > tol*math.Max(1, math.Abs(vals[c])) {
			return false
		}
	}

	return true
}

// restart shrinks the basis to the keep leading Ritz vectors. Their
// residuals are combinations of the last residual block, which the caller
// turns into the next block.
func (l *lanczos) restart(vals []float64, vecs *mat.Dense, keep int) {
	m := len(l.basis)
	basis := make([][]float64, keep)
	h := make([][]float64, keep)
	for c := range basis {
		basis[c] = l.ritzVector(vecs, m-keep+c)
		h[c] = make([]float64, keep)
		h[c][c] = vals[m-keep+c]
	}
	l.basis, l.h = basis, h
}

// ritzVector returns Q·s for column c of the projected eigenvectors.
func (l *lanczos) ritzVector(vecs *mat.Dense, c int) []float64 {
	x := make([]float64, l.n)
	for j, q := range l.basis {
		floats.AddScaled(x, vecs.At(j, c), q)
	}

	return x
}

// lift returns the k leading Ritz pairs as a Spectrum, values ascending.
func (l *lanczos) lift(vals []float64, vecs *mat.Dense, k int) *Spectrum {
	m := len(l.basis)
	out := &Spectrum{
		Values:  make([]float64, k),
		Vectors: mat.NewDense(l.n, k, nil),
	}
	for c := 0; c < k; c++ {
		out.Values[c] = vals[m-k+c]
		out.Vectors.SetCol(c, l.ritzVector(vecs, m-k+c))
	}

	return out
}
