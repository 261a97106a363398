// SPDX-License-Identifier: MIT

package diffusion

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/warn"
)

const opCoordinates = "Coordinates"

// Embedding is a diffusion map.
type Embedding struct {
	// Coords is n×(k−1); row i is point i, column c belongs to Eigenvalues[c].
	Coords *matrix.Dense
	// Eigenvalues of the retained non-trivial pairs, in decreasing order.
	Eigenvalues []float64
	// Trivial is the dropped (largest) eigenvalue, 1 for a connected graph.
	Trivial float64
	// Spectrum holds λ^t per column when WithSpectrumReport is set.
	Spectrum []float64
}

// Coordinates computes the diffusion map of a symmetric diffusion operator.
// MAIN DESCRIPTION:
//   - Leading eigenpairs of P_sym are mapped back to right eigenvectors of
//     the row-stochastic operator (ψ = Deg^-½·v), the trivial pair is dropped
//     and the rest are scaled by λ^t.
//
// Implementation:
//   - Stage 1: validate P_sym, deg, k and t.
//   - Stage 2: Solver.Solve for the k leading pairs; resolve imaginary
//     residue and near-zero negative eigenvalues (warn.NumericalInstability).
//   - Stage 3: stable-sort ascending by eigenvalue, keep the k largest.
//   - Stage 4: ψ = Deg^-½·v, unit columns, deterministic sign.
//   - Stage 5: drop the largest, reverse to descending, scale by λ^t.
//
// Behavior highlights:
//   - An asymmetric operator may have complex pairs a ± bi. Each one keeps
//     the real part a as its eigenvalue, and the pair is embedded as the
//     real and imaginary parts of its eigenvector (Re v for +b, Im v for
//     −b), so the two columns stay independent.
//
// Inputs:
//   - Psym: n×n operator (typically Operator.P of Symmetric).
//   - deg:  its degree vector (Operator.Degree), all entries > 0.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrShape family, *SingularDegreeError,
//     ErrInvalidEigenpairs, ErrInvalidTime, ErrEigenFailed.
//
// Complexity:
//   - Time O(n³), Space O(n²) for the dense solvers; LanczosSolver (chosen
//     by the default AutoSolver for large symmetric operators) keeps a
//     sparse operator sparse.
func Coordinates(Psym matrix.Matrix, deg []float64, opts ...Option) (*Embedding, error) {
	o := gatherOptions(opts)
	if err := matrix.ValidateSquare(Psym); err != nil {
		return nil, diffusionErrorf(opCoordinates, err)
	}
	n := Psym.Rows()
	if err := matrix.ValidateVecLen(deg, n); err != nil {
		return nil, diffusionErrorf(opCoordinates, err)
	}
	if err := checkDegree(deg); err != nil {
		return nil, diffusionErrorf(opCoordinates, err)
	}
	if o.Time < 0 {
		return nil, diffusionErrorf(opCoordinates, fmt.Errorf("t=%d: %w", o.Time, ErrInvalidTime))
	}
	k := min(o.Eigenpairs, n)
	if k < 2 {
		return nil, diffusionErrorf(opCoordinates, fmt.Errorf("k=%d, n=%d: %w", o.Eigenpairs, n, ErrInvalidEigenpairs))
	}

	spec, err := o.Solver.Solve(Psym, k, o.Tolerance)
	if err != nil {
		return nil, diffusionErrorf(opCoordinates, err)
	}
	if len(spec.Values) < k {
		return nil, diffusionErrorf(opCoordinates, fmt.Errorf("solver returned %d of %d pairs: %w", len(spec.Values), k, ErrEigenFailed))
	}

	// indices of the k largest eigenvalues, ascending, ties in solver order
	order := make([]int, len(spec.Values))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch va, vb := spec.Values[a], spec.Values[b]; {
		case va < vb:
			return -1
		case va > vb:
			return 1
		default:
			return 0
		}
	})
	kept := order[len(order)-k:]

	values := resolve(spec, kept, o)
	psi := rightVectors(spec, kept, deg, o.Tolerance)

	// drop the trivial pair (last), emit the rest in descending order
	emb := &Embedding{
		Trivial:     values[k-1],
		Eigenvalues: make([]float64, k-1),
	}
	coords := make([]float64, n*(k-1))
	var c, src, i int
	var scale float64
	for c = 0; c < k-1; c++ {
		src = k - 2 - c
		emb.Eigenvalues[c] = values[src]
		scale = math.Pow(values[src], float64(o.Time))
		if o.Report {
			emb.Spectrum = append(emb.Spectrum, scale)
		}
		for i = 0; i < n; i++ {
			coords[i*(k-1)+c] = scale * psi.At(i, src)
		}
	}
	if emb.Coords, err = matrix.NewDenseFrom(n, k-1, coords); err != nil {
		return nil, diffusionErrorf(opCoordinates, err)
	}

	if o.Report {
		o.Logger.Info("diffusion spectrum",
			zap.Int("t", o.Time),
			zap.Float64("trivial", emb.Trivial),
			zap.Float64s("eigenvalues_t", emb.Spectrum),
		)
	}

	return emb, nil
}

// resolve returns the real eigenvalues of the kept pairs, warning about
// discarded imaginary parts and clamping tiny negative values to zero.
func resolve(spec *Spectrum, kept []int, o Options) []float64 {
	sink := o.sink()
	values := make([]float64, len(kept))
	var maxImag float64
	for c, idx := range kept {
		v := spec.Values[idx]
		if spec.Imag != nil {
			maxImag = math.Max(maxImag, math.Abs(spec.Imag[idx]))
		}
		if v < 0 && v > -o.Tolerance {
			sink.Emit(warn.NumericalInstability, opCoordinates, "eigenvalue %g clamped to 0", v)
			v = 0
		}
		values[c] = v
	}
	if maxImag > o.Tolerance {
		sink.Emit(warn.NumericalInstability, opCoordinates, "discarded imaginary eigenvalue parts up to %g", maxImag)
	}

	return values
}

// rightVectors maps the kept eigenvectors v of P_sym to ψ = Deg^-½·v,
// normalises every column to unit length and makes its largest-magnitude
// component positive (first one on ties). The member of a complex pair
// with negative imaginary part contributes Im v instead of Re v.
func rightVectors(spec *Spectrum, kept []int, deg []float64, tol float64) *mat.Dense {
	n := len(deg)
	psi := mat.NewDense(n, len(kept), nil)
	col := make([]float64, n)
	for c, idx := range kept {
		src := spec.Vectors
		if spec.VectorsImag != nil && spec.Imag != nil && spec.Imag[idx] < -tol {
			src = spec.VectorsImag
		}
		mat.Col(col, idx, src)
		for i := range col {
			col[i] /= math.Sqrt(deg[i])
		}
		if norm := floats.Norm(col, 2); norm > 0 {
			floats.Scale(1/norm, col)
		}
		pivot := 0
		for i := range col {
			if math.Abs(col[i]) > math.Abs(col[pivot]) {
				pivot = i
			}
		}
		if col[pivot] < 0 {
			floats.Scale(-1, col)
		}
		psi.SetCol(c, col)
	}

	return psi
}
