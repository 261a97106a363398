// SPDX-License-Identifier: MIT

package diffusion

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/flowdiff/matrix"
)

// Spectrum is the raw output of a Solver, in the solver's own order.
type Spectrum struct {
	Values      []float64  // real parts of the eigenvalues
	Imag        []float64  // imaginary parts; nil for symmetric solvers
	Vectors     *mat.Dense // real parts of the eigenvectors, one per column
	VectorsImag *mat.Dense // imaginary parts; nil for symmetric solvers
}

// Solver computes eigenpairs of a square operator: at least the k with the
// largest real part, possibly all of them.
type Solver interface {
	Solve(P matrix.Matrix, k int, tol float64) (*Spectrum, error)
}

// DefaultDenseLimit is the operator size up to which AutoSolver stays on
// the dense GonumSolver.
const DefaultDenseLimit = 1024

// AutoSolver is the default Solver. Symmetric operators larger than
// DenseLimit go to Lanczos, which keeps a sparse operator sparse and
// computes only k pairs; everything else goes to GonumSolver.
type AutoSolver struct {
	DenseLimit int // <= 0 selects DefaultDenseLimit
	Lanczos    LanczosSolver
}

// Solve implements Solver.
func (s AutoSolver) Solve(P matrix.Matrix, k int, tol float64) (*Spectrum, error) {
	if err := matrix.ValidateSquare(P); err != nil {
		return nil, err
	}
	limit := s.DenseLimit
	if limit <= 0 {
		limit = DefaultDenseLimit
	}
	if P.Rows() > limit {
		drift, err := matrix.MaxAsymmetry(P)
		if err != nil {
			return nil, err
		}
		if drift <= tol {
			return s.Lanczos.Solve(P, k, tol)
		}
	}

	return GonumSolver{}.Solve(P, k, tol)
}

// GonumSolver is the LAPACK-style solver from gonum/mat. Operators that are
// symmetric within tol go through mat.EigenSym (after the drift is averaged
// out); anything else through the general mat.Eigen.
type GonumSolver struct{}

// Solve implements Solver; every pair is computed, k is ignored.
func (GonumSolver) Solve(P matrix.Matrix, _ int, tol float64) (*Spectrum, error) {
	if err := matrix.ValidateSquare(P); err != nil {
		return nil, err
	}
	drift, err := matrix.MaxAsymmetry(P)
	if err != nil {
		return nil, err
	}
	if drift <= tol {
		return solveSymmetric(P)
	}

	return solveGeneral(P)
}

func solveSymmetric(P matrix.Matrix) (*Spectrum, error) {
	sym, err := matrix.Symmetrize(P)
	if err != nil {
		return nil, err
	}
	n := sym.Rows()

	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(n, sym.Values()), true); !ok {
		return nil, fmt.Errorf("EigenSym %dx%d: %w", n, n, ErrEigenFailed)
	}
	vecs := new(mat.Dense)
	es.VectorsTo(vecs)

	return &Spectrum{Values: es.Values(nil), Vectors: vecs}, nil
}

func solveGeneral(P matrix.Matrix) (*Spectrum, error) {
	d, err := matrix.ToDense(P)
	if err != nil {
		return nil, err
	}
	n := d.Rows()

	var eig mat.Eigen
	if ok := eig.Factorize(mat.NewDense(n, n, d.Values()), mat.EigenRight); !ok {
		return nil, fmt.Errorf("Eigen %dx%d: %w", n, n, ErrEigenFailed)
	}
	values := eig.Values(nil)
	var cv mat.CDense
	eig.VectorsTo(&cv)

	out := &Spectrum{
		Values:      make([]float64, n),
		Imag:        make([]float64, n),
		Vectors:     mat.NewDense(n, n, nil),
		VectorsImag: mat.NewDense(n, n, nil),
	}
	var i, j int
	var c complex128
	for j = 0; j < n; j++ {
		out.Values[j], out.Imag[j] = real(values[j]), imag(values[j])
		for i = 0; i < n; i++ {
			c = cv.At(i, j)
			out.Vectors.Set(i, j, real(c))
			out.VectorsImag.Set(i, j, imag(c))
		}
	}

	return out, nil
}

// JacobiSolver runs cyclic Jacobi rotations (matrix.Eigen). Deterministic
// and dependency-free, suited to small symmetric operators; asymmetric input
// fails with matrix.ErrAsymmetry.
type JacobiSolver struct {
	MaxSweeps int // <= 0 selects matrix.DefaultJacobiSweeps
}

// Solve implements Solver; every pair is computed, k is ignored.
func (s JacobiSolver) Solve(P matrix.Matrix, _ int, tol float64) (*Spectrum, error) {
	if err := matrix.ValidateSymmetric(P, tol); err != nil {
		return nil, err
	}
	sym, err := matrix.Symmetrize(P)
	if err != nil {
		return nil, err
	}
	vals, Q, err := matrix.Eigen(sym, tol, s.MaxSweeps)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEigenFailed, err)
	}
	n := Q.Rows()

	return &Spectrum{Values: vals, Vectors: mat.NewDense(n, n, Q.Values())}, nil
}
