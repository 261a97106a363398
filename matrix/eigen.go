// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

const opEigen = "Eigen"

// DefaultJacobiSweeps caps the number of cyclic Jacobi sweeps in Eigen.
// Cyclic Jacobi converges quadratically; 50 sweeps is far beyond what
// well-conditioned diffusion operators need.
const DefaultJacobiSweeps = 50

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via cyclic Jacobi sweeps.
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Work on a dense copy A and an identity accumulator Q.
//   - Stage 3: Each sweep rotates every (p,q), p<q, in fixed order, annihilating A[p,q].
//   - Stage 4: Stop when the off-diagonal Frobenius norm drops below tol.
//
// Behavior highlights:
//   - Deterministic sweep order; identical inputs give bit-identical outputs.
//   - Eigenvalues are returned in diagonal order (unsorted); callers own ordering.
//
// Inputs:
//   - m: symmetric Matrix (within tol), Dense or Sparse.
//   - tol: convergence threshold (typ. 1e-10..1e-12 for float64).
//   - maxSweeps: safety cap on sweeps (<=0 selects DefaultJacobiSweeps).
//
// Returns:
//   - []float64: eigenvalues.
//   - *Dense: Q whose columns are the matching unit eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry, ErrMatrixEigenFailed.
//
// Complexity:
//   - Time O(sweeps * n^3), Space O(n^2).
//
// AI-Hints:
//   - Fine for operators up to a few hundred rows; larger problems should use
//     a LAPACK-backed solver.
func Eigen(m Matrix, tol float64, maxSweeps int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if maxSweeps <= 0 {
		maxSweeps = DefaultJacobiSweeps
	}
	A, err := ToDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := A.r
	Q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for i := 0; i < n; i++ {
		Q.data[i*n+i] = 1.0
	}

	var (
		sweep, p, q, i   int
		app, aqq, apq    float64 // pivot block entries
		aip, aiq         float64 // A[i,p], A[i,q]
		qip, qiq         float64 // Q[i,p], Q[i,q]
		theta, t, c, s   float64 // rotation parameters
		converged        bool
		a                = A.data
		offDiagonalNorm2 = func() float64 {
			var sum float64
			for r := 0; r < n; r++ {
				for k := r + 1; k < n; k++ {
					sum += a[r*n+k] * a[r*n+k]
				}
			}
			return 2 * sum
		}
	)
	for sweep = 0; sweep < maxSweeps; sweep++ {
		if math.Sqrt(offDiagonalNorm2()) < tol {
			converged = true
			break
		}
		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				apq = a[p*n+q]
				if apq == 0 {
					continue
				}
				app, aqq = a[p*n+p], a[q*n+q]
				// θ = (aqq−app)/(2·apq), t = sign(θ)/(|θ|+√(θ²+1))
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for i = 0; i < n; i++ {
					if i == p || i == q {
						continue
					}
					aip, aiq = a[i*n+p], a[i*n+q]
					a[i*n+p] = c*aip - s*aiq
					a[p*n+i] = a[i*n+p]
					a[i*n+q] = s*aip + c*aiq
					a[q*n+i] = a[i*n+q]
				}
				a[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				a[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
				a[p*n+q], a[q*n+p] = 0, 0

				for i = 0; i < n; i++ {
					qip, qiq = Q.data[i*n+p], Q.data[i*n+q]
					Q.data[i*n+p] = c*qip - s*qiq
					Q.data[i*n+q] = s*qip + c*qiq
				}
			}
		}
	}
	if !converged && math.Sqrt(offDiagonalNorm2()) >= tol {
		return nil, nil, matrixErrorf(opEigen, fmt.Errorf("after %d sweeps: %w", maxSweeps, ErrMatrixEigenFailed))
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a[i*n+i]
	}

	return eigs, Q, nil
}
