// SPDX-License-Identifier: MIT

package diffusion

import (
	"errors"
	"fmt"
)

var (
	// ErrSingularDegree is matched by every *SingularDegreeError.
	ErrSingularDegree = errors.New("diffusion: zero degree row")

	// ErrInvalidEigenpairs indicates fewer than two requested eigenpairs or
	// fewer than two points: the trivial pair alone leaves nothing to embed.
	ErrInvalidEigenpairs = errors.New("diffusion: need at least 2 eigenpairs")

	// ErrInvalidTime indicates a negative diffusion time.
	ErrInvalidTime = errors.New("diffusion: time must be non-negative")

	// ErrEigenFailed indicates the eigensolver did not converge.
	ErrEigenFailed = errors.New("diffusion: eigendecomposition failed")
)

// SingularDegreeError reports the first row whose degree is not positive.
type SingularDegreeError struct {
	Row    int
	Degree float64
}

// Error implements error.
func (e *SingularDegreeError) Error() string {
	return fmt.Sprintf("diffusion: row %d has degree %g", e.Row, e.Degree)
}

// Is makes errors.Is(err, ErrSingularDegree) hold.
func (e *SingularDegreeError) Is(target error) bool {
	return target == ErrSingularDegree
}

func diffusionErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
