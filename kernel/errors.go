// SPDX-License-Identifier: MIT

package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveBandwidth indicates σ ≤ 0, a non-finite σ, or a zero
	// adaptive radius (duplicated points closer than the k-th neighbour).
	ErrNonPositiveBandwidth = errors.New("kernel: bandwidth must be positive and finite")

	// ErrInvalidAlpha indicates a density-normalisation degree outside [0,1].
	ErrInvalidAlpha = errors.New("kernel: alpha must lie in [0,1]")

	// ErrUnsupportedKernelType is matched by every *UnsupportedKernelTypeError.
	ErrUnsupportedKernelType = errors.New("kernel: unsupported kernel type")
)

// UnsupportedKernelTypeError reports an unknown kernel type name or value.
type UnsupportedKernelTypeError struct {
	Name string
}

// Error implements error.
func (e *UnsupportedKernelTypeError) Error() string {
	return fmt.Sprintf("kernel: unsupported kernel type %q", e.Name)
}

// Is makes errors.Is(err, ErrUnsupportedKernelType) hold.
func (e *UnsupportedKernelTypeError) Is(target error) bool {
	return target == ErrUnsupportedKernelType
}

func kernelErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
