// SPDX-License-Identifier: MIT

package sparsify

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/warn"
)

// DefaultThreshold is the relative cut-off used without WithThreshold.
const DefaultThreshold = 1e-5

const opZeroNegligible = "ZeroNegligible"

// ErrInvalidThreshold indicates a negative or non-finite threshold.
var ErrInvalidThreshold = errors.New("sparsify: threshold must be finite and non-negative")

// Options configures ZeroNegligible.
type Options struct {
	Threshold float64
	Logger    *zap.Logger
	OnWarning func(warn.Warning)
}

// Option mutates Options.
type Option func(*Options)

// WithThreshold sets the relative cut-off t; entries below t·max(A) are zeroed.
func WithThreshold(t float64) Option {
	return func(o *Options) { o.Threshold = t }
}

// WithLogger routes warnings to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnWarning registers a hook receiving every warning.
func WithOnWarning(fn func(warn.Warning)) Option {
	return func(o *Options) { o.OnWarning = fn }
}

// ZeroNegligible returns A with every entry < threshold·max(A) removed.
// Implementation:
//   - Stage 1: validate A (non-nil, finite, non-negative) and the threshold.
//   - Stage 2: cut = t·max(A); mask = 1[A ≥ cut, A ≠ 0].
//   - Stage 3: A ⊙ mask in canonical CSR.
//
// Behavior highlights:
//   - Never increases the number of non-zeros.
//   - Idempotent: max(A) survives the first pass, so a second pass uses the
//     same cut and removes nothing.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNaNInf, matrix.ErrShape family
//     (negative entries), ErrInvalidThreshold.
//
// Complexity:
//   - Time O(stored entries), Space O(nnz(A)).
func ZeroNegligible(A matrix.Matrix, opts ...Option) (*matrix.Sparse, error) {
	o := Options{Threshold: DefaultThreshold}
	for _, fn := range opts {
		fn(&o)
	}
	sink := warn.Sink{Logger: o.Logger, OnWarning: o.OnWarning}

	if math.IsNaN(o.Threshold) || math.IsInf(o.Threshold, 0) || o.Threshold < 0 {
		return nil, fmt.Errorf("%s: threshold=%g: %w", opZeroNegligible, o.Threshold, ErrInvalidThreshold)
	}
	A, converted, err := matrix.Canonicalize(A)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opZeroNegligible, err)
	}
	if converted {
		sink.Emit(warn.SparseConversion, opZeroNegligible, "converted %dx%d input to canonical sparse form", A.Rows(), A.Cols())
	}
	if err = matrix.ValidateNonNegative(A); err != nil {
		return nil, fmt.Errorf("%s: %w", opZeroNegligible, err)
	}

	mx, err := matrix.Max(A)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opZeroNegligible, err)
	}
	mask, err := matrix.ThresholdMask(A, o.Threshold*mx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opZeroNegligible, err)
	}
	kept, err := matrix.MaskMul(A, mask)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opZeroNegligible, err)
	}
	out, err := matrix.ToSparse(kept)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opZeroNegligible, err)
	}

	if out.NNZ() == A.NNZ() {
		sink.Emit(warn.SparsificationNoOp, opZeroNegligible,
			"threshold %g (cut %g) removed none of %d non-zeros", o.Threshold, o.Threshold*mx, out.NNZ())
	}

	return out, nil
}
