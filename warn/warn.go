// SPDX-License-Identifier: MIT

package warn

import (
	"fmt"

	"go.uber.org/zap"
)

// Kind classifies a Warning.
type Kind uint8

const (
	// NumericalInstability reports resolved eigen-solver artefacts.
	NumericalInstability Kind = iota + 1
	// SparsificationNoOp reports a sparsification that removed no entry.
	SparsificationNoOp
	// SparseConversion reports an implicit representation conversion.
	SparseConversion
)

// String returns the stable name used in log fields.
func (k Kind) String() string {
	switch k {
	case NumericalInstability:
		return "numerical_instability"
	case SparsificationNoOp:
		return "sparsification_noop"
	case SparseConversion:
		return "sparse_conversion"
	default:
		return fmt.Sprintf("warn.Kind(%d)", uint8(k))
	}
}

// Warning is one diagnostic: what happened (Kind), where (Op) and a
// human-readable Detail.
type Warning struct {
	Kind   Kind
	Op     string
	Detail string
}

// String renders "op: kind: detail".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Op, w.Kind, w.Detail)
}

// Sink delivers warnings. Logger and OnWarning may each be nil.
type Sink struct {
	Logger    *zap.Logger
	OnWarning func(Warning)
}

// Emit builds a Warning and delivers it to the hook and the logger, in that order.
func (s Sink) Emit(kind Kind, op, format string, args ...any) {
	w := Warning{Kind: kind, Op: op, Detail: fmt.Sprintf(format, args...)}
	if s.OnWarning != nil {
		s.OnWarning(w)
	}
	if s.Logger != nil {
		s.Logger.Warn(w.Detail,
			zap.String("kind", w.Kind.String()),
			zap.String("op", w.Op),
		)
	}
}

// Collect returns a hook that appends every warning to *dst.
// The returned hook is not safe for concurrent use.
func Collect(dst *[]Warning) func(Warning) {
	return func(w Warning) { *dst = append(*dst, w) }
}
