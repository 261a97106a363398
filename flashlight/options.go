// SPDX-License-Identifier: MIT

package flashlight

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/flowdiff/kernel"
	"github.com/katalvlaran/flowdiff/warn"
)

// Defaults.
const (
	// DefaultNeighbors is k of the automatic bandwidth.
	DefaultNeighbors = 10

	// DefaultFlowStrength weighs flow misalignment equally with distance.
	DefaultFlowStrength = 1.0
)

// ErrInvalidFlowStrength indicates a negative or non-finite flow strength.
var ErrInvalidFlowStrength = errors.New("flashlight: flow strength must be finite and non-negative")

// Options configures Affinity and CrossAffinity.
type Options struct {
	Bandwidth    kernel.BandwidthPolicy
	FlowStrength float64
	Logger       *zap.Logger
	OnWarning    func(warn.Warning)
}

// Option mutates Options.
type Option func(*Options)

// WithSigma fixes the bandwidth.
func WithSigma(sigma float64) Option {
	return func(o *Options) { o.Bandwidth = kernel.FixedBandwidth(sigma) }
}

// WithNeighbors selects the automatic bandwidth with the k-th neighbour.
func WithNeighbors(k int) Option {
	return func(o *Options) { o.Bandwidth = kernel.MedianKthNeighbor{K: k} }
}

// WithBandwidth installs any bandwidth policy; nil restores the default.
func WithBandwidth(p kernel.BandwidthPolicy) Option {
	return func(o *Options) {
		if p == nil {
			p = kernel.MedianKthNeighbor{K: DefaultNeighbors}
		}
		o.Bandwidth = p
	}
}

// WithFlowStrength sets s, the weight of flow misalignment.
func WithFlowStrength(s float64) Option {
	return func(o *Options) { o.FlowStrength = s }
}

// WithLogger attaches a logger for bandwidth diagnostics and warnings.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnWarning registers a hook receiving every warning.
func WithOnWarning(fn func(warn.Warning)) Option {
	return func(o *Options) { o.OnWarning = fn }
}

func gatherOptions(opts []Option) Options {
	o := Options{
		Bandwidth:    kernel.MedianKthNeighbor{K: DefaultNeighbors},
		FlowStrength: DefaultFlowStrength,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}
