// SPDX-License-Identifier: MIT

package kernel

import "go.uber.org/zap"

// Defaults.
const (
	// DefaultType is the fixed-bandwidth kernel.
	DefaultType = TypeAnisotropic

	// DefaultAlpha fully removes the sampling density.
	DefaultAlpha = 1.0

	// DefaultNeighbors is k for the adaptive radii and for the automatic σ.
	DefaultNeighbors = 10
)

// Options configures Build.
type Options struct {
	Type      Type
	Alpha     float64         // density-normalisation degree in [0,1]
	Bandwidth BandwidthPolicy // σ for TypeAnisotropic
	Neighbors int             // k for TypeAdaptive
	Logger    *zap.Logger     // Debug-level report of the chosen bandwidth
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the configuration Build uses without options:
// anisotropic kernel, α = 1, σ = median 10-th-neighbour distance.
func DefaultOptions() Options {
	return Options{
		Type:      DefaultType,
		Alpha:     DefaultAlpha,
		Bandwidth: MedianKthNeighbor{K: DefaultNeighbors},
		Neighbors: DefaultNeighbors,
	}
}

// WithType selects the kernel family.
func WithType(t Type) Option {
	return func(o *Options) { o.Type = t }
}

// WithAlpha sets the density-normalisation degree. Values outside [0,1]
// are reported by Build as ErrInvalidAlpha.
func WithAlpha(alpha float64) Option {
	return func(o *Options) { o.Alpha = alpha }
}

// WithBandwidth sets the σ policy of the anisotropic kernel.
// A nil policy restores the default.
func WithBandwidth(p BandwidthPolicy) Option {
	return func(o *Options) {
		if p == nil {
			p = MedianKthNeighbor{K: DefaultNeighbors}
		}
		o.Bandwidth = p
	}
}

// WithSigma is shorthand for WithBandwidth(FixedBandwidth(sigma)).
func WithSigma(sigma float64) Option {
	return WithBandwidth(FixedBandwidth(sigma))
}

// WithNeighbors sets k for the adaptive kernel radii. k is clamped to [1, n−1].
func WithNeighbors(k int) Option {
	return func(o *Options) { o.Neighbors = k }
}

// WithLogger attaches a logger for bandwidth diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}
