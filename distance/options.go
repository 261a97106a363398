// SPDX-License-Identifier: MIT

package distance

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/flowdiff/warn"
)

// DefaultMetric is the metric used when WithMetric is not given.
const DefaultMetric = Euclidean

const panicEmptyMetric = "distance: WithMetric: metric name must be non-empty"

// Options configures Pairwise.
type Options struct {
	Metric    string             // registry name; DefaultMetric
	Logger    *zap.Logger        // warning log; nil discards
	OnWarning func(warn.Warning) // optional hook, called before logging
}

// Option mutates Options.
type Option func(*Options)

// WithMetric selects the metric by name. Unknown names surface from Pairwise
// as *UnsupportedMetricError; an empty name panics.
func WithMetric(name string) Option {
	if name == "" {
		panic(panicEmptyMetric)
	}

	return func(o *Options) { o.Metric = name }
}

// WithLogger routes warnings to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnWarning registers a hook receiving every warning.
func WithOnWarning(fn func(warn.Warning)) Option {
	return func(o *Options) { o.OnWarning = fn }
}

func gatherOptions(opts []Option) Options {
	o := Options{Metric: DefaultMetric}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

func (o Options) sink() warn.Sink {
	return warn.Sink{Logger: o.Logger, OnWarning: o.OnWarning}
}
