// SPDX-License-Identifier: MIT

package diffusion

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/flowdiff/distance"
	"github.com/katalvlaran/flowdiff/kernel"
	"github.com/katalvlaran/flowdiff/sparsify"
	"github.com/katalvlaran/flowdiff/warn"
)

// Embedding defaults.
const (
	// DefaultTime is the number of diffusion steps t in λ^t.
	DefaultTime = 1

	// DefaultEigenpairs is how many leading eigenpairs are computed,
	// trivial pair included.
	DefaultEigenpairs = 6

	// DefaultTolerance bounds symmetry drift, imaginary residue and
	// near-zero negative eigenvalues.
	DefaultTolerance = 1e-8
)

// Pipeline defaults.
const (
	// DefaultAlpha is the density-normalisation degree of MapFromPoints.
	DefaultAlpha = 0.5

	// DefaultMatrixAlpha is the density-normalisation degree of MatrixFromPoints.
	DefaultMatrixAlpha = 1.0

	// DefaultNeighbors is k of the automatic σ and of the adaptive radii.
	DefaultNeighbors = 10

	// DefaultThreshold is the relative sparsification cut-off.
	DefaultThreshold = sparsify.DefaultThreshold
)

// Options configures the operators, Coordinates and the pipelines.
// Pipeline-only fields are ignored by Coordinates and the operator builders.
type Options struct {
	// embedding
	Time       int
	Eigenpairs int
	Report     bool
	Solver     Solver
	Tolerance  float64

	// pipelines
	KernelType kernel.Type
	Alpha      float64
	alphaSet   bool
	Sigma      float64 // 0 selects the automatic median k-th-neighbour σ
	Neighbors  int
	Threshold  float64
	Metric     string

	// diagnostics
	Logger    *zap.Logger
	OnWarning func(warn.Warning)
}

// Option mutates Options.
type Option func(*Options)

// WithTime sets the number of diffusion steps t.
func WithTime(t int) Option {
	return func(o *Options) { o.Time = t }
}

// WithEigenpairs sets how many leading eigenpairs are computed (trivial pair
// included); the embedding has k−1 columns. k is clamped to n.
func WithEigenpairs(k int) Option {
	return func(o *Options) { o.Eigenpairs = k }
}

// WithSpectrumReport logs the retained λ^t at Info level and stores them in
// Embedding.Spectrum.
func WithSpectrumReport() Option {
	return func(o *Options) { o.Report = true }
}

// WithSolver replaces the eigensolver; nil restores AutoSolver.
func WithSolver(s Solver) Option {
	return func(o *Options) {
		if s == nil {
			s = AutoSolver{}
		}
		o.Solver = s
	}
}

// WithTolerance sets the numerical tolerance. Panics on a negative value.
func WithTolerance(tol float64) Option {
	if tol < 0 {
		panic("diffusion: WithTolerance: tol must be non-negative")
	}

	return func(o *Options) { o.Tolerance = tol }
}

// WithKernelType selects the kernel of the point pipelines.
func WithKernelType(t kernel.Type) Option {
	return func(o *Options) { o.KernelType = t }
}

// WithAlpha sets the density-normalisation degree of the point pipelines.
func WithAlpha(alpha float64) Option {
	return func(o *Options) { o.Alpha, o.alphaSet = alpha, true }
}

// WithSigma fixes the kernel bandwidth; 0 selects the automatic heuristic.
func WithSigma(sigma float64) Option {
	return func(o *Options) { o.Sigma = sigma }
}

// WithNeighbors sets k of the automatic σ and of the adaptive radii.
func WithNeighbors(k int) Option {
	return func(o *Options) { o.Neighbors = k }
}

// WithThreshold sets the relative sparsification cut-off.
func WithThreshold(t float64) Option {
	return func(o *Options) { o.Threshold = t }
}

// WithMetric selects the distance metric of the point pipelines.
func WithMetric(name string) Option {
	return func(o *Options) { o.Metric = name }
}

// WithLogger routes warnings, the spectrum report and stage diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnWarning registers a hook receiving every warning of every stage.
func WithOnWarning(fn func(warn.Warning)) Option {
	return func(o *Options) { o.OnWarning = fn }
}

func gatherOptions(opts []Option) Options {
	o := Options{
		Time:       DefaultTime,
		Eigenpairs: DefaultEigenpairs,
		Solver:     AutoSolver{},
		Tolerance:  DefaultTolerance,
		KernelType: kernel.DefaultType,
		Alpha:      DefaultAlpha,
		Neighbors:  DefaultNeighbors,
		Threshold:  DefaultThreshold,
		Metric:     distance.DefaultMetric,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}

func (o Options) sink() warn.Sink {
	return warn.Sink{Logger: o.Logger, OnWarning: o.OnWarning}
}
