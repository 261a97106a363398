// SPDX-License-Identifier: MIT

package diffusion

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/flowdiff/distance"
	"github.com/katalvlaran/flowdiff/kernel"
	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/sparsify"
)

const (
	opMapFromPoints     = "MapFromPoints"
	opMapFromAffinities = "MapFromAffinities"
	opMatrixFromPoints  = "MatrixFromPoints"
)

// MapFromPoints computes the diffusion map of a point set.
// MAIN DESCRIPTION:
//   - distance.Pairwise → kernel.Build → sparsify.ZeroNegligible →
//     Symmetric → Coordinates, every stage configured from opts.
//
// Defaults:
//   - euclidean metric, anisotropic kernel, α = DefaultAlpha, automatic σ
//     (median DefaultNeighbors-th neighbour distance), threshold 1e-5, t = 1,
//     six eigenpairs.
//
// Behavior highlights:
//   - The result equals MapFromAffinities(ZeroNegligible(Build(Pairwise(X)))) with
//     the same options.
//
// Errors: any error of the stages above, wrapped with "MapFromPoints".
func MapFromPoints(points matrix.Matrix, opts ...Option) (*Embedding, error) {
	o := gatherOptions(opts)
	S, err := affinityFromPoints(points, o, o.KernelType)
	if err != nil {
		return nil, diffusionErrorf(opMapFromPoints, err)
	}
	emb, err := MapFromAffinities(S, opts...)
	if err != nil {
		return nil, diffusionErrorf(opMapFromPoints, err)
	}

	return emb, nil
}

// MapFromAffinities computes the diffusion map of an affinity matrix:
// Symmetric(A) followed by Coordinates.
//
// Errors: as Symmetric and Coordinates.
func MapFromAffinities(A matrix.Matrix, opts ...Option) (*Embedding, error) {
	op, err := Symmetric(A, opts...)
	if err != nil {
		return nil, diffusionErrorf(opMapFromAffinities, err)
	}
	emb, err := Coordinates(op.P, op.Degree, opts...)
	if err != nil {
		return nil, diffusionErrorf(opMapFromAffinities, err)
	}

	return emb, nil
}

// MatrixFromPoints returns the sparse row-stochastic diffusion operator of a
// point set. The kernel is anisotropic when WithSigma sets a bandwidth and
// adaptive (k = WithNeighbors) otherwise; α defaults to DefaultMatrixAlpha.
//
// Errors: any error of distance, kernel, sparsify or RowStochastic.
func MatrixFromPoints(points matrix.Matrix, opts ...Option) (*Operator, error) {
	o := gatherOptions(opts)
	if !o.alphaSet {
		o.Alpha = DefaultMatrixAlpha
	}
	typ := kernel.TypeAdaptive
	if o.Sigma != 0 {
		typ = kernel.TypeAnisotropic
	}
	S, err := affinityFromPoints(points, o, typ)
	if err != nil {
		return nil, diffusionErrorf(opMatrixFromPoints, err)
	}
	op, err := RowStochastic(S, opts...)
	if err != nil {
		return nil, diffusionErrorf(opMatrixFromPoints, err)
	}

	return op, nil
}

// affinityFromPoints runs distance → kernel → sparsify.
func affinityFromPoints(points matrix.Matrix, o Options, typ kernel.Type) (*matrix.Sparse, error) {
	D, err := distance.Pairwise(points,
		distance.WithMetric(o.Metric),
		distance.WithLogger(o.Logger),
		distance.WithOnWarning(o.OnWarning),
	)
	if err != nil {
		return nil, err
	}

	kopts := []kernel.Option{
		kernel.WithType(typ),
		kernel.WithAlpha(o.Alpha),
		kernel.WithNeighbors(o.Neighbors),
		kernel.WithLogger(o.Logger),
		kernel.WithBandwidth(kernel.MedianKthNeighbor{K: o.Neighbors}),
	}
	if o.Sigma != 0 {
		kopts = append(kopts, kernel.WithSigma(o.Sigma))
	}
	W, err := kernel.Build(D, kopts...)
	if err != nil {
		return nil, err
	}

	S, err := sparsify.ZeroNegligible(W,
		sparsify.WithThreshold(o.Threshold),
		sparsify.WithLogger(o.Logger),
		sparsify.WithOnWarning(o.OnWarning),
	)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("affinity ready",
		zap.Stringer("kernel", typ),
		zap.Int("n", S.Rows()),
		zap.Int("nnz", S.NNZ()),
	)

	return S, nil
}
