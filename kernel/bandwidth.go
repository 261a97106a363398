// SPDX-License-Identifier: MIT

package kernel

import (
	"math"

	"github.com/katalvlaran/flowdiff/distance"
	"github.com/katalvlaran/flowdiff/matrix"
)

// BandwidthPolicy chooses the global kernel bandwidth σ for a distance matrix.
type BandwidthPolicy interface {
	Bandwidth(D matrix.Matrix) (float64, error)
}

// FixedBandwidth is a user-supplied σ.
type FixedBandwidth float64

// Bandwidth returns σ itself, or ErrNonPositiveBandwidth.
func (f FixedBandwidth) Bandwidth(matrix.Matrix) (float64, error) {
	return checkBandwidth(float64(f))
}

// MedianKthNeighbor picks σ as the median distance to the K-th nearest
// neighbour. K is clamped to [1, n−1].
type MedianKthNeighbor struct {
	K int
}

// Bandwidth computes the median k-th-neighbour distance of D.
func (m MedianKthNeighbor) Bandwidth(D matrix.Matrix) (float64, error) {
	sigma, err := distance.MedianKthNeighbor(D, m.K)
	if err != nil {
		return 0, err
	}

	return checkBandwidth(sigma)
}

func checkBandwidth(sigma float64) (float64, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return 0, ErrNonPositiveBandwidth
	}

	return sigma, nil
}
