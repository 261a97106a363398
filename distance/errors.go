// SPDX-License-Identifier: MIT

package distance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/flowdiff/matrix"
)

var (
	// ErrUnsupportedMetric is matched by every *UnsupportedMetricError.
	ErrUnsupportedMetric = errors.New("distance: unsupported metric")

	// ErrTooFewPoints indicates a neighbour statistic on fewer than two points.
	ErrTooFewPoints = fmt.Errorf("%w: at least two points are required", matrix.ErrShape)
)

// UnsupportedMetricError reports a metric name Lookup does not know.
type UnsupportedMetricError struct {
	Name string
}

// Error implements error.
func (e *UnsupportedMetricError) Error() string {
	return fmt.Sprintf("distance: unsupported metric %q (supported: %s)", e.Name, strings.Join(Names(), ", "))
}

// Is makes errors.Is(err, ErrUnsupportedMetric) hold.
func (e *UnsupportedMetricError) Is(target error) bool {
	return target == ErrUnsupportedMetric
}

func distanceErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
