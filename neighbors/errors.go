// SPDX-License-Identifier: MIT

package neighbors

import (
	"errors"
	"fmt"
)

// ErrInvalidK indicates a neighbour count below 1.
var ErrInvalidK = errors.New("neighbors: k must be >= 1")

func neighborsErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
