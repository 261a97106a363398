// SPDX-License-Identifier: MIT

package neighbors_test

import (
	"fmt"

	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/neighbors"
)

func ExampleFlowNeighbors() {
	P, _ := matrix.NewDenseFromRows([][]float64{
		{0.5, 0.4, 0.1},
		{0.1, 0.5, 0.4},
		{0.4, 0.1, 0.5},
	})
	edges, _ := neighbors.FlowNeighbors(P, 1)
	fmt.Println(edges.Pairs())
	// Output:
	// [[0 1 2] [1 2 0]]
}
