// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/flowdiff/matrix"
)

// ExampleScaleRowsCols shows the D·A·D sandwich used by density renormalization.
func ExampleScaleRowsCols() {
	a, _ := matrix.NewDenseFromRows([][]float64{{1, 2}, {2, 4}})
	sums, _ := matrix.RowSums(a)
	inv := []float64{1 / sums[0], 1 / sums[1]}

	w, _ := matrix.ScaleRowsCols(a, inv, inv)
	v, _ := w.At(0, 1)
	fmt.Printf("%.4f\n", v)
	// Output:
	// 0.1111
}

// ExampleThresholdMask zeroes entries below 10% of the maximum.
func ExampleThresholdMask() {
	a, _ := matrix.NewDenseFromRows([][]float64{{1, 0.05}, {0.05, 1}})
	mx, _ := matrix.Max(a)
	mask, _ := matrix.ThresholdMask(a, 0.1*mx)
	kept, _ := matrix.MaskMul(a, mask)
	fmt.Println(kept.NNZ())
	// Output:
	// 2
}
