// SPDX-License-Identifier: MIT

package diffusion_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/flowdiff/diffusion"
	"github.com/katalvlaran/flowdiff/matrix"
)

func ExampleMapFromPoints() {
	rows := make([][]float64, 100)
	for i := range rows {
		th := 2 * math.Pi * float64(i) / 100
		rows[i] = []float64{math.Cos(th), math.Sin(th)}
	}
	X, _ := matrix.NewDenseFromRows(rows)

	emb, err := diffusion.MapFromPoints(X, diffusion.WithEigenpairs(3))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(emb.Coords.Rows(), emb.Coords.Cols(), math.Round(emb.Trivial*1e6)/1e6)
	// Output:
	// 100 2 1
}

func ExampleRowStochastic() {
	A, _ := matrix.NewDenseFromRows([][]float64{{2, 2}, {1, 3}})
	op, _ := diffusion.RowStochastic(A)
	p10, _ := op.P.At(1, 0)
	fmt.Println(op.Degree, p10)
	// Output:
	// [4 4] 0.25
}
