// SPDX-License-Identifier: MIT

package kernel_test

import (
	"fmt"

	"github.com/katalvlaran/flowdiff/distance"
	"github.com/katalvlaran/flowdiff/kernel"
	"github.com/katalvlaran/flowdiff/matrix"
)

func ExampleBuild() {
	X, _ := matrix.NewDenseFromRows([][]float64{{0}, {1}, {2}})
	D, _ := distance.Pairwise(X)

	W, _ := kernel.Build(D,
		kernel.WithType(kernel.TypeAnisotropic),
		kernel.WithSigma(1),
		kernel.WithAlpha(0),
	)
	w01, _ := W.At(0, 1)
	w02, _ := W.At(0, 2)
	fmt.Printf("%.4f %.4f\n", w01, w02)
	// Output:
	// 0.6065 0.1353
}
