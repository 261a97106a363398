// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/neighbors"
)

func TestReadMatrix(t *testing.T) {
	t.Parallel()

	m, err := readMatrix(strings.NewReader("# x,y\n1, 2\n3,4.5\n\n# trailing\n-1e-3,0\n"))
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 2, m.Cols())
	v, err := m.At(2, 0)
	require.NoError(t, err)
	require.Equal(t, -1e-3, v)
}

func TestReadMatrix_Errors(t *testing.T) {
	t.Parallel()

	_, err := readMatrix(strings.NewReader("# only a comment\n"))
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = readMatrix(strings.NewReader("1,2\n3\n"))
	require.Error(t, err)

	_, err = readMatrix(strings.NewReader("1,x\n"))
	require.ErrorIs(t, err, strconv.ErrSyntax)
	require.Contains(t, err.Error(), "column 2")
}

func TestWriteMatrix_RoundTrip(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFromRows([][]float64{{0.1, 2}, {1e-20, -3}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeMatrix(&buf, m))
	require.Equal(t, "0.1,2\n1e-20,-3\n", buf.String())

	back, err := readMatrix(&buf)
	require.NoError(t, err)
	ok, err := matrix.AllClose(m, back, 0, 0)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestWriteEdges(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, writeEdges(&buf, neighbors.EdgeList{{From: 0, To: 1}, {From: 1, To: 0}}))
	require.Equal(t, "from,to\n0,1\n1,0\n", buf.String())
}
