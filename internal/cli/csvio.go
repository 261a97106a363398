// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/neighbors"
)

// ErrEmptyInput reports a CSV file without data rows.
var ErrEmptyInput = errors.New("cli: no data rows")

// readMatrixFile reads a point or flow matrix from path.
func readMatrixFile(path string) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := readMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// readMatrix parses one row per record; lines starting with '#' are skipped
// and every record must have the same number of fields.
func readMatrix(r io.Reader) (*matrix.Dense, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(rec))
		for j, field := range rec {
			if row[j], err = strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
				line, _ := cr.FieldPos(j)
				return nil, fmt.Errorf("line %d, column %d: %w", line, j+1, err)
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	return matrix.NewDenseFromRows(rows)
}

// writeMatrix writes m densely, one row per record, in shortest
// round-trip float formatting.
func writeMatrix(w io.Writer, m matrix.Matrix) error {
	cw := csv.NewWriter(w)
	var (
		row []float64
		err error
	)
	rec := make([]string, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		if row, err = m.RowTo(row, i); err != nil {
			return err
		}
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err = cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// writeEdges writes a "from,to" header followed by one edge per record.
func writeEdges(w io.Writer, edges neighbors.EdgeList) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"from", "to"}); err != nil {
		return err
	}
	for _, e := range edges {
		if err := cw.Write([]string{strconv.Itoa(e.From), strconv.Itoa(e.To)}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
