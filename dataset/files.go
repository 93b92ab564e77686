// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"gonum.org/v1/gonum/mat"
)

// ReadLabels reads a space delimited session target file: a header line
// naming at least the "labels" and "chunks" columns, then one line per
// sample.  Chunks must be integer run ids.
func ReadLabels(r io.Reader) (labels []string, runs []int, err error) {
	dt := &etable.Table{}
	if err := dt.ReadCSV(r, etable.Space); err != nil {
		return nil, nil, fmt.Errorf("dataset: labels: %w", err)
	}
	lc, cc := dt.ColByName("labels"), dt.ColByName("chunks")
	if lc == nil || cc == nil {
		return nil, nil, fmt.Errorf("dataset: labels header %v needs labels and chunks columns", dt.ColNames)
	}
	if cc.DataType() == etensor.STRING {
		return nil, nil, fmt.Errorf("dataset: labels: chunks column is not numeric")
	}
	labels = make([]string, dt.Rows)
	runs = make([]int, dt.Rows)
	for ri := 0; ri < dt.Rows; ri++ {
		run := cc.FloatVal1D(ri)
		if run != math.Trunc(run) {
			return nil, nil, fmt.Errorf("dataset: labels row %d: chunk %g is not an integer", ri, run)
		}
		labels[ri] = lc.StringVal1D(ri)
		runs[ri] = int(run)
	}
	return labels, runs, nil
}

// WriteLabels writes labels and runs in the format read by ReadLabels.
func WriteLabels(w io.Writer, labels []string, runs []int) error {
	if len(labels) != len(runs) {
		return fmt.Errorf("dataset: %d labels for %d runs", len(labels), len(runs))
	}
	dt := &etable.Table{}
	sch := etable.Schema{
		{"labels", etensor.STRING, nil, nil},
		{"chunks", etensor.INT64, nil, nil},
	}
	dt.SetFromSchema(sch, len(labels))
	for ri, lb := range labels {
		dt.SetCellString("labels", ri, lb)
		dt.SetCellFloat("chunks", ri, float64(runs[ri]))
	}
	return dt.WriteCSV(w, etable.Space, true)
}

// ReadMatrix reads a tab separated samples x channels matrix with one
// header line naming the channels.  Column types of plain headers are
// inferred from the first sample, so integral values there read as
// integer columns; every column must be numeric.
func ReadMatrix(r io.Reader) (*mat.Dense, error) {
	dt := &etable.Table{}
	if err := dt.ReadCSV(r, etable.Tab); err != nil {
		return nil, fmt.Errorf("dataset: matrix: %w", err)
	}
	nc := len(dt.Cols)
	if nc == 0 || dt.Rows == 0 {
		return nil, fmt.Errorf("dataset: empty matrix")
	}
	for ci, cl := range dt.Cols {
		if cl.DataType() == etensor.STRING {
			return nil, fmt.Errorf("dataset: matrix column %q is not numeric", dt.ColNames[ci])
		}
	}
	m := mat.NewDense(dt.Rows, nc, nil)
	for ci, cl := range dt.Cols {
		for ri := 0; ri < dt.Rows; ri++ {
			m.Set(ri, ci, cl.FloatVal1D(ri))
		}
	}
	return m, nil
}

// WriteMatrix writes m in the format read by ReadMatrix, with float64
// columns named v0, v1, ...
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	nr, nc := m.Dims()
	sch := make(etable.Schema, nc)
	for ci := range sch {
		sch[ci] = etable.Column{Name: "v" + strconv.Itoa(ci), Type: etensor.FLOAT64}
	}
	dt := &etable.Table{}
	dt.SetFromSchema(sch, nr)
	for ci, cl := range dt.Cols {
		for ri := 0; ri < nr; ri++ {
			cl.SetFloat1D(ri, m.At(ri, ci))
		}
	}
	return dt.WriteCSV(w, etable.Tab, true)
}
