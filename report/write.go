// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/splithalf/pipeline"
)

var nan = math.NaN()

// WriteTSV writes dt as tab-separated values with a header row.
func WriteTSV(w io.Writer, dt *etable.Table) error {
	return dt.WriteCSV(w, etable.Tab, true)
}

// SaveTSV writes dt to the named file.
func SaveTSV(fname string, dt *etable.Table) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := WriteTSV(f, dt); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type fileTable struct {
	file string
	dt   *etable.Table
}

// SaveAll writes every table of a run into dir, returning the file names:
// accuracy, exclusion records, their per-category means, the grand
// average matrix and one correlation matrix per subject.
func SaveAll(dir string, sm *pipeline.Summary) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	results := sm.Results()
	excl := ExclusionTable(results)
	tabs := []fileTable{
		{"accuracy.tsv", AccuracyTable(results)},
		{"exclusion.tsv", excl},
	}
	if excl.Rows > 0 {
		tabs = append(tabs, fileTable{"exclusion_summary.tsv", ExclusionSummary(excl)})
	}
	if sm.GrandAverage != nil {
		tabs = append(tabs, fileTable{"grand_average.tsv", MatrixTable("GrandAverage", sm.GrandAverage, sm.Categories)})
	}
	for _, rs := range results {
		tabs = append(tabs, fileTable{"corr_" + rs.Subject + ".tsv", MatrixTable("Corr "+rs.Subject, rs.Corr, rs.Categories)})
	}
	var files []string
	for _, tb := range tabs {
		fn := filepath.Join(dir, tb.file)
		if err := SaveTSV(fn, tb.dt); err != nil {
			return files, err
		}
		files = append(files, fn)
	}
	return files, nil
}

// Render formats dt as a bordered text table, floats with prec decimals.
func Render(dt *etable.Table, prec int) string {
	tb := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(dt.ColNames...)
	for row := 0; row < dt.Rows; row++ {
		cells := make([]string, len(dt.ColNames))
		for ci, cn := range dt.ColNames {
			if dt.Cols[ci].DataType() == etensor.STRING {
				cells[ci] = dt.CellString(cn, row)
				continue
			}
			cells[ci] = strconv.FormatFloat(dt.CellFloat(cn, row), 'f', prec, 64)
		}
		tb.Row(cells...)
	}
	return tb.Render()
}

// Print writes Table 1 (accuracy per subject with the group mean) and
// Table 2 (mean exclusion results per category), and lists failed subjects.
func Print(w io.Writer, sm *pipeline.Summary) {
	results := sm.Results()
	acc := AccuracyTable(results)
	fmt.Fprintln(w, "Table 1: split-half decoding accuracy (%)")
	fmt.Fprintln(w, Render(acc, 2))
	fmt.Fprintf(w, "group mean accuracy: %.2f%%\n\n", MeanAccuracy(acc))

	excl := ExclusionTable(results)
	if excl.Rows > 0 {
		fmt.Fprintln(w, "Table 2: self-correlation after excluding preferring channels (mean over subjects)")
		fmt.Fprintln(w, Render(ExclusionSummary(excl), 4))
	}
	for _, oc := range sm.Failed() {
		fmt.Fprintf(w, "skipped %s: %v\n", oc.Subject, oc.Err)
	}
}
