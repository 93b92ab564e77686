// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"github.com/emer/etable/v2/agg"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/etable/v2/split"
	"github.com/emer/splithalf/pipeline"
	"github.com/emer/splithalf/rsa"
	"gonum.org/v1/gonum/mat"
)

// AccuracyTable returns one row per result with its decoding accuracy.
func AccuracyTable(results []*pipeline.Result) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "Accuracy")
	dt.SetMetaData("desc", "split-half decoding accuracy per subject")
	dt.SetMetaData("precision", "4")
	sch := etable.Schema{
		{"Subject", etensor.STRING, nil, nil},
		{"NCats", etensor.INT64, nil, nil},
		{"Accuracy", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, len(results))
	for row, rs := range results {
		dt.SetCellString("Subject", row, rs.Subject)
		dt.SetCellFloat("NCats", row, float64(len(rs.Categories)))
		dt.SetCellFloat("Accuracy", row, rs.Accuracy)
	}
	return dt
}

// MeanAccuracy returns the group mean of the Accuracy column of an
// AccuracyTable; NaN for an empty table.
func MeanAccuracy(dt *etable.Table) float64 {
	if dt.Rows == 0 {
		return nan
	}
	return agg.Mean(etable.NewIdxView(dt), "Accuracy")[0]
}

// ExclusionTable returns one row per subject and category with the
// original and channel-excluded split-half correlations.
func ExclusionTable(results []*pipeline.Result) *etable.Table {
	n := 0
	for _, rs := range results {
		n += len(rs.Exclusion)
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", "Exclusion")
	dt.SetMetaData("desc", "self-correlation with and without the channels preferring each category")
	dt.SetMetaData("precision", "4")
	sch := etable.Schema{
		{"Subject", etensor.STRING, nil, nil},
		{"Category", etensor.STRING, nil, nil},
		{"Original", etensor.FLOAT64, nil, nil},
		{"Excluded", etensor.FLOAT64, nil, nil},
		{"Drop", etensor.FLOAT64, nil, nil},
		{"Removed", etensor.INT64, nil, nil},
	}
	dt.SetFromSchema(sch, n)
	row := 0
	for _, rs := range results {
		for _, er := range rs.Exclusion {
			dt.SetCellString("Subject", row, rs.Subject)
			dt.SetCellString("Category", row, er.Category)
			dt.SetCellFloat("Original", row, er.Original)
			dt.SetCellFloat("Excluded", row, er.Excluded)
			dt.SetCellFloat("Drop", row, er.Drop)
			dt.SetCellFloat("Removed", row, float64(er.Removed))
			row++
		}
	}
	return dt
}

// ExclusionSummary averages an ExclusionTable over subjects, giving one
// row per category.
func ExclusionSummary(dt *etable.Table) *etable.Table {
	ix := etable.NewIdxView(dt)
	spl := split.GroupBy(ix, []string{"Category"})
	for _, cn := range []string{"Original", "Excluded", "Drop"} {
		split.Agg(spl, cn, agg.AggMean)
	}
	st := spl.AggsToTable(etable.ColNameOnly)
	st.SetMetaData("name", "ExclusionSummary")
	st.SetMetaData("desc", "mean exclusion results across subjects")
	st.SetMetaData("precision", "4")
	return st
}

// MatrixTable returns a category x category matrix as a table: a
// Category column naming the row (even half), then one column per
// category (odd half).
func MatrixTable(name string, m mat.Matrix, cats rsa.CategorySet) *etable.Table {
	nr, nc := m.Dims()
	dt := &etable.Table{}
	dt.SetMetaData("name", name)
	dt.SetMetaData("precision", "4")
	sch := etable.Schema{{"Category", etensor.STRING, nil, nil}}
	for ci := 0; ci < nc; ci++ {
		sch = append(sch, etable.Column{colName(cats, ci), etensor.FLOAT64, nil, nil})
	}
	dt.SetFromSchema(sch, nr)
	for ri := 0; ri < nr; ri++ {
		dt.SetCellString("Category", ri, colName(cats, ri))
		for ci := 0; ci < nc; ci++ {
			dt.SetCellFloat(colName(cats, ci), ri, m.At(ri, ci))
		}
	}
	return dt
}

func colName(cats rsa.CategorySet, i int) string {
	if i < len(cats) {
		return cats[i]
	}
	return "?"
}
