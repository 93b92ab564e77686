// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ExclusionRecord is the result of removing the channels preferring one
// category and recomputing that category's split-half self-correlation.
type ExclusionRecord struct {

	// category whose preferred channels were removed
	Category string

	// self-correlation with all channels (diagonal of the original matrix)
	Original float64

	// self-correlation without the channels preferring Category
	Excluded float64

	// (Original - Excluded) / Original * 100: positive when the removed
	// channels carried the category's pattern.  NaN when Original is 0.
	Drop float64

	// number of channels removed
	Removed int
}

// PreferredCategories returns, for each channel (column) of the even-half
// patterns, the row index of the category with the maximal value.
// Ties go to the lowest index and NaN values are skipped.
func PreferredCategories(even *mat.Dense) []int {
	nr, nc := even.Dims()
	prefs := make([]int, nc)
	col := make([]float64, nr)
	for ci := 0; ci < nc; ci++ {
		mat.Col(col, ci, even)
		if allNaN(col) {
			prefs[ci] = NoMatch
			continue
		}
		prefs[ci] = floats.MaxIdx(col)
	}
	return prefs
}

// DropPercent returns (orig - excl) / orig * 100.
// It returns NaN when orig is zero or either value is NaN, so the
// division never yields an infinity.
func DropPercent(orig, excl float64) float64 {
	if orig == 0 || math.IsNaN(orig) || math.IsNaN(excl) {
		return math.NaN()
	}
	return (orig - excl) / orig * 100
}

// Exclusion runs the exclusion analysis for every category of cats.
// For category i, the channels whose preferred even-half category is i are
// removed from both halves, and the correlation of the remaining even row i
// with the remaining odd row i is compared to orig[i][i].
// If no channel remains, Excluded is NaN.
func Exclusion(even, odd *mat.Dense, cats CategorySet, orig mat.Matrix) ([]ExclusionRecord, error) {
	if even == nil || odd == nil || orig == nil {
		return nil, &ShapeError{Op: "Exclusion", What: "nil matrix"}
	}
	er, ec := even.Dims()
	or, oc := odd.Dims()
	if er != or || ec != oc {
		return nil, &ShapeError{Op: "Exclusion", What: fmt.Sprintf("even is %dx%d, odd is %dx%d", er, ec, or, oc)}
	}
	if er != len(cats) {
		return nil, &ShapeError{Op: "Exclusion", What: fmt.Sprintf("%d pattern rows for %d categories", er, len(cats))}
	}
	if r, c := orig.Dims(); r != er || c != er {
		return nil, &ShapeError{Op: "Exclusion", What: fmt.Sprintf("correlation matrix is %dx%d, want %dx%d", r, c, er, er)}
	}

	prefs := PreferredCategories(even)
	recs := make([]ExclusionRecord, len(cats))
	ekeep := make([]float64, 0, ec)
	okeep := make([]float64, 0, ec)
	for ci, cat := range cats {
		ekeep = ekeep[:0]
		okeep = okeep[:0]
		erow := even.RawRowView(ci)
		orow := odd.RawRowView(ci)
		for ch, pc := range prefs {
			if pc == ci {
				continue
			}
			ekeep = append(ekeep, erow[ch])
			okeep = append(okeep, orow[ch])
		}
		rec := &recs[ci]
		rec.Category = cat
		rec.Original = orig.At(ci, ci)
		rec.Excluded = Pearson(ekeep, okeep)
		rec.Drop = DropPercent(rec.Original, rec.Excluded)
		rec.Removed = ec - len(ekeep)
	}
	return recs, nil
}
