// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BuildPatterns returns the cocktail-blanked mean activity pattern of each
// category, one row per category in cats order and one column per channel.
// Only rows where sel is true are used; a nil sel selects every row.
// Rest rows are ignored.  Any other label missing from cats is a
// *CategoryError, whether or not its row is selected.
// A category without any selected row is an *EmptyCategoryError.
func BuildPatterns(channels *mat.Dense, labels []string, sel []bool, cats CategorySet) (*mat.Dense, error) {
	if channels == nil {
		return nil, &ShapeError{Op: "BuildPatterns", What: "nil channel matrix"}
	}
	nr, nc := channels.Dims()
	if nc == 0 {
		return nil, &ShapeError{Op: "BuildPatterns", What: "no channels"}
	}
	if len(labels) != nr {
		return nil, &AlignmentError{Series: "labels", Samples: nr, Len: len(labels)}
	}
	if sel != nil && len(sel) != nr {
		return nil, &AlignmentError{Series: "selector", Samples: nr, Len: len(sel)}
	}
	if err := cats.Validate(); err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, &ShapeError{Op: "BuildPatterns", What: "no categories"}
	}

	idx := make([]int, nr)
	for ri, lb := range labels {
		idx[ri] = cats.Index(lb)
		if idx[ri] < 0 && lb != Rest {
			return nil, &CategoryError{Index: -1, Name: lb, What: fmt.Sprintf("label of sample %d is not in the category set", ri)}
		}
	}

	pats := mat.NewDense(len(cats), nc, nil)
	counts := make([]int, len(cats))
	for ri := 0; ri < nr; ri++ {
		ci := idx[ri]
		if ci < 0 || (sel != nil && !sel[ri]) {
			continue
		}
		floats.Add(pats.RawRowView(ci), channels.RawRowView(ri))
		counts[ci]++
	}
	for ci, n := range counts {
		if n == 0 {
			return nil, &EmptyCategoryError{Category: cats[ci], Selector: "all"}
		}
		floats.Scale(1/float64(n), pats.RawRowView(ci))
	}
	CocktailBlank(pats)
	return pats, nil
}

// CocktailBlank subtracts from every row the mean row, so that each
// channel has zero mean across categories.  The matrix is modified in place.
func CocktailBlank(pats *mat.Dense) {
	nr, nc := pats.Dims()
	mean := make([]float64, nc)
	for ri := 0; ri < nr; ri++ {
		floats.Add(mean, pats.RawRowView(ri))
	}
	floats.Scale(1/float64(nr), mean)
	for ri := 0; ri < nr; ri++ {
		floats.Sub(pats.RawRowView(ri), mean)
	}
}
