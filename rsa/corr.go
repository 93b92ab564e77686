// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Pearson returns the Pearson correlation of a and b.
// It returns NaN when the correlation is undefined: mismatched lengths,
// fewer than two values, or a vector with zero variance.
func Pearson(a, b []float64) float64 {
	if len(a) != len(b) || len(a) < 2 {
		return math.NaN()
	}
	if constant(a) || constant(b) {
		return math.NaN()
	}
	return stat.Correlation(a, b, nil)
}

// constant reports whether all values are identical.
func constant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}

// Correlate returns the category x category matrix of Pearson
// correlations between the rows of even (matrix rows) and the rows
// of odd (matrix columns).  Cell [i][j] is corr(even_i, odd_j),
// so the diagonal holds the split-half self-correlations.
func Correlate(even, odd *mat.Dense) (*mat.Dense, error) {
	if even == nil || odd == nil {
		return nil, &ShapeError{Op: "Correlate", What: "nil pattern matrix"}
	}
	er, ec := even.Dims()
	or, oc := odd.Dims()
	if er != or || ec != oc {
		return nil, &ShapeError{Op: "Correlate", What: fmt.Sprintf("even is %dx%d, odd is %dx%d", er, ec, or, oc)}
	}
	if er == 0 {
		return nil, &ShapeError{Op: "Correlate", What: "no categories"}
	}
	corr := mat.NewDense(er, er, nil)
	for i := 0; i < er; i++ {
		ev := even.RawRowView(i)
		for j := 0; j < er; j++ {
			corr.Set(i, j, Pearson(ev, odd.RawRowView(j)))
		}
	}
	return corr, nil
}
