// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// NoMatch is the prediction for a column without any defined correlation.
const NoMatch = -1

// Predict returns, for each column j of a correlation matrix, the row with
// the highest correlation: the even-half category that best matches odd-half
// category j.  NaN cells are never chosen and a column holding only NaN
// predicts NoMatch.  Ties go to row j itself when it is among the maxima,
// and otherwise to the lowest row.  Identical halves whose patterns are
// perfectly correlated with each other, such as rows [1,2,3] and [4,5,6]
// in both halves, give a matrix of all ones, and every category must
// still decode to itself there.
func Predict(corr mat.Matrix) []int {
	nr, nc := corr.Dims()
	preds := make([]int, nc)
	col := make([]float64, nr)
	for j := 0; j < nc; j++ {
		if nr == 0 {
			preds[j] = NoMatch
			continue
		}
		mat.Col(col, j, corr)
		if allNaN(col) {
			preds[j] = NoMatch
			continue
		}
		mi := floats.MaxIdx(col)
		if j < nr && col[j] == col[mi] {
			mi = j
		}
		preds[j] = mi
	}
	return preds
}

// Accuracy returns the percentage (0-100) of columns of a square
// correlation matrix whose prediction is their own category.
// An empty matrix has NaN accuracy.
func Accuracy(corr mat.Matrix) float64 {
	preds := Predict(corr)
	if len(preds) == 0 {
		return math.NaN()
	}
	correct := 0
	for j, p := range preds {
		if p == j {
			correct++
		}
	}
	return float64(correct) / float64(len(preds)) * 100
}

func allNaN(v []float64) bool {
	for _, x := range v {
		if !math.IsNaN(x) {
			return false
		}
	}
	return true
}
