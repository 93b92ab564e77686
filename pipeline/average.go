// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/emer/splithalf/rsa"
	"gonum.org/v1/gonum/mat"
)

// CategoryMismatchError reports a subject whose categories differ from
// those of the first subject, so their matrices cannot be averaged.
type CategoryMismatchError struct {
	Subject string
	Want    rsa.CategorySet
	Got     rsa.CategorySet
}

func (e *CategoryMismatchError) Error() string {
	return fmt.Sprintf("pipeline: subject %s has categories %v, want %v", e.Subject, e.Got, e.Want)
}

// GrandAverage returns the elementwise mean of the correlation matrices of
// all results, together with their shared categories.  NaN cells are
// skipped; a cell that is NaN for every subject stays NaN.
func GrandAverage(results []*Result) (*mat.Dense, rsa.CategorySet, error) {
	if len(results) == 0 {
		return nil, nil, errors.New("pipeline: no results to average")
	}
	cats := results[0].Categories
	n := len(cats)
	for _, rs := range results[1:] {
		if !rs.Categories.Equal(cats) {
			return nil, nil, &CategoryMismatchError{Subject: rs.Subject, Want: cats, Got: rs.Categories}
		}
	}
	sum := mat.NewDense(n, n, nil)
	cnt := make([]int, n*n)
	for _, rs := range results {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := rs.Corr.At(i, j)
				if math.IsNaN(v) {
					continue
				}
				sum.Set(i, j, sum.At(i, j)+v)
				cnt[i*n+j]++
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c := cnt[i*n+j]
			if c == 0 {
				sum.Set(i, j, math.NaN())
				continue
			}
			sum.Set(i, j, sum.At(i, j)/float64(c))
		}
	}
	return sum, cats, nil
}
