// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/splithalf/rsa"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const difTol = 1.0e-9

func TestDetrend(t *testing.T) {
	// column 0 is a pure line, column 1 a line plus an alternating signal
	m := mat.NewDense(4, 2, []float64{
		1, 0 + 1,
		3, 2 - 1,
		5, 4 + 1,
		7, 6 - 1,
	})
	Detrend(m)
	for ri := 0; ri < 4; ri++ {
		if v := m.At(ri, 0); math.Abs(v) > difTol {
			t.Errorf("row %d: line not removed: %g", ri, v)
		}
	}
	col := mat.Col(nil, 1, m)
	if mn := stat.Mean(col, nil); math.Abs(mn) > difTol {
		t.Errorf("detrended mean %g, want 0", mn)
	}
	x := []float64{0, 1, 2, 3}
	if _, beta := stat.LinearRegression(x, col, nil, false); math.Abs(beta) > difTol {
		t.Errorf("detrended slope %g, want 0", beta)
	}
}

func TestStandardize(t *testing.T) {
	m := mat.NewDense(4, 2, []float64{
		1, 5,
		2, 5,
		3, 5,
		4, 5,
	})
	Standardize(m)
	mean, std := stat.PopMeanStdDev(mat.Col(nil, 0, m), nil)
	if math.Abs(mean) > difTol || math.Abs(std-1) > difTol {
		t.Errorf("mean %g std %g, want 0 1", mean, std)
	}
	for ri := 0; ri < 4; ri++ {
		if v := m.At(ri, 1); v != 0 {
			t.Errorf("constant channel row %d: %g, want 0", ri, v)
		}
	}
}

func TestParamsApply(t *testing.T) {
	m := mat.NewDense(3, 1, []float64{1, 2, 4})
	var pp Params
	pp.Apply(m)
	if !mat.Equal(m, mat.NewDense(3, 1, []float64{1, 2, 4})) {
		t.Errorf("disabled steps changed the matrix")
	}
	pp.Defaults()
	pp.Apply(m)
	mean, std := stat.PopMeanStdDev(mat.Col(nil, 0, m), nil)
	if math.Abs(mean) > difTol || math.Abs(std-1) > difTol {
		t.Errorf("mean %g std %g, want 0 1", mean, std)
	}
}

func TestDropRest(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	ds, err := DropRest(m, []string{"face", "rest", "cat"}, []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(ds.Channels, mat.NewDense(2, 2, []float64{1, 2, 5, 6})) {
		t.Errorf("channels:\n%v", mat.Formatted(ds.Channels))
	}
	if ds.Labels[0] != "face" || ds.Labels[1] != "cat" || ds.Runs[0] != 0 || ds.Runs[1] != 2 {
		t.Errorf("labels %v runs %v", ds.Labels, ds.Runs)
	}
	m.Set(0, 0, 100)
	if ds.Channels.At(0, 0) != 1 {
		t.Errorf("result shares memory with input")
	}

	_, err = DropRest(m, []string{"rest", "rest", "rest"}, []int{0, 1, 2})
	var ece *rsa.EmptyCategoryError
	if !errors.As(err, &ece) {
		t.Errorf("all rest: got %v, want EmptyCategoryError", err)
	}
	_, err = DropRest(m, []string{"face"}, []int{0})
	var ae *rsa.AlignmentError
	if !errors.As(err, &ae) {
		t.Errorf("misaligned: got %v, want AlignmentError", err)
	}
}
