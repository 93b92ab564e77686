// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"github.com/emer/splithalf/rsa"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Params are the preprocessing steps applied to each channel over the
// full session, before rest samples are removed.
type Params struct {

	// remove the least-squares linear trend of each channel over samples
	Detrend bool `def:"true"`

	// z-score each channel: zero mean, unit (population) standard deviation
	Standardize bool `def:"true"`
}

func (pp *Params) Defaults() {
	pp.Detrend = true
	pp.Standardize = true
}

// Apply runs the enabled steps on m in place.
func (pp *Params) Apply(m *mat.Dense) {
	if pp.Detrend {
		Detrend(m)
	}
	if pp.Standardize {
		Standardize(m)
	}
}

// Detrend removes the linear trend over samples from every channel of m,
// in place.
func Detrend(m *mat.Dense) {
	nr, nc := m.Dims()
	if nr < 2 {
		return
	}
	x := make([]float64, nr)
	floats.Span(x, 0, float64(nr-1))
	col := make([]float64, nr)
	for ci := 0; ci < nc; ci++ {
		mat.Col(col, ci, m)
		alpha, beta := stat.LinearRegression(x, col, nil, false)
		for ri := range col {
			col[ri] -= alpha + beta*x[ri]
		}
		m.SetCol(ci, col)
	}
}

// Standardize z-scores every channel of m in place.
// Constant channels are only centered, leaving zeros.
func Standardize(m *mat.Dense) {
	nr, nc := m.Dims()
	if nr < 2 {
		return
	}
	col := make([]float64, nr)
	for ci := 0; ci < nc; ci++ {
		mat.Col(col, ci, m)
		mean, std := stat.PopMeanStdDev(col, nil)
		floats.AddConst(-mean, col)
		if std > 0 {
			floats.Scale(1/std, col)
		}
		m.SetCol(ci, col)
	}
}

// DropRest returns the dataset restricted to the non-rest samples.
// The returned matrix does not share memory with m.
func DropRest(m *mat.Dense, labels []string, runs []int) (*rsa.Dataset, error) {
	full := &rsa.Dataset{Channels: m, Labels: labels, Runs: runs}
	if err := full.Validate(); err != nil {
		return nil, err
	}
	_, nc := m.Dims()
	var keep []int
	for i, lb := range labels {
		if lb != rsa.Rest {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, &rsa.EmptyCategoryError{Category: "(any task category)", Selector: "all"}
	}
	ds := &rsa.Dataset{
		Channels: mat.NewDense(len(keep), nc, nil),
		Labels:   make([]string, len(keep)),
		Runs:     make([]int, len(keep)),
	}
	for ri, si := range keep {
		ds.Channels.SetRow(ri, m.RawRowView(si))
		ds.Labels[ri] = labels[si]
		ds.Runs[ri] = runs[si]
	}
	return ds, nil
}
