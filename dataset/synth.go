// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/splithalf/rsa"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// HaxbyCategories are the eight object categories of the Haxby (2001) study.
var HaxbyCategories = []string{"bottle", "cat", "chair", "face", "house", "scissors", "scrambledpix", "shoe"}

// Synth generates synthetic sessions: each run shows every category in one
// block of samples, in random order, separated by rest samples.  Each
// sample is the category's channel pattern plus a pattern shared by all
// task samples plus gaussian noise.
type Synth struct {

	// category labels
	Categories []string

	// number of channels (voxels)
	Channels int `def:"200" min:"1"`

	// number of runs; at least 2 so both halves exist
	Runs int `def:"12" min:"2"`

	// samples per category block
	Block int `def:"9" min:"1"`

	// rest samples before each block
	RestBlock int `def:"6" min:"0"`

	// standard deviation of the category-specific patterns
	Signal float64 `def:"0.5"`

	// standard deviation of the pattern shared by all categories
	Shared float64 `def:"1"`

	// standard deviation of the per-sample noise
	Noise float64 `def:"1"`

	// base random seed; combined with the subject id
	Seed int64 `def:"1"`

	// preprocessing applied before rest removal
	Params Params
}

func (sy *Synth) Defaults() {
	sy.Categories = HaxbyCategories
	sy.Channels = 200
	sy.Runs = 12
	sy.Block = 9
	sy.RestBlock = 6
	sy.Signal = 0.5
	sy.Shared = 1
	sy.Noise = 1
	sy.Seed = 1
	sy.Params.Defaults()
}

// SubjectSeed returns the random seed used for the given subject.
func (sy *Synth) SubjectSeed(subject string) int64 {
	return sy.Seed ^ int64(xxhash.Sum64String(subject))
}

// Session generates the full session of a subject, including rest samples.
// The same subject always yields the same session.
func (sy *Synth) Session(subject string) (m *mat.Dense, labels []string, runs []int) {
	rnd := erand.NewSysRand(sy.SubjectSeed(subject))
	ncat := len(sy.Categories)
	randVec := func(sd float64) []float64 {
		v := make([]float64, sy.Channels)
		for i := range v {
			v[i] = erand.GaussianGen(0, sd, -1, rnd)
		}
		return v
	}
	catPats := make([][]float64, ncat)
	for ci := range catPats {
		catPats[ci] = randVec(sy.Signal)
	}
	shared := randVec(sy.Shared)

	nsamp := sy.Runs * ncat * (sy.Block + sy.RestBlock)
	m = mat.NewDense(nsamp, sy.Channels, nil)
	labels = make([]string, 0, nsamp)
	runs = make([]int, 0, nsamp)
	ord := make([]int, ncat)
	for ci := range ord {
		ord[ci] = ci
	}
	row := 0
	for run := 0; run < sy.Runs; run++ {
		erand.PermuteInts(ord, rnd)
		for _, ci := range ord {
			for s := 0; s < sy.RestBlock; s++ {
				v := m.RawRowView(row)
				copy(v, randVec(sy.Noise))
				labels = append(labels, rsa.Rest)
				runs = append(runs, run)
				row++
			}
			for s := 0; s < sy.Block; s++ {
				v := m.RawRowView(row)
				copy(v, randVec(sy.Noise))
				floats.Add(v, catPats[ci])
				floats.Add(v, shared)
				labels = append(labels, sy.Categories[ci])
				runs = append(runs, run)
				row++
			}
		}
	}
	return m, labels, runs
}

// Load generates, preprocesses and rest-filters one subject.
func (sy *Synth) Load(ctx context.Context, subject string) (*rsa.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, labels, runs := sy.Session(subject)
	sy.Params.Apply(m)
	return DropRest(m, labels, runs)
}
