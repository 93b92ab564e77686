// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Halves are the two halves of a session split by run parity.
type Halves int32

const (
	// Even selects samples from runs with an even id.
	Even Halves = iota

	// Odd selects samples from runs with an odd id.
	Odd
)

func (h Halves) String() string {
	if h == Even {
		return "even"
	}
	return "odd"
}

// ParityMask returns the row selector of the given half of the runs.
func ParityMask(runs []int, h Halves) []bool {
	mask := make([]bool, len(runs))
	for i, r := range runs {
		even := r%2 == 0
		mask[i] = even == (h == Even)
	}
	return mask
}

// SplitPatterns builds the even-run and odd-run pattern sets of a dataset
// for the given categories.  Both share the cats row order and the channel
// columns of the dataset, and are estimated from disjoint samples.
func SplitPatterns(ds *Dataset, cats CategorySet) (even, odd *mat.Dense, err error) {
	if err = ds.Validate(); err != nil {
		return nil, nil, err
	}
	even, err = buildHalf(ds, cats, Even)
	if err != nil {
		return nil, nil, err
	}
	odd, err = buildHalf(ds, cats, Odd)
	if err != nil {
		return nil, nil, err
	}
	return even, odd, nil
}

func buildHalf(ds *Dataset, cats CategorySet, h Halves) (*mat.Dense, error) {
	pats, err := BuildPatterns(ds.Channels, ds.Labels, ParityMask(ds.Runs, h), cats)
	var ece *EmptyCategoryError
	if errors.As(err, &ece) {
		ece.Selector = h.String()
	}
	return pats, err
}
