// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"gonum.org/v1/gonum/mat"
)

// Dataset is the cleaned input for one subject: a samples x channels
// activity matrix with one category label and one run id per sample.
// It is treated as immutable by everything in this package.
type Dataset struct {

	// activity, one row per sample, one column per channel (e.g., voxel)
	Channels *mat.Dense

	// category label of each sample
	Labels []string

	// run (chunk) id of each sample, used for the even / odd split
	Runs []int
}

// NSamples returns the number of samples (rows) in the channel matrix.
func (ds *Dataset) NSamples() int {
	if ds.Channels == nil {
		return 0
	}
	r, _ := ds.Channels.Dims()
	return r
}

// NChannels returns the number of channels (columns) in the channel matrix.
func (ds *Dataset) NChannels() int {
	if ds.Channels == nil {
		return 0
	}
	_, c := ds.Channels.Dims()
	return c
}

// Validate checks that Labels and Runs are aligned 1:1 with the rows
// of Channels, returning an *AlignmentError otherwise.
func (ds *Dataset) Validate() error {
	n := ds.NSamples()
	if len(ds.Labels) != n {
		return &AlignmentError{Series: "labels", Samples: n, Len: len(ds.Labels)}
	}
	if len(ds.Runs) != n {
		return &AlignmentError{Series: "runs", Samples: n, Len: len(ds.Runs)}
	}
	return nil
}
