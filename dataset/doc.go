// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dataset provides subject data for the analysis: readers and writers
for the on-disk format, light preprocessing, and sources that satisfy
pipeline.Source.

A subject directory holds two files:

* labels.txt: the session targets, space separated with a header line
  naming the "labels" (condition) and "chunks" (run) columns, one line
  per sample, as distributed with the Haxby (2001) dataset.

* bold.tsv: the masked activity, tab separated with a header line naming
  the channels (voxels), then one line per sample.

Dir loads such directories, applies Params (linear detrend and z-scoring
of each channel over the full session) and then removes the rest samples.
Synth generates deterministic synthetic subjects with the same structure.
*/
package dataset
