// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package splithalf is the overall repository for split-half representational
similarity analysis of category-labeled activity recordings, as in the
Haxby et al. (2001) study of ventral temporal cortex.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* rsa: the analysis core.  Builds cocktail-blanked category patterns from the
even and odd runs of a session, cross-correlates the two halves, scores
nearest-pattern decoding accuracy, and measures how much each category's
self-correlation depends on the channels that prefer it.  Pure functions on
gonum matrices, with NaN for undefined correlations.

* dataset: reading labels and activity matrices from files, detrending and
standardizing channels, removing rest samples, and generating synthetic
subjects.

* pipeline: runs the analysis over many subjects in parallel, with structured
logging (zap), prometheus metrics, and the grand-average correlation matrix.

* report: etable tables of the results (Table 1 accuracy, Table 2 exclusion),
saved as .tsv files or printed as text tables.

* store: SQLite database of run summaries.

* examples: examples/haxby is the runnable command, configured through
config.toml and command-line args.
*/
package splithalf
