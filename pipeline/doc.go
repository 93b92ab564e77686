// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pipeline runs the split-half analysis of package rsa for each
subject of a study and aggregates the results across subjects.

Analyze is the pure per-subject sequence: derive the categories, build the
even / odd patterns, correlate them, score the decoding accuracy and run the
exclusion analysis.  A subject either fully succeeds or fails.

Pipeline.Run loads each subject from a Source and analyzes subjects in
parallel; outcomes are kept in input order regardless of completion order.
A failed subject is reported in its Outcome and left out of the grand
average, unless Params.Abort is set, in which case the first failure stops
the run.  Diagnostics go to an injected zap.Logger and prometheus Metrics;
the analysis itself never logs.
*/
package pipeline
