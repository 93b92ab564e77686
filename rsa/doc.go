// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rsa implements split-half representational similarity analysis
over a channel-by-sample activity matrix.

The analysis proceeds in the classic Haxby (2001) manner:

* BuildPatterns averages the samples of each category into one activity
  pattern per category, and then subtracts the mean pattern across
  categories (the "cocktail blank"), removing the signal shared by all
  categories.

* SplitPatterns builds two independent pattern sets from the even and odd
  runs of a session.

* Correlate computes the Pearson correlation between every even-half
  pattern and every odd-half pattern, giving a category-by-category
  matrix whose diagonal holds the "hit" correlations.

* Accuracy scores the matrix as a nearest-pattern classifier: for each
  odd-half category, the even-half category with the highest correlation
  is the prediction.

* Exclusion removes, for each category, the channels whose maximal
  even-half response is for that category, and reports how much the
  self-correlation drops without them.

All functions are pure and deterministic: inputs are never modified and
nothing is logged.  Undefined correlations (constant vectors, fewer than
two channels) are reported as NaN rather than as errors.
*/
package rsa
