// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"slices"
)

// Rest is the label of baseline samples, which are never a category.
const Rest = "rest"

// CategorySet is the ordered list of categories analyzed for a subject.
// Its order fixes the rows of every pattern matrix and both axes of every
// correlation matrix.
type CategorySet []string

// Categories derives the CategorySet from a label series:
// unique labels, without Rest, in lexical order.
func Categories(labels []string) CategorySet {
	seen := make(map[string]struct{}, 16)
	var cs CategorySet
	for _, lb := range labels {
		if lb == Rest {
			continue
		}
		if _, has := seen[lb]; has {
			continue
		}
		seen[lb] = struct{}{}
		cs = append(cs, lb)
	}
	slices.Sort(cs)
	return cs
}

// Validate returns a *CategoryError if the set is not strictly
// increasing or contains Rest.
func (cs CategorySet) Validate() error {
	for i, c := range cs {
		if c == Rest {
			return &CategoryError{Index: i, Name: c, What: "rest is not a category"}
		}
		if i > 0 && cs[i-1] >= c {
			return &CategoryError{Index: i, Name: c, What: "not in strictly increasing order"}
		}
	}
	return nil
}

// Index returns the position of the named category, or -1.
func (cs CategorySet) Index(name string) int {
	i, found := slices.BinarySearch(cs, name)
	if !found {
		return -1
	}
	return i
}

// Equal reports whether both sets hold the same categories in the same order.
func (cs CategorySet) Equal(o CategorySet) bool {
	return slices.Equal(cs, o)
}
