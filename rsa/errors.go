// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import "fmt"

// AlignmentError reports a per-sample series whose length does not
// match the number of samples (rows) in the channel matrix.
type AlignmentError struct {
	Series  string // "labels", "runs", "selector"
	Samples int
	Len     int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("rsa: %s has %d entries for %d samples", e.Series, e.Len, e.Samples)
}

// EmptyCategoryError reports a category with no samples under a selector,
// which leaves its mean pattern undefined.
type EmptyCategoryError struct {
	Category string
	Selector string // "all", "even" or "odd"
}

func (e *EmptyCategoryError) Error() string {
	return fmt.Sprintf("rsa: category %q has no samples in %s runs", e.Category, e.Selector)
}

// ShapeError reports matrices whose dimensions do not fit together.
type ShapeError struct {
	Op   string
	What string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("rsa: %s: %s", e.Op, e.What)
}

// CategoryError reports a CategorySet that is not sorted, unique and
// free of the Rest label, or a sample label missing from the set
// (Index is -1 then).
type CategoryError struct {
	Index int
	Name  string
	What  string
}

func (e *CategoryError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("rsa: category %q: %s", e.Name, e.What)
	}
	return fmt.Sprintf("rsa: category %d (%q): %s", e.Index, e.Name, e.What)
}
