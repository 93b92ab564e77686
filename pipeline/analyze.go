// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"

	"github.com/emer/splithalf/rsa"
	"gonum.org/v1/gonum/mat"
)

// Result is the full analysis of one subject.  It is not modified
// after Analyze returns.
type Result struct {

	// subject identifier
	Subject string

	// categories in the row / column order of Corr and of Exclusion
	Categories rsa.CategorySet

	// even x odd split-half correlation matrix
	Corr *mat.Dense

	// nearest-pattern decoding accuracy, in percent
	Accuracy float64

	// one record per category
	Exclusion []rsa.ExclusionRecord
}

// Analyze runs the split-half analysis on one subject's dataset.
// Any error aborts the subject: no partial Result is returned.
func Analyze(subject string, ds *rsa.Dataset) (*Result, error) {
	if ds == nil || ds.Channels == nil {
		return nil, fmt.Errorf("subject %s: no data", subject)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("subject %s: %w", subject, err)
	}
	cats := rsa.Categories(ds.Labels)
	if len(cats) == 0 {
		return nil, fmt.Errorf("subject %s: no task categories in labels", subject)
	}
	even, odd, err := rsa.SplitPatterns(ds, cats)
	if err != nil {
		return nil, fmt.Errorf("subject %s: %w", subject, err)
	}
	corr, err := rsa.Correlate(even, odd)
	if err != nil {
		return nil, fmt.Errorf("subject %s: %w", subject, err)
	}
	excl, err := rsa.Exclusion(even, odd, cats, corr)
	if err != nil {
		return nil, fmt.Errorf("subject %s: %w", subject, err)
	}
	return &Result{
		Subject:    subject,
		Categories: cats,
		Corr:       corr,
		Accuracy:   rsa.Accuracy(corr),
		Exclusion:  excl,
	}, nil
}

// Diag returns the split-half self-correlation of each category.
func (rs *Result) Diag() []float64 {
	n := len(rs.Categories)
	d := make([]float64, n)
	for i := range d {
		d[i] = rs.Corr.At(i, i)
	}
	return d
}
