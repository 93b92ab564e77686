// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emer/splithalf/rsa"
	"gonum.org/v1/gonum/mat"
)

// Dir loads subjects stored as <Root>/<subject>/<LabelsFile> and
// <Root>/<subject>/<MatrixFile>.
type Dir struct {

	// directory holding one sub-directory per subject
	Root string

	// session targets file name within each subject directory
	LabelsFile string `def:"labels.txt"`

	// activity matrix file name within each subject directory
	MatrixFile string `def:"bold.tsv"`

	// preprocessing applied before rest removal
	Params Params
}

// NewDir returns a Dir on root with default file names and Params.
func NewDir(root string) *Dir {
	dr := &Dir{Root: root}
	dr.Defaults()
	return dr
}

func (dr *Dir) Defaults() {
	dr.LabelsFile = "labels.txt"
	dr.MatrixFile = "bold.tsv"
	dr.Params.Defaults()
}

// SubjectDir returns the directory of the given subject.
func (dr *Dir) SubjectDir(subject string) string {
	return filepath.Join(dr.Root, subject)
}

// Load reads, preprocesses and rest-filters one subject.
func (dr *Dir) Load(ctx context.Context, subject string) (*rsa.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sdir := dr.SubjectDir(subject)
	lf, err := os.Open(filepath.Join(sdir, dr.LabelsFile))
	if err != nil {
		return nil, err
	}
	defer lf.Close()
	labels, runs, err := ReadLabels(lf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lf.Name(), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mf, err := os.Open(filepath.Join(sdir, dr.MatrixFile))
	if err != nil {
		return nil, err
	}
	defer mf.Close()
	m, err := ReadMatrix(mf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mf.Name(), err)
	}
	if r, _ := m.Dims(); r != len(labels) {
		return nil, &rsa.AlignmentError{Series: "labels", Samples: r, Len: len(labels)}
	}
	dr.Params.Apply(m)
	return DropRest(m, labels, runs)
}

// Save writes a full session (including rest samples) for subject in
// the layout read by Load, creating the subject directory.
func (dr *Dir) Save(subject string, m mat.Matrix, labels []string, runs []int) error {
	sdir := dr.SubjectDir(subject)
	if err := os.MkdirAll(sdir, 0o750); err != nil {
		return err
	}
	lf, err := os.Create(filepath.Join(sdir, dr.LabelsFile))
	if err != nil {
		return err
	}
	if err := WriteLabels(lf, labels, runs); err != nil {
		lf.Close()
		return err
	}
	if err := lf.Close(); err != nil {
		return err
	}
	mf, err := os.Create(filepath.Join(sdir, dr.MatrixFile))
	if err != nil {
		return err
	}
	if err := WriteMatrix(mf, m); err != nil {
		mf.Close()
		return err
	}
	return mf.Close()
}
