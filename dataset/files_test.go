// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/emer/splithalf/rsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestReadLabels(t *testing.T) {
	in := "labels chunks\nrest 0\nface 0\nhouse 1\ncat 1\n"
	labels, runs, err := ReadLabels(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"rest", "face", "house", "cat"}, labels)
	assert.Equal(t, []int{0, 0, 1, 1}, runs)

	// column order follows the header
	labels, runs, err = ReadLabels(strings.NewReader("chunks labels\n3 shoe\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"shoe"}, labels)
	assert.Equal(t, []int{3}, runs)
}

func TestReadLabelsErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"labels runs\nface 0\n",
		"labels chunks\nface x\n",
		"labels chunks\nface 0.5\n",
	} {
		_, _, err := ReadLabels(strings.NewReader(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestLabelsRoundTrip(t *testing.T) {
	labels := []string{"rest", "face", "house"}
	runs := []int{0, 1, 2}
	var buf bytes.Buffer
	require.NoError(t, WriteLabels(&buf, labels, runs))
	gl, gr, err := ReadLabels(&buf)
	require.NoError(t, err)
	assert.Equal(t, labels, gl)
	assert.Equal(t, runs, gr)

	assert.Error(t, WriteLabels(&buf, labels, runs[:1]))
}

func TestReadMatrix(t *testing.T) {
	in := "v0\tv1\tv2\n1.5\t2.5\t3.5\n4\t5\t6\n"
	m, err := ReadMatrix(strings.NewReader(in))
	require.NoError(t, err)
	want := mat.NewDense(2, 3, []float64{1.5, 2.5, 3.5, 4, 5, 6})
	assert.True(t, mat.Equal(want, m), "got\n%v", mat.Formatted(m))

	for _, in := range []string{
		"",
		"v0\tv1\n",
		"v0\tv1\n1.5\tx\n",
	} {
		_, err = ReadMatrix(strings.NewReader(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestMatrixRoundTrip(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{0.1, -2.5e-7, 3, 1e10, 2, 4})
	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	got, err := ReadMatrix(&buf)
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, got), "got\n%v", mat.Formatted(got))
}

func TestDirLoad(t *testing.T) {
	dr := NewDir(t.TempDir())
	dr.Params.Detrend = false
	dr.Params.Standardize = false
	m := mat.NewDense(4, 2, []float64{
		9, 9,
		1, 2,
		3, 4,
		9, 9,
	})
	labels := []string{"rest", "face", "house", "rest"}
	runs := []int{0, 0, 1, 1}
	require.NoError(t, dr.Save("subj1", m, labels, runs))

	ds, err := dr.Load(t.Context(), "subj1")
	require.NoError(t, err)
	assert.Equal(t, []string{"face", "house"}, ds.Labels)
	assert.Equal(t, []int{0, 1}, ds.Runs)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), ds.Channels))

	_, err = dr.Load(t.Context(), "subj2")
	assert.Error(t, err)
}

func TestDirLoadMisaligned(t *testing.T) {
	dr := NewDir(t.TempDir())
	m := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, dr.Save("s", m, []string{"face", "house"}, []int{0, 1}))
	_, err := dr.Load(t.Context(), "s")
	var ae *rsa.AlignmentError
	require.True(t, errors.As(err, &ae), "got %v", err)
	assert.Equal(t, 3, ae.Samples)
	assert.Equal(t, 2, ae.Len)
}
