// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-9

func TestCategories(t *testing.T) {
	cs := Categories([]string{"shoe", "rest", "face", "cat", "face", "rest", "shoe"})
	cor := CategorySet{"cat", "face", "shoe"}
	if !cs.Equal(cor) {
		t.Errorf("Categories: got %v, want %v\n", cs, cor)
	}
	if err := cs.Validate(); err != nil {
		t.Error(err)
	}
	if cs.Index("face") != 1 || cs.Index("rest") != -1 || cs.Index("zebra") != -1 {
		t.Errorf("Index err: face: %d rest: %d zebra: %d\n", cs.Index("face"), cs.Index("rest"), cs.Index("zebra"))
	}
	if err := (CategorySet{"face", "cat"}).Validate(); err == nil {
		t.Error("unsorted set should not validate")
	}
	if err := (CategorySet{"cat", "rest"}).Validate(); err == nil {
		t.Error("set with rest should not validate")
	}
	if err := (CategorySet{"cat", "cat"}).Validate(); err == nil {
		t.Error("set with duplicates should not validate")
	}
	if len(Categories([]string{"rest", "rest"})) != 0 {
		t.Error("only rest labels should give an empty set")
	}
}

func TestCocktailBlankValues(t *testing.T) {
	chans := mat.NewDense(4, 2, []float64{
		10, 20,
		30, 40,
		10, 20,
		30, 40,
	})
	labels := []string{"A", "B", "A", "B"}
	sel := []bool{true, true, true, true}
	pats, err := BuildPatterns(chans, labels, sel, CategorySet{"A", "B"})
	if err != nil {
		t.Fatal(err)
	}
	cor := mat.NewDense(2, 2, []float64{-10, -10, 10, 10})
	if !mat.EqualApprox(pats, cor, difTol) {
		t.Errorf("patterns: got %v, want %v\n", mat.Formatted(pats), mat.Formatted(cor))
	}
	// input is untouched
	if chans.At(1, 1) != 40 {
		t.Errorf("input modified: %v\n", chans.At(1, 1))
	}
}

func TestBuildPatternsZeroMean(t *testing.T) {
	chans := mat.NewDense(6, 3, []float64{
		1.5, -2, 7,
		0.25, 3, -1,
		9, 4, 2,
		-3, 8, 0.5,
		2, 2, 2,
		100, -50, 3,
	})
	labels := []string{"house", "face", "cat", "face", "house", "rest"}
	cats := Categories(labels)
	pats, err := BuildPatterns(chans, labels, nil, cats)
	if err != nil {
		t.Fatal(err)
	}
	nr, nc := pats.Dims()
	if nr != len(cats) || nc != 3 {
		t.Fatalf("dims: got %dx%d, want %dx3\n", nr, nc, len(cats))
	}
	for ci := 0; ci < nc; ci++ {
		sum := 0.0
		for ri := 0; ri < nr; ri++ {
			sum += pats.At(ri, ci)
		}
		if math.Abs(sum/float64(nr)) > difTol {
			t.Errorf("channel %d mean across categories: %v\n", ci, sum/float64(nr))
		}
	}
	// face mean = (0.25+-3)/2, cat = 9, house = (1.5+2)/2 on channel 0
	mean := (-1.375 + 9 + 1.75) / 3
	if dif := math.Abs(pats.At(1, 0) - (-1.375 - mean)); dif > difTol {
		t.Errorf("face ch0: got %v, dif: %v\n", pats.At(1, 0), dif)
	}
}

func TestBuildPatternsSelector(t *testing.T) {
	chans := mat.NewDense(4, 2, []float64{
		1, 2,
		3, 4,
		100, 200,
		300, 400,
	})
	labels := []string{"A", "B", "A", "B"}
	pats, err := BuildPatterns(chans, labels, []bool{true, true, false, false}, CategorySet{"A", "B"})
	if err != nil {
		t.Fatal(err)
	}
	cor := mat.NewDense(2, 2, []float64{-1, -1, 1, 1})
	if !mat.EqualApprox(pats, cor, difTol) {
		t.Errorf("patterns: got %v, want %v\n", mat.Formatted(pats), mat.Formatted(cor))
	}
}

func TestBuildPatternsErrors(t *testing.T) {
	chans := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	cats := CategorySet{"A", "B"}

	_, err := BuildPatterns(chans, []string{"A", "B"}, nil, cats)
	var ae *AlignmentError
	if !errors.As(err, &ae) || ae.Series != "labels" || ae.Samples != 3 || ae.Len != 2 {
		t.Errorf("labels mismatch: got %v\n", err)
	}

	_, err = BuildPatterns(chans, []string{"A", "B", "A"}, []bool{true}, cats)
	if !errors.As(err, &ae) || ae.Series != "selector" {
		t.Errorf("selector mismatch: got %v\n", err)
	}

	_, err = BuildPatterns(chans, []string{"A", "B", "A"}, []bool{true, false, true}, cats)
	var ece *EmptyCategoryError
	if !errors.As(err, &ece) || ece.Category != "B" {
		t.Errorf("empty category: got %v\n", err)
	}

	_, err = BuildPatterns(chans, []string{"A", "B", "A"}, nil, CategorySet{"B", "A"})
	var ce *CategoryError
	if !errors.As(err, &ce) {
		t.Errorf("unsorted categories: got %v\n", err)
	}

	// a label outside the set is an error even when its row is not selected
	chans4 := mat.NewDense(4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	for _, sel := range [][]bool{nil, {true, true, false, true}} {
		_, err = BuildPatterns(chans4, []string{"A", "B", "C", "A"}, sel, cats)
		if !errors.As(err, &ce) || ce.Name != "C" {
			t.Errorf("unknown label, sel %v: got %v\n", sel, err)
		}
	}

	// rest rows are not labels of the set and are skipped
	pats, err := BuildPatterns(chans4, []string{"A", "B", Rest, "A"}, nil, cats)
	if err != nil {
		t.Fatal(err)
	}
	cor := mat.NewDense(2, 2, []float64{0.5, 0.5, -0.5, -0.5})
	if !mat.EqualApprox(pats, cor, difTol) {
		t.Errorf("rest skipped: got %v, want %v\n", mat.Formatted(pats), mat.Formatted(cor))
	}
}

func TestBuildPatternsIdempotent(t *testing.T) {
	chans := mat.NewDense(6, 3, []float64{
		1, 5, 2,
		0.3, -2, 7,
		4, 4, 1,
		-1, 0.5, 3,
		2, 2, 2,
		9, -3, 0,
	})
	labels := []string{"A", "B", "C", "A", "B", "C"}
	cats := CategorySet{"A", "B", "C"}
	p1, err := BuildPatterns(chans, labels, nil, cats)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := BuildPatterns(chans, labels, nil, cats)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(p1, p2) {
		t.Errorf("reruns differ:\n%v\n%v\n", mat.Formatted(p1), mat.Formatted(p2))
	}
}

func TestSplitPatterns(t *testing.T) {
	// runs 0, 2 are even, 1, 3 odd
	chans := mat.NewDense(8, 3, []float64{
		1, 0, 2,
		0, 1, 5,
		2, 0, 4,
		0, 2, 10,
		1, 2, 3,
		3, 1, 0,
		1, 2, 3,
		3, 1, 0,
	})
	ds := &Dataset{
		Channels: chans,
		Labels:   []string{"A", "A", "A", "A", "B", "B", "B", "B"},
		Runs:     []int{0, 2, 1, 3, 0, 2, 1, 3},
	}
	even, odd, err := SplitPatterns(ds, CategorySet{"A", "B"})
	if err != nil {
		t.Fatal(err)
	}
	// even: A = (0.5, 0.5, 3.5), B = (2, 1.5, 1.5) -> mean (1.25, 1, 2.5)
	coreven := mat.NewDense(2, 3, []float64{-0.75, -0.5, 1, 0.75, 0.5, -1})
	if !mat.EqualApprox(even, coreven, difTol) {
		t.Errorf("even: got %v, want %v\n", mat.Formatted(even), mat.Formatted(coreven))
	}
	// odd: A = (1, 1, 7), B = (2, 1.5, 1.5) -> mean (1.5, 1.25, 4.25)
	corodd := mat.NewDense(2, 3, []float64{-0.5, -0.25, 2.75, 0.5, 0.25, -2.75})
	if !mat.EqualApprox(odd, corodd, difTol) {
		t.Errorf("odd: got %v, want %v\n", mat.Formatted(odd), mat.Formatted(corodd))
	}
}

func TestSplitPatternsEmptyHalf(t *testing.T) {
	ds := &Dataset{
		Channels: mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}),
		Labels:   []string{"A", "B", "A"},
		Runs:     []int{0, 0, 1},
	}
	_, _, err := SplitPatterns(ds, CategorySet{"A", "B"})
	var ece *EmptyCategoryError
	if !errors.As(err, &ece) {
		t.Fatalf("want EmptyCategoryError, got %v\n", err)
	}
	if ece.Category != "B" || ece.Selector != "odd" {
		t.Errorf("got category %q in %q runs\n", ece.Category, ece.Selector)
	}

	ds.Runs = ds.Runs[:2]
	_, _, err = SplitPatterns(ds, CategorySet{"A", "B"})
	var ae *AlignmentError
	if !errors.As(err, &ae) || ae.Series != "runs" {
		t.Errorf("want runs AlignmentError, got %v\n", err)
	}
}

func TestParityMask(t *testing.T) {
	runs := []int{0, 1, 2, 3, -1, -2}
	even := ParityMask(runs, Even)
	odd := ParityMask(runs, Odd)
	coreven := []bool{true, false, true, false, false, true}
	for i := range runs {
		if even[i] != coreven[i] || odd[i] == even[i] {
			t.Errorf("run %d: even %v odd %v\n", runs[i], even[i], odd[i])
		}
	}
}
