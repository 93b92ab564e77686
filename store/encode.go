// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"github.com/emer/splithalf/rsa"
	"gonum.org/v1/gonum/mat"
)

func nullFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func encodeCategories(cats rsa.CategorySet) (string, error) {
	if cats == nil {
		cats = rsa.CategorySet{}
	}
	b, err := json.Marshal(cats)
	return string(b), err
}

func decodeCategories(s string) (rsa.CategorySet, error) {
	var cats rsa.CategorySet
	if err := json.Unmarshal([]byte(s), &cats); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if len(cats) == 0 {
		return nil, nil
	}
	return cats, nil
}

// encodeMatrix returns m as a JSON array of rows, NaN as null.
// A nil matrix is SQL NULL.
func encodeMatrix(m *mat.Dense) (sql.NullString, error) {
	if m == nil {
		return sql.NullString{}, nil
	}
	nr, nc := m.Dims()
	rows := make([][]*float64, nr)
	for ri := range rows {
		rows[ri] = make([]*float64, nc)
		for ci := range rows[ri] {
			v := m.At(ri, ci)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			rows[ri][ci] = &v
		}
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeMatrix(s string) (*mat.Dense, error) {
	var rows [][]*float64
	if err := json.Unmarshal([]byte(s), &rows); err != nil {
		return nil, fmt.Errorf("decode matrix: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("decode matrix: empty")
	}
	nr, nc := len(rows), len(rows[0])
	m := mat.NewDense(nr, nc, nil)
	for ri, row := range rows {
		if len(row) != nc {
			return nil, fmt.Errorf("decode matrix: row %d has %d values, want %d", ri, len(row), nc)
		}
		for ci, v := range row {
			if v == nil {
				m.Set(ri, ci, math.NaN())
				continue
			}
			m.Set(ri, ci, *v)
		}
	}
	return m, nil
}
