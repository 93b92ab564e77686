// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package report turns pipeline results into etable.Table data:
per-subject accuracy (Table 1), per-subject and per-category exclusion
records (Table 2), and correlation matrices.  Tables can be written as
tab-separated files for plotting elsewhere, or rendered as text tables
for the console.
*/
package report
