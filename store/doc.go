// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package store saves the summaries of pipeline runs in a SQLite database
(modernc.org/sqlite, no cgo), so results of different runs and settings
can be listed and compared later.

Undefined (NaN) values are stored as SQL NULL, and as JSON null inside
the serialized correlation matrices, and come back as NaN.
*/
package store
