// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/emer/splithalf/pipeline"
	"github.com/emer/splithalf/rsa"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created TEXT NOT NULL,
	note TEXT NOT NULL,
	categories TEXT NOT NULL,
	grand_average TEXT,
	mean_accuracy REAL
);
CREATE TABLE IF NOT EXISTS subjects (
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	pos INTEGER NOT NULL,
	subject TEXT NOT NULL,
	error TEXT,
	duration_ns INTEGER NOT NULL,
	categories TEXT,
	accuracy REAL,
	corr TEXT,
	PRIMARY KEY (run_id, pos)
);
CREATE TABLE IF NOT EXISTS exclusion (
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	pos INTEGER NOT NULL,
	category TEXT NOT NULL,
	original REAL,
	excluded REAL,
	drop_pct REAL,
	removed INTEGER NOT NULL
);
`

// ErrNotFound is returned for an unknown run id.
var ErrNotFound = errors.New("store: run not found")

// Store is a SQLite database of run summaries.
type Store struct {
	db   *sql.DB
	path string
}

// RunInfo describes one saved run.
type RunInfo struct {
	ID           int64
	Created      time.Time
	Note         string
	NSubjects    int
	NFailed      int
	MeanAccuracy float64
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "splithalf.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database path.
func (s *Store) Path() string { return s.path }

// SaveRun stores a run summary with a free-form note and returns its id.
func (s *Store) SaveRun(ctx context.Context, sm *pipeline.Summary, note string) (id int64, retErr error) {
	cats, err := encodeCategories(sm.Categories)
	if err != nil {
		return 0, err
	}
	avg, err := encodeMatrix(sm.GrandAverage)
	if err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs(created, note, categories, grand_average, mean_accuracy) VALUES(?,?,?,?,?)`,
		time.Now().UTC().Format(time.RFC3339Nano), note, cats, avg, nullFloat(sm.MeanAccuracy()))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for pos, oc := range sm.Outcomes {
		if err := saveOutcome(ctx, tx, id, pos, &oc); err != nil {
			return 0, fmt.Errorf("subject %s: %w", oc.Subject, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func saveOutcome(ctx context.Context, tx *sql.Tx, id int64, pos int, oc *pipeline.Outcome) error {
	if oc.Err != nil || oc.Result == nil {
		msg := "no result"
		if oc.Err != nil {
			msg = oc.Err.Error()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO subjects(run_id, pos, subject, error, duration_ns) VALUES(?,?,?,?,?)`,
			id, pos, oc.Subject, msg, int64(oc.Duration))
		return err
	}
	rs := oc.Result
	cats, err := encodeCategories(rs.Categories)
	if err != nil {
		return err
	}
	corr, err := encodeMatrix(rs.Corr)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO subjects(run_id, pos, subject, duration_ns, categories, accuracy, corr) VALUES(?,?,?,?,?,?,?)`,
		id, pos, oc.Subject, int64(oc.Duration), cats, nullFloat(rs.Accuracy), corr); err != nil {
		return err
	}
	for _, er := range rs.Exclusion {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO exclusion(run_id, pos, category, original, excluded, drop_pct, removed) VALUES(?,?,?,?,?,?,?)`,
			id, pos, er.Category, nullFloat(er.Original), nullFloat(er.Excluded), nullFloat(er.Drop), er.Removed); err != nil {
			return err
		}
	}
	return nil
}

// Runs lists the saved runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created, r.note, r.mean_accuracy,
			COUNT(s.pos), COUNT(s.error)
		FROM runs r LEFT JOIN subjects s ON s.run_id = r.id
		GROUP BY r.id ORDER BY r.id`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var infos []RunInfo
	for rows.Next() {
		var ri RunInfo
		var created string
		var acc sql.NullFloat64
		if err := rows.Scan(&ri.ID, &created, &ri.Note, &acc, &ri.NSubjects, &ri.NFailed); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if ri.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %d created: %w", ri.ID, err)
		}
		ri.MeanAccuracy = floatOrNaN(acc)
		infos = append(infos, ri)
	}
	return infos, rows.Err()
}

// LoadRun returns the summary saved under id.  Errors of failed subjects
// come back as plain error messages.
func (s *Store) LoadRun(ctx context.Context, id int64) (*pipeline.Summary, error) {
	var cats string
	var avg sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT categories, grand_average FROM runs WHERE id = ?`, id).Scan(&cats, &avg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	sm := &pipeline.Summary{}
	if sm.Categories, err = decodeCategories(cats); err != nil {
		return nil, err
	}
	if avg.Valid {
		if sm.GrandAverage, err = decodeMatrix(avg.String); err != nil {
			return nil, fmt.Errorf("grand average: %w", err)
		}
	}
	if err := s.loadOutcomes(ctx, id, sm); err != nil {
		return nil, err
	}
	if err := s.loadExclusion(ctx, id, sm); err != nil {
		return nil, err
	}
	return sm, nil
}

func (s *Store) loadOutcomes(ctx context.Context, id int64, sm *pipeline.Summary) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subject, error, duration_ns, categories, accuracy, corr
		FROM subjects WHERE run_id = ? ORDER BY pos`, id)
	if err != nil {
		return fmt.Errorf("select subjects: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var oc pipeline.Outcome
		var msg, cats, corr sql.NullString
		var dur int64
		var acc sql.NullFloat64
		if err := rows.Scan(&oc.Subject, &msg, &dur, &cats, &acc, &corr); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		oc.Duration = time.Duration(dur)
		if msg.Valid {
			oc.Err = errors.New(msg.String)
			sm.Outcomes = append(sm.Outcomes, oc)
			continue
		}
		rs := &pipeline.Result{Subject: oc.Subject, Accuracy: floatOrNaN(acc)}
		if rs.Categories, err = decodeCategories(cats.String); err != nil {
			return fmt.Errorf("subject %s: %w", oc.Subject, err)
		}
		if rs.Corr, err = decodeMatrix(corr.String); err != nil {
			return fmt.Errorf("subject %s: %w", oc.Subject, err)
		}
		oc.Result = rs
		sm.Outcomes = append(sm.Outcomes, oc)
	}
	return rows.Err()
}

func (s *Store) loadExclusion(ctx context.Context, id int64, sm *pipeline.Summary) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pos, category, original, excluded, drop_pct, removed
		FROM exclusion WHERE run_id = ? ORDER BY pos, rowid`, id)
	if err != nil {
		return fmt.Errorf("select exclusion: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var pos int
		var er rsa.ExclusionRecord
		var orig, excl, drop sql.NullFloat64
		if err := rows.Scan(&pos, &er.Category, &orig, &excl, &drop, &er.Removed); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		if pos < 0 || pos >= len(sm.Outcomes) || sm.Outcomes[pos].Result == nil {
			return fmt.Errorf("store: exclusion record for missing subject %d", pos)
		}
		er.Original = floatOrNaN(orig)
		er.Excluded = floatOrNaN(excl)
		er.Drop = floatOrNaN(drop)
		rs := sm.Outcomes[pos].Result
		rs.Exclusion = append(rs.Exclusion, er)
	}
	return rows.Err()
}

// DeleteRun removes a run and everything saved with it.
func (s *Store) DeleteRun(ctx context.Context, id int64) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	for _, tbl := range []string{"subjects", "exclusion"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+tbl+` WHERE run_id = ?`, id); err != nil {
			return fmt.Errorf("delete %s: %w", tbl, err)
		}
	}
	return tx.Commit()
}
