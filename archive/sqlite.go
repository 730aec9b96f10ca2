// SPDX-License-Identifier: MIT

package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ZhengKeli/OpticalInterpretation/report"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps reports in a single SQLite file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore returns a store backed by the file at path. Call Init before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the schema. Calling it twice is a no-op.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return archiveErrorf("SQLiteStore.Init", ErrPathRequired)
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return archiveErrorf("SQLiteStore.Init", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return archiveErrorf("SQLiteStore.Init", err)
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return archiveErrorf("SQLiteStore.Init", err)
	}

	s.db = db

	return nil
}

func (s *SQLiteStore) SaveReport(ctx context.Context, r *report.Report) error {
	if r == nil || r.RunID == "" {
		return archiveErrorf("SQLiteStore.SaveReport", ErrNilReport)
	}
	db, err := s.getDB()
	if err != nil {
		return archiveErrorf("SQLiteStore.SaveReport", err)
	}
	payload, err := EncodeReport(r)
	if err != nil {
		return archiveErrorf("SQLiteStore.SaveReport", err)
	}

	sum := Summarize(r)
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (run_id, model, created_at, states, samples, final, codec_version, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			model = excluded.model,
			created_at = excluded.created_at,
			states = excluded.states,
			samples = excluded.samples,
			final = excluded.final,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, sum.RunID, sum.Model, sum.CreatedAt.UnixNano(),
		sum.States, sum.Samples, sum.Final, CurrentCodecVersion, payload)
	if err != nil {
		return archiveErrorf("SQLiteStore.SaveReport", err)
	}

	return nil
}

func (s *SQLiteStore) GetReport(ctx context.Context, runID string) (*report.Report, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, archiveErrorf("SQLiteStore.GetReport", err)
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE run_id = ?`, runID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, archiveErrorf("SQLiteStore.GetReport", err)
	}

	r, err := DecodeReport(payload)
	if err != nil {
		return nil, false, archiveErrorf("SQLiteStore.GetReport", fmt.Errorf("decode %s: %w", runID, err))
	}

	return r, true, nil
}

// ListReports returns summaries ordered by creation time, then run id.
func (s *SQLiteStore) ListReports(ctx context.Context) ([]Summary, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, archiveErrorf("SQLiteStore.ListReports", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT run_id, model, created_at, states, samples, final
		FROM runs
		ORDER BY created_at, run_id
	`)
	if err != nil {
		return nil, archiveErrorf("SQLiteStore.ListReports", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			created int64
		)
		if err := rows.Scan(&sum.RunID, &sum.Model, &created, &sum.States, &sum.Samples, &sum.Final); err != nil {
			return nil, archiveErrorf("SQLiteStore.ListReports", err)
		}
		sum.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, archiveErrorf("SQLiteStore.ListReports", err)
	}

	return out, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil

	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}

	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			created_at INTEGER NOT NULL, -- unix nanoseconds
			states INTEGER NOT NULL,
			samples INTEGER NOT NULL,
			final INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS runs_created_at ON runs (created_at);
	`)

	return err
}
