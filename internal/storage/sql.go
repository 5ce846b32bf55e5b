package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"stp/internal/domain"
)

// SchemaStatements create the history tables; they are valid for sqlite3 and mysql
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS stp_runs (
	run_id VARCHAR(36) NOT NULL PRIMARY KEY,
	started_at VARCHAR(40) NOT NULL,
	executable VARCHAR(1024) NOT NULL,
	total INTEGER NOT NULL,
	passed INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	errored INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	duration_ms BIGINT NOT NULL,
	workers INTEGER NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS stp_results (
	run_id VARCHAR(36) NOT NULL,
	test_name VARCHAR(512) NOT NULL,
	status VARCHAR(16) NOT NULL,
	exit_code INTEGER NOT NULL,
	message TEXT NOT NULL,
	diff TEXT NOT NULL,
	duration_ms BIGINT NOT NULL,
	PRIMARY KEY (run_id, test_name)
)`,
}

// RunRecord is one row of the run history
type RunRecord struct {
	RunID      string
	StartedAt  string
	Executable string
	Summary    domain.RunSummary
	Duration   time.Duration
	Workers    int
}

// SQLStorage keeps the run history in a database/sql backend
type SQLStorage struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

// OpenSQL opens the history database with the given driver ("sqlite3" or "mysql")
func OpenSQL(driver, dsn string) (*SQLStorage, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s history: %w", driver, err)
	}
	if driver == "sqlite3" {
		// A single connection keeps in-memory databases shared and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}
	return &SQLStorage{db: db}, nil
}

// DB exposes the underlying handle
func (s *SQLStorage) DB() *sql.DB {
	return s.db
}

// EnsureSchema creates the history tables if they do not exist
func (s *SQLStorage) EnsureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		for _, stmt := range SchemaStatements {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				s.schemaErr = fmt.Errorf("create history schema: %w", err)
				return
			}
		}
	})
	return s.schemaErr
}

// Record stores a run and its per-test results in one transaction
func (s *SQLStorage) Record(ctx context.Context, output *domain.TestResultsOutput, results []domain.TestResult) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	meta := output.Meta
	_, err = tx.ExecContext(ctx,
		`INSERT INTO stp_runs (run_id, started_at, executable, total, passed, failed, errored, skipped, duration_ms, workers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RunID, meta.Timestamp, meta.Executable, meta.Total, meta.Passed, meta.Failed,
		meta.Errored, meta.Skipped, int64(meta.DurationSeconds*1000), meta.Workers,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", meta.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stp_results (run_id, test_name, status, exit_code, message, diff, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare result insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.ExecContext(ctx, meta.RunID, r.Name, string(r.Status), r.ExitCode, r.Error, r.Diff, r.Duration.Milliseconds()); err != nil {
			return fmt.Errorf("insert result %s: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first
func (s *SQLStorage) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, executable, total, passed, failed, errored, skipped, duration_ms, workers
		FROM stp_runs ORDER BY started_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var durationMS int64
		if err := rows.Scan(&rec.RunID, &rec.StartedAt, &rec.Executable,
			&rec.Summary.Total, &rec.Summary.Passed, &rec.Summary.Failed,
			&rec.Summary.Errored, &rec.Summary.Skipped, &durationMS, &rec.Workers); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Results returns the per-test results of one run, ordered by name
func (s *SQLStorage) Results(ctx context.Context, runID string) ([]domain.TestResult, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT test_name, status, exit_code, message, diff, duration_ms
		FROM stp_results WHERE run_id = ? ORDER BY test_name`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results of %s: %w", runID, err)
	}
	defer rows.Close()

	var results []domain.TestResult
	for rows.Next() {
		var r domain.TestResult
		var status string
		var durationMS int64
		if err := rows.Scan(&r.Name, &status, &r.ExitCode, &r.Error, &r.Diff, &durationMS); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Status = domain.Status(status)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close releases the database handle
func (s *SQLStorage) Close() error {
	return s.db.Close()
}
