package duckdb

import (
	"context"
	"fmt"
	"time"

	"github.com/inodb/gvfsort/internal/sorter"
)

// Record appends one file outcome to the ledger.
func (s *Store) Record(ctx context.Context, rec sorter.RunRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO sort_runs (
		run_id, recorded_at, path, size, mod_time,
		header_lines, data_lines, compressed, already_sorted, check_only,
		status, error, duration_us
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.RecordedAt.UTC(), rec.Path, rec.Size, rec.ModTime.UTC(),
		rec.HeaderLines, rec.DataLines, rec.Compressed, rec.AlreadySorted, rec.CheckOnly,
		rec.Status, rec.Error, rec.Duration.Microseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}
	return nil
}

// Runs returns the most recent ledger rows, newest first.
// A limit of 0 or less returns every row.
func (s *Store) Runs(ctx context.Context, limit int) ([]sorter.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM sort_runs ORDER BY recorded_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryRuns(ctx, query, args...)
}

// RunFiles returns the rows of a single run in the order they were recorded.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]sorter.RunRecord, error) {
	return s.queryRuns(ctx,
		`SELECT `+runColumns+` FROM sort_runs WHERE run_id = ? ORDER BY recorded_at`,
		runID)
}

// ClearRuns removes all ledger rows.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM sort_runs")
	return err
}

const runColumns = `run_id, recorded_at, path, size, mod_time,
	header_lines, data_lines, compressed, already_sorted, check_only,
	status, error, duration_us`

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]sorter.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var recs []sorter.RunRecord
	for rows.Next() {
		var rec sorter.RunRecord
		var durationUS int64
		if err := rows.Scan(
			&rec.RunID, &rec.RecordedAt, &rec.Path, &rec.Size, &rec.ModTime,
			&rec.HeaderLines, &rec.DataLines, &rec.Compressed, &rec.AlreadySorted, &rec.CheckOnly,
			&rec.Status, &rec.Error, &durationUS,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Duration = time.Duration(durationUS) * time.Microsecond
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return recs, nil
}
