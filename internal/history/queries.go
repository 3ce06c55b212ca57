package history

import (
	"fmt"
	"time"

	"utp/internal/domain"
)

// RunSummary is one stored run
type RunSummary struct {
	RunID           string
	TotalBinaries   int
	PassedBinaries  int
	FailedBinaries  int
	PassedTestCases int
	FailedTestCases int
	DurationSeconds float64
	Workers         int
	Timestamp       string
}

// RecordRun stores a finished run together with its failures
func (s *Store) RecordRun(output *domain.ResultsOutput) error {
	createdAt := output.Meta.Timestamp
	if createdAt == "" {
		createdAt = time.Now().Format(time.RFC3339Nano)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, total_binaries, passed_binaries, failed_binaries,
			passed_cases, failed_cases, duration_seconds, workers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		output.Meta.RunID,
		output.Meta.TotalBinaries,
		output.Meta.PassedBinaries,
		output.Meta.FailedBinaries,
		output.Meta.PassedTestCases,
		output.Meta.FailedTestCases,
		output.Meta.DurationSeconds,
		output.Meta.Workers,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	for _, failure := range output.Details {
		_, err = tx.Exec(
			`INSERT INTO run_failures (run_id, test_name, binary_path, failure_type, file, line, message)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			output.Meta.RunID,
			failure.TestName,
			failure.BinaryPath,
			failure.FailureType,
			failure.File,
			failure.Line,
			failure.Message,
		)
		if err != nil {
			return fmt.Errorf("failed to record failure: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns every run.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	query := `SELECT run_id, total_binaries, passed_binaries, failed_binaries,
		passed_cases, failed_cases, duration_seconds, workers, created_at
	FROM runs ORDER BY created_at DESC, run_id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(
			&r.RunID, &r.TotalBinaries, &r.PassedBinaries, &r.FailedBinaries,
			&r.PassedTestCases, &r.FailedTestCases, &r.DurationSeconds, &r.Workers, &r.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunFailures returns the failures stored for a run
func (s *Store) RunFailures(runID string) ([]domain.CaseFailure, error) {
	rows, err := s.db.Query(
		`SELECT test_name, binary_path, failure_type, file, line, message
		FROM run_failures WHERE run_id = ?`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load failures: %w", err)
	}
	defer rows.Close()

	var failures []domain.CaseFailure
	for rows.Next() {
		var f domain.CaseFailure
		if err := rows.Scan(&f.TestName, &f.BinaryPath, &f.FailureType, &f.File, &f.Line, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

// Prune removes all but the newest keep runs and returns how many were
// deleted
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	runs, err := s.ListRuns(0)
	if err != nil {
		return 0, err
	}
	if len(runs) <= keep {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to start history transaction: %w", err)
	}
	defer tx.Rollback()

	removed := 0
	for _, run := range runs[keep:] {
		if _, err := tx.Exec("DELETE FROM run_failures WHERE run_id = ?", run.RunID); err != nil {
			return 0, fmt.Errorf("failed to prune failures: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM runs WHERE run_id = ?", run.RunID); err != nil {
			return 0, fmt.Errorf("failed to prune run: %w", err)
		}
		removed++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return removed, nil
}
