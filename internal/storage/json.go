package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"utp/internal/domain"
)

// Save writes run results and failures to the configured JSON output file.
func (s *JSONStorage) Save(results []domain.RunResult, failures []domain.CaseFailure, duration time.Duration, workers int) (*domain.ResultsOutput, error) {
	passed := 0
	failed := 0
	passedCases := 0
	for _, r := range results {
		if r.Success {
			passed++
		} else {
			failed++
		}
		failedCases := r.Counts.Failures + r.Counts.Errors
		if p := r.Counts.Tests - failedCases; p > 0 {
			passedCases += p
		}
	}

	output := &domain.ResultsOutput{
		Meta: domain.ResultsMeta{
			RunID:           uuid.New().String(),
			TotalBinaries:   len(results),
			FailedBinaries:  failed,
			PassedBinaries:  passed,
			FailedTestCases: len(failures),
			PassedTestCases: passedCases,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         workers,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}

	if err := s.SaveOutput(output); err != nil {
		return nil, err
	}
	return output, nil
}

// Load reads the last run results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.ResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.ResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file (e.g. after
// marking failures resolved).
func (s *JSONStorage) SaveOutput(output *domain.ResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
