package storage

import (
	"testing"
	"time"

	"utp/internal/config"
	"utp/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	return cfg
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	st := NewJSONStorage(testConfig(t))

	results := []domain.RunResult{
		{BinaryPath: "/tests/passing", Success: true, Counts: domain.ReportCounts{Tests: 8}},
		{BinaryPath: "/tests/failing", Counts: domain.ReportCounts{Tests: 8, Failures: 1, Errors: 1}},
	}
	failures := []domain.CaseFailure{
		{TestName: "Comparison::testGreater", BinaryPath: "/tests/failing", FailureType: domain.FaultAssertion},
		{TestName: "LogicalOp::testAnd", BinaryPath: "/tests/failing", FailureType: domain.FaultError},
	}

	saved, err := st.Save(results, failures, 1500*time.Millisecond, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved.Meta.RunID == "" {
		t.Error("expected a generated run id")
	}
	if saved.Meta.TotalBinaries != 2 || saved.Meta.PassedBinaries != 1 || saved.Meta.FailedBinaries != 1 {
		t.Errorf("unexpected binary counts: %+v", saved.Meta)
	}
	if saved.Meta.PassedTestCases != 14 {
		t.Errorf("expected 14 passed cases, got %d", saved.Meta.PassedTestCases)
	}
	if saved.Meta.FailedTestCases != 2 {
		t.Errorf("expected 2 failed cases, got %d", saved.Meta.FailedTestCases)
	}
	if saved.Meta.DurationSeconds != 1.5 {
		t.Errorf("expected 1.5s duration, got %f", saved.Meta.DurationSeconds)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Meta.RunID != saved.Meta.RunID {
		t.Errorf("expected run id %s, got %s", saved.Meta.RunID, loaded.Meta.RunID)
	}
	if len(loaded.Details) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(loaded.Details))
	}
	if loaded.Details[0].TestName != "Comparison::testGreater" {
		t.Errorf("unexpected first failure: %+v", loaded.Details[0])
	}
}

func TestJSONStorage_SaveOutputKeepsResolved(t *testing.T) {
	st := NewJSONStorage(testConfig(t))

	if _, err := st.Save(nil, []domain.CaseFailure{{TestName: "Suite::case"}}, 0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := st.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output.Details[0].Resolved = true
	if err := st.SaveOutput(output); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := st.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reloaded.Details[0].Resolved {
		t.Error("expected resolved flag to persist")
	}
}

func TestJSONStorage_LoadMissingFile(t *testing.T) {
	st := NewJSONStorage(testConfig(t))

	if _, err := st.Load(); err == nil {
		t.Error("expected error when no results file exists")
	}
}
