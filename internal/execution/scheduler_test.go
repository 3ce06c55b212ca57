package execution

import (
	"errors"
	"testing"

	"utp/internal/domain"
)

func TestFailedFirstScheduler_Order(t *testing.T) {
	binaries := []domain.Binary{
		{Path: "/tests/a", Name: "a"},
		{Path: "/tests/b", Name: "b"},
		{Path: "/tests/c", Name: "c"},
		{Path: "/tests/d", Name: "d"},
	}

	t.Run("failed binaries move to the front", func(t *testing.T) {
		s := NewFailedFirstScheduler([]string{"/tests/c", "/tests/a"})

		ordered := s.Order(binaries)

		expected := []string{"/tests/a", "/tests/c", "/tests/b", "/tests/d"}
		for i, path := range expected {
			if ordered[i].Path != path {
				t.Errorf("expected %s at position %d, got %s", path, i, ordered[i].Path)
			}
		}
	})

	t.Run("no recorded failures keeps discovery order", func(t *testing.T) {
		s := NewFailedFirstScheduler(nil)

		ordered := s.Order(binaries)

		for i := range binaries {
			if ordered[i].Path != binaries[i].Path {
				t.Errorf("expected %s at position %d, got %s", binaries[i].Path, i, ordered[i].Path)
			}
		}
	})

	t.Run("stale failed paths are ignored", func(t *testing.T) {
		s := NewFailedFirstScheduler([]string{"/tests/removed"})

		ordered := s.Order(binaries)

		if len(ordered) != len(binaries) {
			t.Fatalf("expected %d binaries, got %d", len(binaries), len(ordered))
		}
		if ordered[0].Path != "/tests/a" {
			t.Errorf("expected /tests/a first, got %s", ordered[0].Path)
		}
	})
}

func TestFIFOScheduler_Order(t *testing.T) {
	s := NewFIFOScheduler()
	binaries := []domain.Binary{{Path: "/tests/b"}, {Path: "/tests/a"}}

	ordered := s.Order(binaries)

	if len(ordered) != 2 || ordered[0].Path != "/tests/b" || ordered[1].Path != "/tests/a" {
		t.Errorf("expected order preserved, got %v", ordered)
	}
}

func TestCaseTally(t *testing.T) {
	tests := []struct {
		name           string
		result         domain.RunResult
		expectedPassed int
		expectedFailed int
	}{
		{
			name:           "all passed",
			result:         domain.RunResult{Success: true, Counts: domain.ReportCounts{Tests: 8}},
			expectedPassed: 8,
			expectedFailed: 0,
		},
		{
			name:           "failures and errors",
			result:         domain.RunResult{Counts: domain.ReportCounts{Tests: 8, Failures: 1, Errors: 1}},
			expectedPassed: 6,
			expectedFailed: 2,
		},
		{
			name:           "empty binary",
			result:         domain.RunResult{Success: true},
			expectedPassed: 0,
			expectedFailed: 0,
		},
		{
			name:           "unreadable report",
			result:         domain.RunResult{Error: errors.New("report for x: unrecognized report document")},
			expectedPassed: 0,
			expectedFailed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed, failed := caseTally(tt.result)
			if passed != tt.expectedPassed || failed != tt.expectedFailed {
				t.Errorf("expected %d/%d, got %d/%d", tt.expectedPassed, tt.expectedFailed, passed, failed)
			}
		})
	}
}
