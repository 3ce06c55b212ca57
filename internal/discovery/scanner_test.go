package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "utp-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	for _, dir := range []string{"fixtures/cppunit", "fixtures/gtest", "storage", "testdata"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatalf("failed to create dir %s: %v", dir, err)
		}
	}

	// Executable fixture binaries
	executables := []string{
		"fixtures/cppunit/cppunit-failing",
		"fixtures/cppunit/cppunit-passing",
		"fixtures/gtest/gtest-failing",
	}
	for _, file := range executables {
		if err := os.WriteFile(filepath.Join(tmpDir, file), []byte("bin"), 0755); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	// Files that must not be picked up: plain files, hidden files, and
	// executables under skipped directories
	if err := os.WriteFile(filepath.Join(tmpDir, "fixtures/notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "fixtures/.hidden-tool"), []byte("x"), 0755); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "storage/old-binary"), []byte("x"), 0755); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "testdata/helper"), []byte("x"), 0755); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	scanner := NewScanner([]string{"storage", "testdata"})

	t.Run("finds executable binaries only", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Errorf("expected 3 binaries, got %d: %v", len(results), results)
		}

		found := make(map[string]bool)
		for _, binary := range results {
			found[filepath.ToSlash(binary.RelPath)] = true
			if binary.Name != filepath.Base(binary.Path) {
				t.Errorf("expected name %s, got %s", filepath.Base(binary.Path), binary.Name)
			}
		}
		for _, rel := range executables {
			if !found[rel] {
				t.Errorf("expected to find %s, got %v", rel, results)
			}
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "plain.txt")
		os.WriteFile(testFile, []byte("x"), 0644)
		_, err := scanner.Scan(testFile)
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestScanner_SkipsHiddenDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".git/hooks"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".git/hooks/pre-commit"), []byte("x"), 0755); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "suite"), []byte("x"), 0700); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	results, err := NewScanner(nil).Scan(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Name != "suite" {
		t.Errorf("expected only the suite binary, got %v", results)
	}
}
