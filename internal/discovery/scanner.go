package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"utp/internal/domain"
)

// Scanner scans for test binaries in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all test binaries in the given root directory. A test binary
// is a regular file with an execute bit set.
func (s *Scanner) Scan(root string) ([]domain.Binary, error) {
	var binaries []domain.Binary

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("fixture path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixture path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		// Hidden files are never test binaries
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}
		if isExecutable(fi) {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			binaries = append(binaries, domain.Binary{
				Path:    path,
				RelPath: rel,
				Name:    d.Name(),
			})
		}

		return nil
	})

	return binaries, err
}

// isExecutable reports whether the file is a regular file with any execute
// bit set.
func isExecutable(info os.FileInfo) bool {
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}
