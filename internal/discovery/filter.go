package discovery

import (
	"path/filepath"
	"strings"

	"utp/internal/domain"
)

// Filter filters test binaries by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test binaries by name pattern using wildcard
// matching. Supports patterns like "cppunit-*" or "*failing*".
func (f *Filter) FilterByName(binaries []domain.Binary, pattern string) []domain.Binary {
	if pattern == "" {
		return binaries
	}

	var filtered []domain.Binary
	for _, binary := range binaries {
		if matchName(binary.Name, pattern) {
			filtered = append(filtered, binary)
		}
	}
	return filtered
}

// matchName applies the matching ladder: a glob match first, then a looser
// all-parts-contained check for patterns with a star, then plain substring
// containment for patterns without wildcards.
func matchName(name, pattern string) bool {
	if ok, err := filepath.Match(pattern, name); err == nil && ok {
		return true
	}

	if strings.ContainsAny(pattern, "*?") {
		if !strings.Contains(pattern, "*") {
			return false
		}
		matchedPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			matchedPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return matchedPart
	}

	return strings.Contains(name, pattern)
}
