package parser

import (
	"strings"

	"utp/internal/domain"
)

// ListingParser parses the hierarchy a binary prints for its list flag
type ListingParser struct{}

// NewListingParser creates a new ListingParser
func NewListingParser() *ListingParser {
	return &ListingParser{}
}

// Parse reads a depth-first listing into suites and cases. A line ending
// with a dot opens a suite and the indented lines below it are its cases.
// Anything after a # is discarded, and lines that fit neither shape are
// skipped.
func (p *ListingParser) Parse(binaryPath, output string) domain.Listing {
	listing := domain.Listing{BinaryPath: binaryPath}

	for _, raw := range strings.Split(output, "\n") {
		line, _, _ := strings.Cut(raw, "#")
		line = strings.TrimRight(line, " \t\r")
		name := strings.TrimLeft(line, " \t")

		if strings.HasSuffix(line, ".") && len(name) > 1 {
			listing.Suites = append(listing.Suites, domain.SuiteListing{
				Name: strings.TrimSuffix(name, "."),
			})
			continue
		}

		// Indented lines belong to the suite above them
		if len(listing.Suites) > 0 && line != name && name != "" {
			suite := &listing.Suites[len(listing.Suites)-1]
			suite.Cases = append(suite.Cases, name)
		}
	}

	return listing
}
