package parser

import "utp/internal/domain"

// Parser parses report documents and extracts failures
type Parser interface {
	Parse(doc []byte) ([]domain.CaseResult, domain.ReportCounts, error)
	ParseFailure(result domain.RunResult) []domain.CaseFailure
}
