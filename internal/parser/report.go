package parser

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"utp/internal/domain"
	"utp/internal/report"
)

// XMLReportParser reads both report dialects into normalized case results
type XMLReportParser struct{}

// NewXMLReportParser creates a new XMLReportParser
func NewXMLReportParser() *XMLReportParser {
	return &XMLReportParser{}
}

// Parse detects the report dialect and extracts every case in run order,
// together with the totals the document declares.
func (p *XMLReportParser) Parse(doc []byte) ([]domain.CaseResult, domain.ReportCounts, error) {
	switch report.Detect(doc) {
	case report.KindCppUnit:
		run, err := report.ParseCppUnit(bytes.NewReader(doc))
		if err != nil {
			return nil, domain.ReportCounts{}, err
		}
		cases, counts := p.fromCppUnit(run)
		return cases, counts, nil
	case report.KindXUnit:
		xu, err := report.ParseXUnit(bytes.NewReader(doc))
		if err != nil {
			return nil, domain.ReportCounts{}, err
		}
		cases, counts := p.fromXUnit(xu)
		return cases, counts, nil
	default:
		return nil, domain.ReportCounts{}, fmt.Errorf("unrecognized report document")
	}
}

// ParseFailure converts the failed cases of a run into failure records
func (p *XMLReportParser) ParseFailure(result domain.RunResult) []domain.CaseFailure {
	var failures []domain.CaseFailure

	for _, c := range result.Cases {
		if c.Passed {
			continue
		}
		failures = append(failures, domain.CaseFailure{
			TestName:    c.Qualified(),
			BinaryPath:  result.BinaryPath,
			FailureType: c.FaultType,
			File:        c.File,
			Line:        c.Line,
			Message:     c.Message,
		})
	}

	return failures
}

// fromCppUnit flattens a TestRun document. The two sections are interleaved
// back into run order using the id attribute.
func (p *XMLReportParser) fromCppUnit(run *report.CppUnitRun) ([]domain.CaseResult, domain.ReportCounts) {
	type entry struct {
		id int
		c  domain.CaseResult
	}
	entries := make([]entry, 0, len(run.Failed)+len(run.Successful))

	for _, f := range run.Failed {
		suite, name := splitCase(f.Name)
		c := domain.CaseResult{
			Suite:     suite,
			Name:      name,
			FaultType: f.FailureType,
			Message:   f.Message,
		}
		if f.Location != nil {
			c.File = f.Location.File
			c.Line = f.Location.Line
		}
		entries = append(entries, entry{f.ID, c})
	}
	for _, t := range run.Successful {
		suite, name := splitCase(t.Name)
		entries = append(entries, entry{t.ID, domain.CaseResult{Suite: suite, Name: name, Passed: true}})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	cases := make([]domain.CaseResult, len(entries))
	for i, e := range entries {
		cases[i] = e.c
	}
	counts := domain.ReportCounts{
		Tests:    run.Statistics.Tests,
		Failures: run.Statistics.Failures,
		Errors:   run.Statistics.Errors,
	}
	return cases, counts
}

// fromXUnit flattens a testsuites document
func (p *XMLReportParser) fromXUnit(doc *report.XUnitDoc) ([]domain.CaseResult, domain.ReportCounts) {
	var cases []domain.CaseResult

	for _, s := range doc.Suites {
		for _, tc := range s.Cases {
			c := domain.CaseResult{
				Suite:  tc.ClassName,
				Name:   tc.Name,
				Passed: tc.Passed(),
			}
			if c.Suite == "" {
				c.Suite = s.Name
			}
			if !c.Passed {
				c.FaultType, c.Message = firstFault(tc)
			}
			cases = append(cases, c)
		}
	}

	counts := domain.ReportCounts{
		Tests:    doc.Tests,
		Failures: doc.Failures,
		Errors:   doc.Errors,
	}
	return cases, counts
}

// firstFault picks the fault that decides the case outcome. Errors outrank
// assertion failures.
func firstFault(tc report.XUnitCase) (faultType, message string) {
	var fault report.XUnitFault
	faultType = domain.FaultAssertion
	if len(tc.Errors) > 0 {
		fault = tc.Errors[0]
		faultType = domain.FaultError
	} else if len(tc.Failures) > 0 {
		fault = tc.Failures[0]
	}
	if fault.Type != "" {
		faultType = fault.Type
	}
	message = fault.Body
	if strings.TrimSpace(message) == "" {
		message = fault.Message
	}
	return faultType, message
}

func splitCase(name string) (suite, caseName string) {
	before, after, found := strings.Cut(name, "::")
	if !found || before == "" {
		return "", name
	}
	return before, after
}
