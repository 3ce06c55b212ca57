package fixture

import (
	"io"
	"strings"

	"utp/internal/harness"
	"utp/internal/report"
)

func writeReport(w io.Writer, dialect report.Kind, col *harness.Collector) error {
	if dialect == report.KindXUnit {
		return report.WriteXUnit(w, BuildXUnit(col))
	}
	return report.WriteCppUnit(w, BuildCppUnit(col))
}

// BuildCppUnit shapes collected results as a TestRun document. A failed
// case contributes its first recorded failure.
func BuildCppUnit(col *harness.Collector) *report.CppUnitRun {
	doc := &report.CppUnitRun{}
	for _, res := range col.Results() {
		if res.Outcome == harness.Pass {
			doc.Successful = append(doc.Successful, report.CppUnitTest{ID: res.ID, Name: res.Name})
			continue
		}
		f := res.FirstFailure()
		failed := report.CppUnitFailure{
			ID:          res.ID,
			Name:        res.Name,
			FailureType: f.Kind,
			Message:     f.Message,
		}
		if f.File != "" {
			failed.Location = &report.CppUnitLocation{File: f.File, Line: f.Line}
		}
		doc.Failed = append(doc.Failed, failed)
	}
	doc.Statistics = report.CppUnitStats{
		Tests:         col.Tests(),
		FailuresTotal: col.FailuresTotal(),
		Errors:        col.Errors(),
		Failures:      col.Failures(),
	}
	return doc
}

// BuildXUnit shapes collected results as a testsuites document, grouping
// cases under their suites in run order. Every recorded failure of a case
// becomes its own fault entry.
func BuildXUnit(col *harness.Collector) *report.XUnitDoc {
	doc := &report.XUnitDoc{Name: "AllTests", Timestamp: report.Now()}
	index := make(map[string]int)
	for _, res := range col.Results() {
		suiteName, caseName := splitName(res.Name)
		i, ok := index[suiteName]
		if !ok {
			doc.Suites = append(doc.Suites, report.XUnitSuite{Name: suiteName, Timestamp: doc.Timestamp})
			i = len(doc.Suites) - 1
			index[suiteName] = i
		}
		suite := &doc.Suites[i]

		c := report.XUnitCase{
			Name:      caseName,
			ClassName: suiteName,
			Status:    "run",
			Time:      res.Duration.Seconds(),
		}
		for _, f := range res.Failures {
			fault := report.Fault(f.Kind, f.Message, f.File, f.Line)
			if f.Kind == harness.KindError {
				c.Errors = append(c.Errors, fault)
			} else {
				c.Failures = append(c.Failures, fault)
			}
		}

		suite.Cases = append(suite.Cases, c)
		suite.Tests++
		suite.Time += c.Time
		// A case counts once; an error outranks recorded failures
		if len(c.Errors) > 0 {
			suite.Errors++
		} else if len(c.Failures) > 0 {
			suite.Failures++
		}
	}
	for _, s := range doc.Suites {
		doc.Tests += s.Tests
		doc.Failures += s.Failures
		doc.Errors += s.Errors
		doc.Time += s.Time
	}
	return doc
}

// splitName splits a qualified Suite::case name. Unqualified names land
// under a default suite.
func splitName(name string) (suite, caseName string) {
	if before, after, found := strings.Cut(name, "::"); found && before != "" {
		return before, after
	}
	return "tests", name
}
