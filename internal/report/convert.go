package report

import (
	"sort"
	"strings"
)

// CppUnitToXUnit converts a TestRun document to the testsuites shape.
// Qualified names split at the first :: into suite and case; names with no
// qualifier land under defaultSuite. Run order is restored from the id
// attributes, and suites appear in first-seen order.
func CppUnitToXUnit(run *CppUnitRun, defaultSuite string) *XUnitDoc {
	type record struct {
		id    int
		suite string
		c     XUnitCase
	}

	records := make([]record, 0, len(run.Failed)+len(run.Successful))
	for _, f := range run.Failed {
		suite, caseName := splitQualified(f.Name, defaultSuite)
		c := XUnitCase{Name: caseName, ClassName: suite, Status: "run"}
		var file string
		var line int
		if f.Location != nil {
			file = f.Location.File
			line = f.Location.Line
		}
		fault := Fault(f.FailureType, f.Message, file, line)
		if f.FailureType == "Error" {
			c.Errors = append(c.Errors, fault)
		} else {
			c.Failures = append(c.Failures, fault)
		}
		records = append(records, record{id: f.ID, suite: suite, c: c})
	}
	for _, s := range run.Successful {
		suite, caseName := splitQualified(s.Name, defaultSuite)
		records = append(records, record{
			id:    s.ID,
			suite: suite,
			c:     XUnitCase{Name: caseName, ClassName: suite, Status: "run"},
		})
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].id < records[j].id })

	doc := &XUnitDoc{Name: "AllTests"}
	index := make(map[string]int)
	for _, rec := range records {
		i, ok := index[rec.suite]
		if !ok {
			doc.Suites = append(doc.Suites, XUnitSuite{Name: rec.suite})
			i = len(doc.Suites) - 1
			index[rec.suite] = i
		}
		suite := &doc.Suites[i]
		suite.Cases = append(suite.Cases, rec.c)
		suite.Tests++
		if len(rec.c.Failures) > 0 {
			suite.Failures++
		}
		if len(rec.c.Errors) > 0 {
			suite.Errors++
		}
	}
	for _, s := range doc.Suites {
		doc.Tests += s.Tests
		doc.Failures += s.Failures
		doc.Errors += s.Errors
	}
	return doc
}

// MergeXUnit combines several testsuites documents into one. Suites are
// concatenated in document order and the top-level counters recomputed.
func MergeXUnit(docs ...*XUnitDoc) *XUnitDoc {
	merged := &XUnitDoc{Name: "AllTests"}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		merged.Suites = append(merged.Suites, doc.Suites...)
		merged.Tests += doc.Tests
		merged.Failures += doc.Failures
		merged.Errors += doc.Errors
		merged.Time += doc.Time
		if merged.Timestamp == "" {
			merged.Timestamp = doc.Timestamp
		}
	}
	return merged
}

func splitQualified(name, defaultSuite string) (suite, caseName string) {
	before, after, found := strings.Cut(name, "::")
	if !found || before == "" {
		return defaultSuite, name
	}
	return before, after
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
