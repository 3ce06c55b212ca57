package report

import (
	"strings"
	"testing"
)

func TestWriteXUnit(t *testing.T) {
	doc := &XUnitDoc{
		Name:      "AllTests",
		Tests:     2,
		Failures:  1,
		Timestamp: "2026-08-22T10:00:00",
		Suites: []XUnitSuite{
			{
				Name:     "SquareRootTest",
				Tests:    2,
				Failures: 1,
				Cases: []XUnitCase{
					{
						Name:      "PositiveNos",
						ClassName: "SquareRootTest",
						Status:    "run",
						Failures: []XUnitFault{
							{Message: "expected 25.4 within 1e-06, got 25", Type: "Assertion", Body: "equality assertion failed: expected 25.4 within 1e-06, got 25"},
						},
					},
					{Name: "NegativeNos", ClassName: "SquareRootTest", Status: "run"},
				},
			},
		},
	}

	var sb strings.Builder
	if err := WriteXUnit(&sb, doc); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		`<testsuites name="AllTests" tests="2" failures="1" errors="0" time="0" timestamp="2026-08-22T10:00:00">`,
		`<testsuite name="SquareRootTest" tests="2" failures="1" errors="0" time="0">`,
		`<testcase name="NegativeNos" classname="SquareRootTest" status="run" time="0">`,
		`<failure message="expected 25.4 within 1e-06, got 25" type="Assertion">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected report to contain %q, got:\n%s", want, out)
		}
	}
}

func TestParseXUnit(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<testsuites tests="4" failures="2" disabled="0" errors="0" time="0.002" timestamp="2026-08-22T09:00:00" name="AllTests">
  <testsuite name="SquareRootTest" tests="2" failures="1" disabled="0" skipped="0" errors="0" time="0.001">
    <testcase name="PositiveNos" status="run" result="completed" time="0.001" classname="SquareRootTest">
      <failure message="first check" type=""><![CDATA[equality assertion failed: expected 25.4, got 25]]></failure>
    </testcase>
    <testcase name="NegativeNos" status="run" result="completed" time="0" classname="SquareRootTest"/>
  </testsuite>
  <testsuite name="SquareRootTestNonFatal" tests="2" failures="1" errors="0" time="0.001">
    <testcase name="PositiveNos" status="run" time="0" classname="SquareRootTestNonFatal">
      <failure message="first check" type=""><![CDATA[first]]></failure>
      <failure message="second check" type=""><![CDATA[second]]></failure>
    </testcase>
    <testcase name="NegativeNos" status="run" time="0" classname="SquareRootTestNonFatal"/>
  </testsuite>
</testsuites>
`
	doc, err := ParseXUnit(strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if doc.Tests != 4 || doc.Failures != 2 {
		t.Errorf("unexpected top level counts %d/%d", doc.Tests, doc.Failures)
	}
	if len(doc.Suites) != 2 {
		t.Fatalf("expected 2 suites, got %d", len(doc.Suites))
	}

	fatal := doc.Suites[0]
	if fatal.Name != "SquareRootTest" || fatal.Tests != 2 || fatal.Failures != 1 {
		t.Errorf("unexpected suite %+v", fatal)
	}
	if len(fatal.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(fatal.Cases))
	}
	if fatal.Cases[0].Passed() {
		t.Errorf("expected PositiveNos to carry a fault")
	}
	if !fatal.Cases[1].Passed() {
		t.Errorf("expected NegativeNos to pass")
	}
	if got := fatal.Cases[0].Failures[0].Body; got != "equality assertion failed: expected 25.4, got 25" {
		t.Errorf("unexpected fault body %q", got)
	}

	nonFatal := doc.Suites[1]
	if len(nonFatal.Cases[0].Failures) != 2 {
		t.Errorf("expected 2 recorded failures, got %d", len(nonFatal.Cases[0].Failures))
	}
}
