package fixture

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"utp/internal/harness"
	"utp/internal/report"
)

func sampleRegistry() *harness.Registry {
	r := harness.NewRegistry()
	r.Register(&harness.Suite{Name: "Comparison", Cases: []harness.Case{
		{Name: "testEqual", Run: func(t *harness.T) { t.Assert(false, "value1 == value2") }},
		{Name: "testGreater", Run: func(t *harness.T) { t.Assert(true, "value1 > 0") }},
	}})
	r.Register(&harness.Suite{Name: "LogicalOp", Cases: []harness.Case{
		{Name: "testNot", Run: func(t *harness.T) { t.Assert(true, "!vFalse") }},
	}})
	return r
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, sampleRegistry().Tree(), 0)

	want := "Comparison.\n" +
		"  testEqual\n" +
		"  testGreater\n" +
		"LogicalOp.\n" +
		"  testNot\n"
	if buf.String() != want {
		t.Errorf("unexpected listing:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestDumpNestedDepth(t *testing.T) {
	root := &harness.Node{Name: harness.RootName, Children: []*harness.Node{
		{Name: "Outer", Children: []*harness.Node{
			{Name: "Outer::Inner", Children: []*harness.Node{
				{Name: "Outer::Inner::deep"},
			}},
		}},
	}}

	var buf bytes.Buffer
	Dump(&buf, root, 0)

	want := "Outer.\n" +
		"  Inner\n" +
		"    deep\n"
	if buf.String() != want {
		t.Errorf("unexpected listing:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestDumpEmptyRegistry(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, harness.NewRegistry().Tree(), 0)
	if buf.Len() != 0 {
		t.Errorf("expected empty listing, got %q", buf.String())
	}
}

func TestFind(t *testing.T) {
	r := harness.NewRegistry()
	r.Register(&harness.Suite{Name: "Alpha", Cases: []harness.Case{
		{Name: "testCommon", Run: func(*harness.T) {}},
		{Name: "testAlpha", Run: func(*harness.T) {}},
	}})
	r.Register(&harness.Suite{Name: "Beta", Cases: []harness.Case{
		{Name: "testCommon", Run: func(*harness.T) {}},
	}})
	root := r.Tree()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"full name", "Alpha::testAlpha", "Alpha::testAlpha"},
		{"bare case name", "testAlpha", "Alpha::testAlpha"},
		{"suite name", "Beta", "Beta"},
		{"root name", "All Tests", "All Tests"},
		{"first match wins", "testCommon", "Alpha::testCommon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := Find(root, tt.query)
			if found == nil {
				t.Fatalf("expected a match for %q", tt.query)
			}
			if found.Name != tt.want {
				t.Errorf("expected %q, got %q", tt.want, found.Name)
			}
		})
	}

	if found := Find(root, "missing"); found != nil {
		t.Errorf("expected no match, got %q", found.Name)
	}
	if found := Find(nil, "anything"); found != nil {
		t.Errorf("expected nil root to match nothing")
	}
}

func TestMainList(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Main(Options{
		Prog:     "tests",
		Registry: sampleRegistry(),
		Stdout:   &stdout,
		Stderr:   &stderr,
	}, []string{"-l"})

	if code != RetOK {
		t.Fatalf("expected exit code %d, got %d", RetOK, code)
	}
	if !strings.HasPrefix(stdout.String(), "Comparison.\n") {
		t.Errorf("unexpected listing output %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "TestRun") {
		t.Errorf("expected no report after -l, got %q", stdout.String())
	}
}

func TestMainUsage(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"-z"}} {
		var stdout, stderr bytes.Buffer
		code := Main(Options{
			Prog:     "tests",
			Registry: sampleRegistry(),
			Stdout:   &stdout,
			Stderr:   &stderr,
		}, args)

		if code != RetUsage {
			t.Errorf("expected exit code %d for %v, got %d", RetUsage, args, code)
		}
		if !strings.Contains(stdout.String(), "Usage: tests [ -l | -h | -t test] [ -y path]") {
			t.Errorf("expected usage text for %v, got %q", args, stdout.String())
		}
	}
}

func TestMainRunAll(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Main(Options{
		Prog:     "tests",
		Registry: sampleRegistry(),
		Stdout:   &stdout,
		Stderr:   &stderr,
	}, nil)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	doc, err := report.ParseCppUnit(strings.NewReader(stdout.String()))
	if err != nil {
		t.Fatalf("expected a TestRun report on stdout, got %v", err)
	}
	if doc.Statistics.Tests != 3 || doc.Statistics.Failures != 1 {
		t.Errorf("unexpected statistics %+v", doc.Statistics)
	}
	if len(doc.Failed) != 1 || doc.Failed[0].Name != "Comparison::testEqual" {
		t.Errorf("unexpected failed tests %+v", doc.Failed)
	}
}

func TestMainFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantTests int
	}{
		{"single passing case", "testGreater", 0, 1},
		{"failing suite", "Comparison", 1, 2},
		{"root", "All Tests", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Main(Options{
				Prog:     "tests",
				Registry: sampleRegistry(),
				Stdout:   &stdout,
				Stderr:   &stderr,
			}, []string{"-t", tt.query})

			if code != tt.wantCode {
				t.Fatalf("expected exit code %d, got %d", tt.wantCode, code)
			}
			doc, err := report.ParseCppUnit(strings.NewReader(stdout.String()))
			if err != nil {
				t.Fatalf("expected a report, got %v", err)
			}
			if doc.Statistics.Tests != tt.wantTests {
				t.Errorf("expected %d tests, got %d", tt.wantTests, doc.Statistics.Tests)
			}
		})
	}
}

func TestMainFilterNoMatch(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Main(Options{
		Prog:     "tests",
		Registry: sampleRegistry(),
		Stdout:   &stdout,
		Stderr:   &stderr,
	}, []string{"-t", "bogus"})

	if code != RetBadTest {
		t.Fatalf("expected exit code %d, got %d", RetBadTest, code)
	}
	if got := stderr.String(); got != NoTestMessage+"\n" {
		t.Errorf("expected %q on stderr, got %q", NoTestMessage, got)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no stdout output, got %q", stdout.String())
	}
}

func TestMainReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xml")
	var stdout, stderr bytes.Buffer
	code := Main(Options{
		Prog:     "tests",
		Registry: sampleRegistry(),
		Stdout:   &stdout,
		Stderr:   &stderr,
	}, []string{"-y", path})

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no report on stdout, got %q", stdout.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected report file, got %v", err)
	}
	doc, err := report.ParseCppUnit(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected a parseable report, got %v", err)
	}
	if doc.Statistics.Tests != 3 {
		t.Errorf("expected 3 tests in file report, got %d", doc.Statistics.Tests)
	}
}

func TestMainXUnitDialect(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Main(Options{
		Prog:     "tests",
		Dialect:  report.KindXUnit,
		Registry: sampleRegistry(),
		Stdout:   &stdout,
		Stderr:   &stderr,
	}, nil)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	doc, err := report.ParseXUnit(strings.NewReader(stdout.String()))
	if err != nil {
		t.Fatalf("expected a testsuites report, got %v", err)
	}
	if doc.Tests != 3 || doc.Failures != 1 {
		t.Errorf("unexpected counts %d/%d", doc.Tests, doc.Failures)
	}
	if len(doc.Suites) != 2 || doc.Suites[0].Name != "Comparison" {
		t.Errorf("unexpected suites %+v", doc.Suites)
	}
}

func TestMainEmptyRegistry(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Main(Options{
		Prog:     "tests",
		Registry: harness.NewRegistry(),
		Stdout:   &stdout,
		Stderr:   &stderr,
	}, nil)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	doc, err := report.ParseCppUnit(strings.NewReader(stdout.String()))
	if err != nil {
		t.Fatalf("expected a report, got %v", err)
	}
	if doc.Statistics.Tests != 0 || doc.Statistics.FailuresTotal != 0 {
		t.Errorf("unexpected statistics %+v", doc.Statistics)
	}
}
