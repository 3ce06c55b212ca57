package report

import (
	"strings"
	"testing"
)

func TestCppUnitToXUnit(t *testing.T) {
	run := &CppUnitRun{
		Failed: []CppUnitFailure{
			{ID: 3, Name: "LogicalOp::testAnd", FailureType: "Assertion", Message: "assertion failed: vTrue && vFalse"},
			{ID: 5, Name: "standalone", FailureType: "Error", Message: "uncaught panic: boom"},
		},
		Successful: []CppUnitTest{
			{ID: 1, Name: "Comparison::testNotEqual"},
			{ID: 2, Name: "Comparison::testGreater"},
			{ID: 4, Name: "LogicalOp::testOr"},
		},
		Statistics: CppUnitStats{Tests: 5, FailuresTotal: 2, Errors: 1, Failures: 1},
	}

	doc := CppUnitToXUnit(run, "tests")

	if doc.Tests != 5 || doc.Failures != 1 || doc.Errors != 1 {
		t.Errorf("unexpected counts tests=%d failures=%d errors=%d", doc.Tests, doc.Failures, doc.Errors)
	}
	if len(doc.Suites) != 3 {
		t.Fatalf("expected 3 suites, got %d", len(doc.Suites))
	}

	wantSuites := []string{"Comparison", "LogicalOp", "tests"}
	for i, want := range wantSuites {
		if doc.Suites[i].Name != want {
			t.Errorf("expected suite %d to be %q, got %q", i, want, doc.Suites[i].Name)
		}
	}

	logical := doc.Suites[1]
	if len(logical.Cases) != 2 {
		t.Fatalf("expected 2 cases under LogicalOp, got %d", len(logical.Cases))
	}
	if logical.Cases[0].Name != "testAnd" || logical.Cases[1].Name != "testOr" {
		t.Errorf("expected run order testAnd, testOr, got %q, %q", logical.Cases[0].Name, logical.Cases[1].Name)
	}
	if logical.Failures != 1 || logical.Errors != 0 {
		t.Errorf("unexpected LogicalOp counts %+v", logical)
	}
	if got := logical.Cases[0].Failures[0].Message; got != "assertion failed: vTrue && vFalse" {
		t.Errorf("unexpected failure message %q", got)
	}

	unqualified := doc.Suites[2]
	if unqualified.Cases[0].Name != "standalone" || unqualified.Cases[0].ClassName != "tests" {
		t.Errorf("expected unqualified case under default suite, got %+v", unqualified.Cases[0])
	}
	if len(unqualified.Cases[0].Errors) != 1 {
		t.Errorf("expected an error fault, got %+v", unqualified.Cases[0])
	}
	if unqualified.Errors != 1 {
		t.Errorf("expected suite error count 1, got %d", unqualified.Errors)
	}
}

func TestCppUnitToXUnitFaultBody(t *testing.T) {
	run := &CppUnitRun{
		Failed: []CppUnitFailure{
			{
				ID:          1,
				Name:        "Comparison::testEqual",
				FailureType: "Assertion",
				Location:    &CppUnitLocation{File: "comparison.go", Line: 18},
				Message:     "assertion failed: value1 == value2",
			},
		},
	}

	doc := CppUnitToXUnit(run, "tests")
	fault := doc.Suites[0].Cases[0].Failures[0]
	if fault.Message != "assertion failed: value1 == value2" {
		t.Errorf("unexpected fault message %q", fault.Message)
	}
	if !strings.HasSuffix(fault.Body, "at comparison.go:18") {
		t.Errorf("expected body to carry the failure location, got %q", fault.Body)
	}
}

func TestMergeXUnit(t *testing.T) {
	a := &XUnitDoc{
		Tests: 2, Failures: 1, Time: 0.5, Timestamp: "2026-08-22T09:00:00",
		Suites: []XUnitSuite{{Name: "A", Tests: 2, Failures: 1}},
	}
	b := &XUnitDoc{
		Tests: 3, Errors: 1, Time: 0.25,
		Suites: []XUnitSuite{{Name: "B", Tests: 3, Errors: 1}},
	}

	merged := MergeXUnit(a, nil, b)
	if merged.Tests != 5 || merged.Failures != 1 || merged.Errors != 1 {
		t.Errorf("unexpected merged counts %+v", merged)
	}
	if merged.Time != 0.75 {
		t.Errorf("expected merged time 0.75, got %v", merged.Time)
	}
	if merged.Timestamp != "2026-08-22T09:00:00" {
		t.Errorf("expected first timestamp kept, got %q", merged.Timestamp)
	}
	if len(merged.Suites) != 2 || merged.Suites[0].Name != "A" || merged.Suites[1].Name != "B" {
		t.Errorf("unexpected merged suites %+v", merged.Suites)
	}
}
