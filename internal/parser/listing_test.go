package parser

import (
	"reflect"
	"testing"

	"utp/internal/domain"
)

func TestListingParser_Parse(t *testing.T) {
	parser := NewListingParser()

	t.Run("parses suites and cases", func(t *testing.T) {
		output := `Comparison.
  testNotEqual
  testGreater
  testLess
  testMisc
LogicalOp.
  testOr
  testAnd
  testNot
  testXor
`
		listing := parser.Parse("/tests/cppunit-passing", output)

		if listing.BinaryPath != "/tests/cppunit-passing" {
			t.Errorf("expected binary path /tests/cppunit-passing, got %s", listing.BinaryPath)
		}
		expected := []domain.SuiteListing{
			{Name: "Comparison", Cases: []string{"testNotEqual", "testGreater", "testLess", "testMisc"}},
			{Name: "LogicalOp", Cases: []string{"testOr", "testAnd", "testNot", "testXor"}},
		}
		if !reflect.DeepEqual(listing.Suites, expected) {
			t.Errorf("expected suites %v, got %v", expected, listing.Suites)
		}
		if listing.TotalCases() != 8 {
			t.Errorf("expected 8 cases, got %d", listing.TotalCases())
		}
	})

	t.Run("qualifies case names", func(t *testing.T) {
		listing := parser.Parse("bin", "SquareRootTest.\n  PositiveNos\n  NegativeNos\n")

		names := listing.CaseNames()
		expected := []string{"SquareRootTest::PositiveNos", "SquareRootTest::NegativeNos"}
		if !reflect.DeepEqual(names, expected) {
			t.Errorf("expected names %v, got %v", expected, names)
		}
	})

	t.Run("strips trailing comments", func(t *testing.T) {
		output := "ParamTest.\n  case/0  # GetParam() = 2\n  case/1  # GetParam() = 4\n"

		listing := parser.Parse("bin", output)

		if len(listing.Suites) != 1 {
			t.Fatalf("expected 1 suite, got %d", len(listing.Suites))
		}
		expected := []string{"case/0", "case/1"}
		if !reflect.DeepEqual(listing.Suites[0].Cases, expected) {
			t.Errorf("expected cases %v, got %v", expected, listing.Suites[0].Cases)
		}
	})

	t.Run("skips lines outside any suite", func(t *testing.T) {
		output := "Running main() from test harness\nSuite.\n  caseOne\n"

		listing := parser.Parse("bin", output)

		if len(listing.Suites) != 1 || listing.Suites[0].Name != "Suite" {
			t.Fatalf("expected single suite Suite, got %v", listing.Suites)
		}
		if listing.TotalCases() != 1 {
			t.Errorf("expected 1 case, got %d", listing.TotalCases())
		}
	})

	t.Run("ignores a lone dot", func(t *testing.T) {
		listing := parser.Parse("bin", ".\nSuite.\n  caseOne\n")

		if len(listing.Suites) != 1 {
			t.Errorf("expected 1 suite, got %d", len(listing.Suites))
		}
	})

	t.Run("empty output", func(t *testing.T) {
		listing := parser.Parse("bin", "")

		if len(listing.Suites) != 0 {
			t.Errorf("expected no suites, got %d", len(listing.Suites))
		}
		if listing.TotalCases() != 0 {
			t.Errorf("expected 0 cases, got %d", listing.TotalCases())
		}
	})
}
