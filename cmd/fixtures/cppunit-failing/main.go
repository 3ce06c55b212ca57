// A sample test binary in the TestRun dialect. Two of its cases are
// intended to fail: Comparison::testEqual and LogicalOp::testAnd.
package main

import (
	"os"

	"utp/internal/fixture"
	"utp/internal/harness"
	"utp/internal/report"
)

func registerComparison(r *harness.Registry) {
	var value1, value2 int
	r.Register(&harness.Suite{
		Name:  "Comparison",
		SetUp: func() { value1, value2 = 1, 2 },
		Cases: []harness.Case{
			{Name: "testEqual", Run: func(t *harness.T) {
				t.Assert(value1 == value2, "value1 == value2")
			}},
			{Name: "testGreater", Run: func(t *harness.T) {
				t.Assert(value1 > 0, "value1 > 0")
			}},
			{Name: "testLess", Run: func(t *harness.T) {
				t.Assert(value2 < 5, "value2 < 5")
			}},
			{Name: "testMisc", Run: func(t *harness.T) {
				t.AssertEqual(value1+1, value2)
				t.AssertNear(10.0, 9.99, 0.5)
			}},
		},
	})
}

func registerLogicalOp(r *harness.Registry) {
	var vTrue, vFalse bool
	r.Register(&harness.Suite{
		Name:  "LogicalOp",
		SetUp: func() { vTrue, vFalse = true, false },
		Cases: []harness.Case{
			{Name: "testOr", Run: func(t *harness.T) {
				t.Assert(vTrue || vFalse, "vTrue || vFalse")
			}},
			{Name: "testAnd", Run: func(t *harness.T) {
				t.Assert(vTrue && vFalse, "vTrue && vFalse")
			}},
			{Name: "testNot", Run: func(t *harness.T) {
				t.Assert(!vFalse, "!vFalse")
			}},
			{Name: "testXor", Run: func(t *harness.T) {
				t.Assert(vTrue != vFalse, "vTrue != vFalse")
			}},
		},
	})
}

func main() {
	registerComparison(harness.Default)
	registerLogicalOp(harness.Default)
	os.Exit(fixture.Main(fixture.Options{Dialect: report.KindCppUnit}, os.Args[1:]))
}
