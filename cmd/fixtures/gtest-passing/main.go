// A sample test binary in the testsuites dialect with every case passing.
package main

import (
	"math"
	"os"

	"utp/internal/fixture"
	"utp/internal/harness"
	"utp/internal/report"
)

const tolerance = 0.000001

// squareRoot returns -1 for negative inputs as an error sentinel.
func squareRoot(x float64) float64 {
	if x < 0 {
		return -1
	}
	return math.Sqrt(x)
}

func registerFatal(r *harness.Registry) {
	r.Register(&harness.Suite{
		Name: "SquareRootTest",
		Cases: []harness.Case{
			{Name: "PositiveNos", Run: func(t *harness.T) {
				t.AssertNear(6.0, squareRoot(36.0), tolerance)
				t.AssertNear(18.0, squareRoot(324.0), tolerance)
				t.AssertNear(25.4, squareRoot(645.16), tolerance)
				t.AssertNear(0.0, squareRoot(0.0), tolerance)
			}},
			{Name: "NegativeNos", Run: func(t *harness.T) {
				t.AssertEqual(-1.0, squareRoot(-15.0))
				t.AssertEqual(-1.0, squareRoot(-0.2))
			}},
		},
	})
}

func registerNonFatal(r *harness.Registry) {
	r.Register(&harness.Suite{
		Name: "SquareRootTestNonFatal",
		Cases: []harness.Case{
			{Name: "PositiveNos", Run: func(t *harness.T) {
				t.ExpectNear(6.0, squareRoot(36.0), tolerance)
				t.ExpectNear(18.0, squareRoot(324.0), tolerance)
				t.ExpectNear(25.4, squareRoot(645.16), tolerance)
				t.ExpectNear(0.0, squareRoot(0.0), tolerance)
			}},
			{Name: "NegativeNos", Run: func(t *harness.T) {
				t.ExpectEqual(-1.0, squareRoot(-15.0))
				t.ExpectEqual(-1.0, squareRoot(-0.2))
			}},
		},
	})
}

func main() {
	registerFatal(harness.Default)
	registerNonFatal(harness.Default)
	os.Exit(fixture.Main(fixture.Options{Dialect: report.KindXUnit}, os.Args[1:]))
}
