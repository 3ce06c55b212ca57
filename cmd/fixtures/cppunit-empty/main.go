// A sample test binary in the TestRun dialect that registers no suites.
// Listing prints nothing and a run reports zero tests.
package main

import (
	"os"

	"utp/internal/fixture"
	"utp/internal/report"
)

func main() {
	os.Exit(fixture.Main(fixture.Options{Dialect: report.KindCppUnit}, os.Args[1:]))
}
