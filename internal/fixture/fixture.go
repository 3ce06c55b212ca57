// Package fixture is the command line shared by the sample test binaries:
// flag handling, hierarchy listing and lookup, and report emission.
package fixture

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"utp/internal/harness"
	"utp/internal/report"
)

// Contract exit codes. The negative codes surface to the operating system
// as 255 and 254.
const (
	RetOK      = 0
	RetUsage   = -1
	RetBadTest = -2
)

// NoTestMessage goes to stderr when -t matches nothing.
const NoTestMessage = "No test case found"

// Options configure Main for one fixture binary.
type Options struct {
	// Prog is the name shown in the usage line. Defaults to the base name
	// of the invoked binary.
	Prog string
	// Dialect selects the report format, report.KindCppUnit or
	// report.KindXUnit.
	Dialect report.Kind
	// Registry defaults to harness.Default.
	Registry *harness.Registry
	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Main implements the fixture command line and returns the process exit
// code: RetUsage for -h or an unknown flag, RetOK after -l, RetBadTest
// when -t matches nothing, otherwise the count of failed and errored
// cases.
func Main(opts Options, args []string) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Registry == nil {
		opts.Registry = harness.Default
	}
	if opts.Prog == "" {
		opts.Prog = "tests"
		if len(os.Args) > 0 {
			opts.Prog = filepath.Base(os.Args[0])
		}
	}

	fs := flag.NewFlagSet(opts.Prog, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	filter := fs.String("t", "", "run the given test only")
	fileOut := fs.String("y", "", "write the XML report to the given file")
	list := fs.Bool("l", false, "list all available tests")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(opts.Stdout, Usage(opts.Prog))
		return RetUsage
	}

	root := opts.Registry.Tree()

	if *list {
		Dump(opts.Stdout, root, 0)
		return RetOK
	}

	target := root
	if *filter != "" {
		target = Find(root, *filter)
		if target == nil {
			fmt.Fprintln(opts.Stderr, NoTestMessage)
			return RetBadTest
		}
	}

	col := harness.NewCollector()
	target.Run(col)

	out := opts.Stdout
	if *fileOut != "" {
		f, err := os.Create(*fileOut)
		if err != nil {
			fmt.Fprintf(opts.Stderr, "cannot write report: %v\n", err)
			return col.FailuresTotal()
		}
		defer f.Close()
		out = f
	}
	if err := writeReport(out, opts.Dialect, col); err != nil {
		fmt.Fprintf(opts.Stderr, "cannot write report: %v\n", err)
	}
	return col.FailuresTotal()
}

// Usage returns the help text printed for -h or an unknown flag.
func Usage(prog string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nUsage: %s [ -l | -h | -t test] [ -y path]\n\n", prog)
	sb.WriteString("A sample unit-test program.\n\n")
	sb.WriteString("Options:\n")
	sb.WriteString("    -t  Runs the given test only. Default: All Tests\n")
	sb.WriteString("    -l  List all available tests.\n")
	sb.WriteString("    -y  Write the XML report to the given file.\n")
	sb.WriteString("    -h  Print this usage message.\n\n")
	sb.WriteString("Returns:\n")
	sb.WriteString("    0 on success\n")
	sb.WriteString("    positive for number of errors and failures\n")
	sb.WriteString("    otherwise no test ever runs\n\n")
	return sb.String()
}
