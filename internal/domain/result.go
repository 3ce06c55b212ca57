package domain

import "time"

// CaseResult is one executed case taken from a binary's report
type CaseResult struct {
	Suite     string // Suite the case belongs to
	Name      string // Bare case name
	Passed    bool
	FaultType string // Assertion or Error when the case did not pass
	File      string // Failure site, when the report carries one
	Line      int
	Message   string
}

// Qualified returns the Suite::case form of the name, or the bare name
// when the report did not attach a suite
func (c CaseResult) Qualified() string {
	if c.Suite == "" {
		return c.Name
	}
	return c.Suite + "::" + c.Name
}

// ReportCounts are the totals a report declares
type ReportCounts struct {
	Tests    int
	Failures int
	Errors   int
}

// RunResult represents the outcome of executing one test binary
type RunResult struct {
	BinaryPath string        // Path to the binary that was executed
	ExitCode   int           // Observed process exit code
	Success    bool          // Whether every case passed
	Output     string        // Raw report document
	Error      error         // Error if execution failed
	Duration   time.Duration // Time taken to execute
	Cases      []CaseResult
	Counts     ReportCounts
}

// ResultsMeta contains metadata about a processor run
type ResultsMeta struct {
	RunID           string  `json:"run_id"`
	TotalBinaries   int     `json:"total_binaries"`
	FailedBinaries  int     `json:"failed_binaries"`
	PassedBinaries  int     `json:"passed_binaries"`
	FailedTestCases int     `json:"failed_test_cases"`
	PassedTestCases int     `json:"passed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// ResultsOutput is the complete stored structure for a run
type ResultsOutput struct {
	Meta    ResultsMeta   `json:"meta"`
	Details []CaseFailure `json:"details"`
}
