package domain

// Fault types as they appear in report documents
const (
	FaultAssertion = "Assertion"
	FaultError     = "Error"
)

// CaseFailure represents a failed test case
type CaseFailure struct {
	TestName    string `json:"test_name"`
	BinaryPath  string `json:"binary_path"`
	FailureType string `json:"failure_type"`
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
	Message     string `json:"message"`
	Resolved    bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
