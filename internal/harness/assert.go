package harness

import (
	"fmt"
	"math"
	"runtime"
)

// T is the handle passed to case bodies. Assert helpers abort the case on
// failure, Expect helpers record the failure and continue.
type T struct {
	name     string
	failures []Failure
	failed   bool
	errored  bool
}

// Name returns the qualified Suite::case name of the running case.
func (t *T) Name() string {
	return t.name
}

// Failed reports whether the case has recorded any failure so far.
func (t *T) Failed() bool {
	return t.failed || t.errored
}

func (t *T) outcome() Outcome {
	switch {
	case t.errored:
		return Error
	case t.failed:
		return Fail
	default:
		return Pass
	}
}

// Errorf records a failure and continues the case.
func (t *T) Errorf(format string, args ...any) {
	t.record(fmt.Sprintf(format, args...))
}

// Fatalf records a failure and aborts the case.
func (t *T) Fatalf(format string, args ...any) {
	t.record(fmt.Sprintf(format, args...))
	runtime.Goexit()
}

// Assert aborts the case when cond is false. expr is the source text of
// the checked condition, quoted in the failure message.
func (t *T) Assert(cond bool, expr string) {
	if cond {
		return
	}
	t.record("assertion failed: " + expr)
	runtime.Goexit()
}

// Expect records a failure when cond is false and continues the case.
func (t *T) Expect(cond bool, expr string) {
	if cond {
		return
	}
	t.record("assertion failed: " + expr)
}

// AssertEqual aborts the case when got differs from want.
func (t *T) AssertEqual(want, got any) {
	if want == got {
		return
	}
	t.record(equalMsg(want, got))
	runtime.Goexit()
}

// ExpectEqual records a failure when got differs from want and continues.
func (t *T) ExpectEqual(want, got any) {
	if want == got {
		return
	}
	t.record(equalMsg(want, got))
}

// AssertNear aborts the case when got is not within delta of want.
func (t *T) AssertNear(want, got, delta float64) {
	if math.Abs(want-got) <= delta {
		return
	}
	t.record(nearMsg(want, got, delta))
	runtime.Goexit()
}

// ExpectNear records a failure when got is not within delta of want.
func (t *T) ExpectNear(want, got, delta float64) {
	if math.Abs(want-got) <= delta {
		return
	}
	t.record(nearMsg(want, got, delta))
}

func equalMsg(want, got any) string {
	return fmt.Sprintf("equality assertion failed: expected %v, got %v", want, got)
}

func nearMsg(want, got, delta float64) string {
	return fmt.Sprintf("equality assertion failed: expected %v within %v, got %v", want, delta, got)
}

// record marks the case failed and captures the failure site. The caller
// skip count assumes record is called from a T helper invoked directly by
// the case body.
func (t *T) record(msg string) {
	file, line := callerSite(3)
	t.failed = true
	t.failures = append(t.failures, Failure{
		Kind:    KindAssertion,
		File:    file,
		Line:    line,
		Message: msg,
	})
}

func callerSite(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", 0
	}
	return file, line
}
