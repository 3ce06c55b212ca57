package harness

import (
	"fmt"
	"sync"
	"time"
)

// Outcome classifies how an executed case finished.
type Outcome string

const (
	Pass  Outcome = "PASS"
	Fail  Outcome = "FAIL"
	Error Outcome = "ERROR"
)

// Failure kinds as they appear in reports.
const (
	KindAssertion = "Assertion"
	KindError     = "Error"
)

// Failure is one recorded assertion failure or error inside a case.
type Failure struct {
	Kind    string
	File    string
	Line    int
	Message string
}

// Result is the outcome of one executed case. ID is the 1-based position
// in run order, assigned by the Collector.
type Result struct {
	ID       int
	Name     string
	Outcome  Outcome
	Duration time.Duration
	Failures []Failure
}

// FirstFailure returns the first recorded failure, or a zero Failure when
// the case passed.
func (r Result) FirstFailure() Failure {
	if len(r.Failures) == 0 {
		return Failure{}
	}
	return r.Failures[0]
}

// Collector gathers case results in run order.
type Collector struct {
	mu      sync.Mutex
	results []Result
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) add(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r.ID = len(c.results) + 1
	c.results = append(c.results, r)
}

// Results returns a copy of the collected results in run order.
func (c *Collector) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result, len(c.results))
	copy(out, c.results)
	return out
}

// Tests returns the number of executed cases.
func (c *Collector) Tests() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

// Failures returns the number of cases that failed an assertion.
func (c *Collector) Failures() int {
	return c.count(Fail)
}

// Errors returns the number of cases that ended in an error.
func (c *Collector) Errors() int {
	return c.count(Error)
}

// FailuresTotal returns the number of cases that did not pass. This is the
// exit status of a fixture run.
func (c *Collector) FailuresTotal() int {
	return c.count(Fail) + c.count(Error)
}

func (c *Collector) count(o Outcome) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// runCase executes one case body in its own goroutine so a fatal failure
// or a panic never takes down the process. TearDown runs even when the
// body aborts; a panic in the body or hooks becomes an Error outcome.
func runCase(s *Suite, c Case, col *Collector) {
	t := &T{name: s.Name + "::" + c.Name}
	start := time.Now()
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if err := recover(); err != nil {
				t.errored = true
				t.failures = append(t.failures, Failure{
					Kind:    KindError,
					Message: fmt.Sprintf("uncaught panic: %v", err),
				})
			}
		}()
		if s.SetUp != nil {
			s.SetUp()
		}
		defer func() {
			if s.TearDown != nil {
				s.TearDown()
			}
		}()
		c.Run(t)
	}()
	<-done
	col.add(Result{
		Name:     t.name,
		Outcome:  t.outcome(),
		Duration: time.Since(start),
		Failures: t.failures,
	})
}
