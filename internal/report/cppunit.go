package report

import (
	"encoding/xml"
	"fmt"
	"io"
)

// CppUnitRun is the TestRun document. Failed and successful cases are kept
// in separate sections; the id attribute preserves run order across both.
type CppUnitRun struct {
	XMLName    xml.Name         `xml:"TestRun"`
	Failed     []CppUnitFailure `xml:"FailedTests>FailedTest"`
	Successful []CppUnitTest    `xml:"SuccessfulTests>Test"`
	Statistics CppUnitStats     `xml:"Statistics"`
}

// CppUnitFailure is one FailedTest entry.
type CppUnitFailure struct {
	ID          int              `xml:"id,attr"`
	Name        string           `xml:"Name"`
	FailureType string           `xml:"FailureType"`
	Location    *CppUnitLocation `xml:"Location"`
	Message     string           `xml:"Message"`
}

// CppUnitLocation points at the source of a failure.
type CppUnitLocation struct {
	File string `xml:"File"`
	Line int    `xml:"Line"`
}

// CppUnitTest is one SuccessfulTests entry.
type CppUnitTest struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"Name"`
}

// CppUnitStats is the Statistics block. FailuresTotal is Failures plus
// Errors.
type CppUnitStats struct {
	Tests         int `xml:"Tests"`
	FailuresTotal int `xml:"FailuresTotal"`
	Errors        int `xml:"Errors"`
	Failures      int `xml:"Failures"`
}

// WriteCppUnit writes doc to w as an XML document.
func WriteCppUnit(w io.Writer, doc *CppUnitRun) error {
	if err := writeDoc(w, doc); err != nil {
		return fmt.Errorf("write TestRun report: %w", err)
	}
	return nil
}

// ParseCppUnit reads a TestRun document from r.
func ParseCppUnit(r io.Reader) (*CppUnitRun, error) {
	var doc CppUnitRun
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse TestRun report: %w", err)
	}
	return &doc, nil
}
