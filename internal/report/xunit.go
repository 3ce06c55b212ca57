package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

// Timestamp layout used in testsuites documents, ISO 8601 without a zone.
const TimestampLayout = "2006-01-02T15:04:05"

// XUnitDoc is the testsuites document.
type XUnitDoc struct {
	XMLName   xml.Name     `xml:"testsuites"`
	Name      string       `xml:"name,attr"`
	Tests     int          `xml:"tests,attr"`
	Failures  int          `xml:"failures,attr"`
	Errors    int          `xml:"errors,attr"`
	Time      float64      `xml:"time,attr"`
	Timestamp string       `xml:"timestamp,attr,omitempty"`
	Suites    []XUnitSuite `xml:"testsuite"`
}

// XUnitSuite is one testsuite element.
type XUnitSuite struct {
	Name      string      `xml:"name,attr"`
	Tests     int         `xml:"tests,attr"`
	Failures  int         `xml:"failures,attr"`
	Errors    int         `xml:"errors,attr"`
	Time      float64     `xml:"time,attr"`
	Timestamp string      `xml:"timestamp,attr,omitempty"`
	Cases     []XUnitCase `xml:"testcase"`
}

// XUnitCase is one testcase element. A case with no failure and no error
// entries passed.
type XUnitCase struct {
	Name      string       `xml:"name,attr"`
	ClassName string       `xml:"classname,attr"`
	Status    string       `xml:"status,attr,omitempty"`
	Time      float64      `xml:"time,attr"`
	Failures  []XUnitFault `xml:"failure"`
	Errors    []XUnitFault `xml:"error"`
}

// XUnitFault is a failure or error element under a testcase. Message holds
// the first line, Body the full text.
type XUnitFault struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr,omitempty"`
	Body    string `xml:",chardata"`
}

// Passed reports whether the case recorded no faults.
func (c XUnitCase) Passed() bool {
	return len(c.Failures) == 0 && len(c.Errors) == 0
}

// Fault builds a failure or error entry from a recorded message and an
// optional source location. The message attribute carries the first line,
// the body the full text.
func Fault(faultType, message, file string, line int) XUnitFault {
	body := message
	if file != "" {
		body = fmt.Sprintf("%s\nat %s:%d", message, file, line)
	}
	return XUnitFault{
		Message: firstLine(message),
		Type:    faultType,
		Body:    body,
	}
}

// Now returns the current time formatted for a timestamp attribute.
func Now() string {
	return time.Now().Format(TimestampLayout)
}

// WriteXUnit writes doc to w as an XML document.
func WriteXUnit(w io.Writer, doc *XUnitDoc) error {
	if err := writeDoc(w, doc); err != nil {
		return fmt.Errorf("write testsuites report: %w", err)
	}
	return nil
}

// ParseXUnit reads a testsuites document from r.
func ParseXUnit(r io.Reader) (*XUnitDoc, error) {
	var doc XUnitDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse testsuites report: %w", err)
	}
	return &doc, nil
}
