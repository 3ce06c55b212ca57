// Package report defines the two XML report dialects the fixture binaries
// emit, with writers, parsers, and the conversion between them.
package report

import (
	"bytes"
	"encoding/xml"
	"io"
)

// Kind identifies a report dialect.
type Kind int

const (
	KindUnknown Kind = iota
	KindCppUnit
	KindXUnit
)

// Detect sniffs the root element of an XML report.
func Detect(data []byte) Kind {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return KindUnknown
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "TestRun":
			return KindCppUnit
		case "testsuites":
			return KindXUnit
		default:
			return KindUnknown
		}
	}
}

// writeDoc writes an XML declaration followed by the indented document.
func writeDoc(w io.Writer, doc any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
