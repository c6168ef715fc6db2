package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/solarreach/goalscan/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one scan.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one goal.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

// JUnitFailure represents a goal that is not achieved.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a goal that only carries a warning.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a report to JUnit XML. not_achieved goals become
// failures and warnings are reported as skipped so CI keeps them visible
// without failing the build.
func ConvertToJUnit(name, root string, entries []models.ReportEntry) *JUnitTestSuites {
	s := Summarize(entries)

	suite := JUnitTestSuite{
		Name:     name,
		Tests:    s.Total,
		Failures: s.NotAchieved,
		Skipped:  s.Warning,
		Properties: []JUnitProperty{
			{Name: "root", Value: root},
		},
	}
	if len(entries) > 0 {
		suite.Timestamp = entries[0].LastChecked.UTC().Format(time.RFC3339)
	}

	for _, e := range entries {
		suite.TestCases = append(suite.TestCases, convertEntry(e))
	}

	return &JUnitTestSuites{
		Tests:      s.Total,
		Failures:   s.NotAchieved,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertEntry(e models.ReportEntry) JUnitTestCase {
	classname := e.Category
	if classname == "" {
		classname = "goals"
	}
	tc := JUnitTestCase{
		Name:      e.ID,
		Classname: classname,
	}

	switch e.Status {
	case models.StatusNotAchieved:
		tc.Failure = &JUnitFailure{
			Message: e.ClashDescription,
			Type:    "GoalNotAchieved",
			Body:    formatEvidence(e.Evidence),
		}
	case models.StatusWarning:
		tc.Skipped = &JUnitSkipped{Message: e.ClashDescription}
		tc.SystemOut = formatEvidence(e.Evidence)
	}
	return tc
}

func formatEvidence(evidence []models.Evidence) string {
	var b strings.Builder
	for _, ev := range evidence {
		if ev.Line > 0 {
			fmt.Fprintf(&b, "%s:%d: %s\n", ev.File, ev.Line, ev.Snippet)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", ev.File, ev.Snippet)
		}
	}
	return b.String()
}

// WriteJUnitXML writes the report as JUnit XML to w.
func WriteJUnitXML(w io.Writer, name, root string, entries []models.ReportEntry) error {
	suites := ConvertToJUnit(name, root, entries)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
