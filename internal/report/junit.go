package report

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/themizzi/menucheck/internal/runner"
)

// JUnitTestSuites is the root of a JUnit XML document
type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Skipped  int              `xml:"skipped,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite groups one suite under one profile
type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Hostname string          `xml:"hostname,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase is a single scenario
type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *struct{}     `xml:"skipped,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

// JUnitFailure carries the failure message of the last attempt
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// NewJUnitReport converts a summary, one testsuite per profile and suite pair
func NewJUnitReport(s *runner.Summary) JUnitTestSuites {
	doc := JUnitTestSuites{
		Name: "menucheck",
		Time: fmt.Sprintf("%.3f", seconds(s)),
	}

	index := map[string]int{}
	for _, res := range s.Results {
		key := res.Profile + "\x00" + res.Suite
		i, ok := index[key]
		if !ok {
			i = len(doc.Suites)
			index[key] = i
			doc.Suites = append(doc.Suites, JUnitTestSuite{
				Name:     res.Suite,
				Hostname: res.Profile,
			})
		}

		tc := JUnitTestCase{
			Name:      res.Name,
			Classname: res.Suite,
			Time:      fmt.Sprintf("%.3f", res.Duration.Seconds()),
		}

		var out []string
		for _, a := range res.Attempts {
			out = append(out, a.Logs...)
			if a.Screenshot != "" {
				out = append(out, "[[ATTACHMENT|"+a.Screenshot+"]]")
			}
		}
		tc.SystemOut = strings.Join(out, "\n")

		suite := &doc.Suites[i]
		suite.Tests++
		doc.Tests++

		switch res.Status {
		case runner.StatusFailed, runner.StatusInterrupted:
			msg := string(res.Status)
			body := ""
			if n := len(res.Attempts); n > 0 && len(res.Attempts[n-1].Errors) > 0 {
				msg = res.Attempts[n-1].Errors[0]
				body = strings.Join(res.Attempts[n-1].Errors, "\n")
			}
			tc.Failure = &JUnitFailure{Message: firstLine(msg), Type: "FAILURE", Body: body}
			suite.Failures++
			doc.Failures++
		case runner.StatusSkipped:
			tc.Skipped = &struct{}{}
			suite.Skipped++
			doc.Skipped++
		}

		suite.Cases = append(suite.Cases, tc)
	}

	for i := range doc.Suites {
		var total float64
		for _, res := range s.Results {
			if res.Profile == doc.Suites[i].Hostname && res.Suite == doc.Suites[i].Name {
				total += res.Duration.Seconds()
			}
		}
		doc.Suites[i].Time = fmt.Sprintf("%.3f", total)
	}

	return doc
}

// WriteJUnit writes the JUnit XML report to path
func WriteJUnit(path string, s *runner.Summary) error {
	data, err := xml.MarshalIndent(NewJUnitReport(s), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), data...), 0o644)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
