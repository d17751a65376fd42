package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/themizzi/menucheck/internal/runner"
)

// JSONReport is the machine readable run summary
type JSONReport struct {
	StartTime  time.Time    `json:"startTime"`
	DurationMS int64        `json:"durationMs"`
	Stats      Stats        `json:"stats"`
	Results    []JSONResult `json:"results"`
}

// Stats counts results by outcome
type Stats struct {
	Expected    int `json:"expected"`
	Unexpected  int `json:"unexpected"`
	Flaky       int `json:"flaky"`
	Skipped     int `json:"skipped"`
	Interrupted int `json:"interrupted"`
}

// JSONResult is one scenario under one profile
type JSONResult struct {
	Profile    string        `json:"profile"`
	Suite      string        `json:"suite"`
	Name       string        `json:"name"`
	Status     runner.Status `json:"status"`
	DurationMS int64         `json:"durationMs"`
	Attempts   []JSONAttempt `json:"attempts"`
}

// JSONAttempt is a single try of a scenario
type JSONAttempt struct {
	Number     int           `json:"number"`
	Status     runner.Status `json:"status"`
	DurationMS int64         `json:"durationMs"`
	Errors     []string      `json:"errors,omitempty"`
	Logs       []string      `json:"logs,omitempty"`
	Screenshot string        `json:"screenshot,omitempty"`
}

// NewStats tallies a summary
func NewStats(s *runner.Summary) Stats {
	return Stats{
		Expected:    s.Count(runner.StatusPassed),
		Unexpected:  s.Count(runner.StatusFailed),
		Flaky:       s.Count(runner.StatusFlaky),
		Skipped:     s.Count(runner.StatusSkipped),
		Interrupted: s.Count(runner.StatusInterrupted),
	}
}

// NewJSONReport converts a summary
func NewJSONReport(s *runner.Summary) JSONReport {
	r := JSONReport{
		StartTime:  s.Started,
		DurationMS: s.Duration.Milliseconds(),
		Stats:      NewStats(s),
		Results:    make([]JSONResult, 0, len(s.Results)),
	}
	for _, res := range s.Results {
		jr := JSONResult{
			Profile:    res.Profile,
			Suite:      res.Suite,
			Name:       res.Name,
			Status:     res.Status,
			DurationMS: res.Duration.Milliseconds(),
			Attempts:   make([]JSONAttempt, 0, len(res.Attempts)),
		}
		for _, a := range res.Attempts {
			jr.Attempts = append(jr.Attempts, JSONAttempt{
				Number:     a.Number,
				Status:     a.Status,
				DurationMS: a.Duration.Milliseconds(),
				Errors:     a.Errors,
				Logs:       a.Logs,
				Screenshot: a.Screenshot,
			})
		}
		r.Results = append(r.Results, jr)
	}
	return r
}

// WriteJSON writes the JSON report to path
func WriteJSON(path string, s *runner.Summary) error {
	data, err := json.MarshalIndent(NewJSONReport(s), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
