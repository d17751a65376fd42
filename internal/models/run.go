package models

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid run states
type RunStatus string

// Run statuses
const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusPassed    RunStatus = "passed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// RunCounts tallies scenario results by outcome
type RunCounts struct {
	Total       int
	Passed      int
	Failed      int
	Flaky       int
	Skipped     int
	Interrupted int
}

// Run is one invocation of the check suite against a base URL
type Run struct {
	ID         string
	BaseURL    string
	Profiles   []string
	Status     RunStatus
	Counts     RunCounts
	StartedAt  *time.Time
	FinishedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Domain errors
var (
	ErrInvalidBaseURL          = errors.New("base URL must be an absolute http(s) URL")
	ErrNoProfiles              = errors.New("a run needs at least one profile")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrInvalidRunID            = errors.New("run ID cannot be empty")
	ErrInvalidResultStatus     = errors.New("unknown scenario result status")
	ErrInvalidScenarioName     = errors.New("scenario name cannot be empty")
)

// NewRun creates a pending run with validation
func NewRun(baseURL string, profiles []string) (*Run, error) {
	if err := validateRunInput(baseURL, profiles); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Run{
		ID:        uuid.New().String(),
		BaseURL:   baseURL,
		Profiles:  append([]string(nil), profiles...),
		Status:    RunStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func validateRunInput(baseURL string, profiles []string) error {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	if len(profiles) == 0 {
		return ErrNoProfiles
	}
	return nil
}

// Start moves a pending run to running
func (r *Run) Start() error {
	if r.Status != RunStatusPending {
		return fmt.Errorf("%w: cannot start run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	now := time.Now()
	r.Status = RunStatusRunning
	r.StartedAt = &now
	r.UpdatedAt = now
	return nil
}

// Finish records the counts and settles the run as passed or failed. Any
// failed or interrupted scenario fails the run; flaky ones do not.
func (r *Run) Finish(counts RunCounts) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot finish run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	now := time.Now()
	r.Counts = counts
	r.Status = RunStatusPassed
	if counts.Failed > 0 || counts.Interrupted > 0 {
		r.Status = RunStatusFailed
	}
	r.FinishedAt = &now
	r.UpdatedAt = now
	return nil
}

// Cancel stops a run that has not finished
func (r *Run) Cancel() error {
	if r.IsFinished() {
		return fmt.Errorf("%w: cannot cancel run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	now := time.Now()
	r.Status = RunStatusCancelled
	r.FinishedAt = &now
	r.UpdatedAt = now
	return nil
}

// IsFinished returns true once the run is passed, failed or cancelled
func (r *Run) IsFinished() bool {
	switch r.Status {
	case RunStatusPassed, RunStatusFailed, RunStatusCancelled:
		return true
	}
	return false
}

// Duration is the wall time between start and finish, zero until both are set
func (r *Run) Duration() time.Duration {
	if r.StartedAt == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(*r.StartedAt)
}

// ScenarioResult is the persisted outcome of one scenario under one profile
type ScenarioResult struct {
	ID         string
	RunID      string
	Profile    string
	Suite      string
	Name       string
	Status     string
	Attempts   int
	Duration   time.Duration
	Error      string
	Screenshot string
	CreatedAt  time.Time
}

var resultStatuses = map[string]bool{
	"passed":      true,
	"failed":      true,
	"flaky":       true,
	"skipped":     true,
	"interrupted": true,
}

// NewScenarioResult creates a result row with validation
func NewScenarioResult(runID, profile, suite, name, status string) (*ScenarioResult, error) {
	if runID == "" {
		return nil, ErrInvalidRunID
	}
	if name == "" {
		return nil, ErrInvalidScenarioName
	}
	if !resultStatuses[status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResultStatus, status)
	}

	return &ScenarioResult{
		ID:        uuid.New().String(),
		RunID:     runID,
		Profile:   profile,
		Suite:     suite,
		Name:      name,
		Status:    status,
		CreatedAt: time.Now(),
	}, nil
}
