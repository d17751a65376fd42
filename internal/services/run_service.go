package services

import (
	"fmt"
	"strings"

	"github.com/themizzi/menucheck/internal/models"
	"github.com/themizzi/menucheck/internal/runner"
)

// RunRepository defines the interface for run history persistence
type RunRepository interface {
	CreateRun(run *models.Run) error
	UpdateRun(run *models.Run) error
	GetRun(id string) (*models.Run, error)
	ListRuns(limit int) ([]*models.Run, error)
	CreateResult(res *models.ScenarioResult) error
	ListResults(runID string) ([]*models.ScenarioResult, error)
}

// RunService records check runs and their scenario results
type RunService interface {
	StartRun(baseURL string, profiles []string) (*models.Run, error)
	RecordResult(runID string, res runner.Result) error
	FinishRun(runID string, summary *runner.Summary) (*models.Run, error)
	CancelRun(runID string) error
	RecentRuns(limit int) ([]*models.Run, error)
	RunResults(runID string) ([]*models.ScenarioResult, error)
}

// RunServiceImpl implements RunService
type RunServiceImpl struct {
	runRepo RunRepository
}

// NewRunService creates a new run service
func NewRunService(runRepo RunRepository) RunService {
	return &RunServiceImpl{
		runRepo: runRepo,
	}
}

// StartRun creates a run and moves it to running
func (s *RunServiceImpl) StartRun(baseURL string, profiles []string) (*models.Run, error) {
	run, err := models.NewRun(baseURL, profiles)
	if err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}

	if err := s.runRepo.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	if err := run.Start(); err != nil {
		return nil, err
	}
	if err := s.runRepo.UpdateRun(run); err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	return run, nil
}

// RecordResult stores one finished scenario. The error and screenshot come
// from the last attempt.
func (s *RunServiceImpl) RecordResult(runID string, res runner.Result) error {
	row, err := models.NewScenarioResult(runID, res.Profile, res.Suite, res.Name, string(res.Status))
	if err != nil {
		return fmt.Errorf("invalid scenario result: %w", err)
	}

	row.Attempts = len(res.Attempts)
	row.Duration = res.Duration
	if n := len(res.Attempts); n > 0 {
		last := res.Attempts[n-1]
		row.Error = strings.Join(last.Errors, "\n")
		row.Screenshot = last.Screenshot
	}

	if err := s.runRepo.CreateResult(row); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

// FinishRun settles the run from the summary's counts
func (s *RunServiceImpl) FinishRun(runID string, summary *runner.Summary) (*models.Run, error) {
	run, err := s.runRepo.GetRun(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := run.Finish(Counts(summary)); err != nil {
		return nil, err
	}

	if err := s.runRepo.UpdateRun(run); err != nil {
		return nil, fmt.Errorf("failed to finish run: %w", err)
	}
	return run, nil
}

// CancelRun marks an unfinished run as cancelled
func (s *RunServiceImpl) CancelRun(runID string) error {
	run, err := s.runRepo.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	if err := run.Cancel(); err != nil {
		return err
	}

	if err := s.runRepo.UpdateRun(run); err != nil {
		return fmt.Errorf("failed to cancel run: %w", err)
	}
	return nil
}

// RecentRuns lists the newest runs
func (s *RunServiceImpl) RecentRuns(limit int) ([]*models.Run, error) {
	if limit < 1 {
		limit = 10
	}
	runs, err := s.runRepo.ListRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// RunResults lists the scenario results of a run
func (s *RunServiceImpl) RunResults(runID string) ([]*models.ScenarioResult, error) {
	if _, err := s.runRepo.GetRun(runID); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	results, err := s.runRepo.ListResults(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

// Counts tallies a summary for storage
func Counts(summary *runner.Summary) models.RunCounts {
	if summary == nil {
		return models.RunCounts{}
	}
	return models.RunCounts{
		Total:       len(summary.Results),
		Passed:      summary.Count(runner.StatusPassed),
		Failed:      summary.Count(runner.StatusFailed),
		Flaky:       summary.Count(runner.StatusFlaky),
		Skipped:     summary.Count(runner.StatusSkipped),
		Interrupted: summary.Count(runner.StatusInterrupted),
	}
}
