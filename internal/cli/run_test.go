package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/menucheck/internal/browser"
	"github.com/themizzi/menucheck/internal/browser/browsertest"
	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/models"
	"github.com/themizzi/menucheck/internal/report"
	"github.com/themizzi/menucheck/internal/runner"
)

type fakeSession struct{}

func (fakeSession) Page() playwright.Page        { return nil }
func (fakeSession) Browser() browser.Page        { return browsertest.NewPage() }
func (fakeSession) Screenshot(path string) error { return nil }
func (fakeSession) Close() error                 { return nil }

func fakeSessions() runner.Sessions {
	return runner.SessionsFunc(func(ctx context.Context, profile config.Profile) (runner.Session, error) {
		return fakeSession{}, nil
	})
}

// MockRunService is a mock implementation of services.RunService
type MockRunService struct {
	StartRunFunc   func(string, []string) (*models.Run, error)
	FinishRunFunc  func(string, *runner.Summary) (*models.Run, error)
	RecentRunsFunc func(int) ([]*models.Run, error)
	RunResultsFunc func(string) ([]*models.ScenarioResult, error)

	mu        sync.Mutex
	recorded  []runner.Result
	finished  bool
	cancelled bool
}

func (m *MockRunService) StartRun(baseURL string, profiles []string) (*models.Run, error) {
	if m.StartRunFunc != nil {
		return m.StartRunFunc(baseURL, profiles)
	}
	return &models.Run{ID: "run-1", BaseURL: baseURL, Profiles: profiles, Status: models.RunStatusRunning}, nil
}

func (m *MockRunService) RecordResult(runID string, res runner.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, res)
	return nil
}

func (m *MockRunService) FinishRun(runID string, summary *runner.Summary) (*models.Run, error) {
	m.finished = true
	if m.FinishRunFunc != nil {
		return m.FinishRunFunc(runID, summary)
	}
	return &models.Run{ID: runID}, nil
}

func (m *MockRunService) CancelRun(runID string) error {
	m.cancelled = true
	return nil
}

func (m *MockRunService) RecentRuns(limit int) ([]*models.Run, error) {
	if m.RecentRunsFunc != nil {
		return m.RecentRunsFunc(limit)
	}
	return nil, nil
}

func (m *MockRunService) RunResults(runID string) ([]*models.ScenarioResult, error) {
	if m.RunResultsFunc != nil {
		return m.RunResultsFunc(runID)
	}
	return nil, nil
}

func testSuiteConfig(dir string) *config.SuiteConfig {
	return &config.SuiteConfig{
		BaseURL:     "http://localhost:8080/menu",
		Workers:     2,
		TestTimeout: 5 * time.Second,
		OutputDir:   dir,
		Reporters:   []string{"json", "junit"},
		Profiles:    []config.Profile{{Name: "chromium", Device: "Desktop Chrome"}},
	}
}

func TestRunChecks_Passing(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	history := &MockRunService{}
	deps := RunDependencies{
		Config:   testSuiteConfig(dir),
		Sessions: fakeSessions(),
		History:  history,
		Scenarios: []runner.Scenario{
			{Suite: "Menu Display", Name: "shows cards", Run: func(t *runner.T) {}},
			{Suite: "Menu Display", Name: "shows prices", Run: func(t *runner.T) {}},
		},
	}

	// WHEN
	summary, err := RunChecks(context.Background(), deps)

	// THEN
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := summary.Count(runner.StatusPassed); got != 2 {
		t.Errorf("Expected 2 passed, got %d", got)
	}
	if len(history.recorded) != 2 {
		t.Errorf("Expected 2 recorded results, got %d", len(history.recorded))
	}
	if !history.finished {
		t.Error("Expected run to be finished")
	}
	for _, name := range []string{report.JSONFile, report.JUnitFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist, got %v", name, err)
		}
	}
}

func TestRunChecks_FailureReturnsSummary(t *testing.T) {
	deps := RunDependencies{
		Config:   testSuiteConfig(t.TempDir()),
		Sessions: fakeSessions(),
		Scenarios: []runner.Scenario{
			{Suite: "Menu Display", Name: "shows prices", Run: func(t *runner.T) {
				t.Errorf("price missing")
			}},
		},
	}

	summary, err := RunChecks(context.Background(), deps)

	if !errors.Is(err, ErrRunFailed) {
		t.Fatalf("Expected ErrRunFailed, got %v", err)
	}
	if summary == nil || summary.Count(runner.StatusFailed) != 1 {
		t.Errorf("Expected summary with 1 failure, got %+v", summary)
	}
}

func TestRunChecks_UnknownReporter(t *testing.T) {
	cfg := testSuiteConfig(t.TempDir())
	cfg.Reporters = []string{"tap"}
	history := &MockRunService{}

	_, err := RunChecks(context.Background(), RunDependencies{Config: cfg, Sessions: fakeSessions(), History: history})

	if !errors.Is(err, report.ErrUnknownReporter) {
		t.Errorf("Expected ErrUnknownReporter, got %v", err)
	}
	if len(history.recorded) != 0 || history.finished {
		t.Error("Expected nothing recorded before reporters are valid")
	}
}

func TestRunChecks_NoScenariosCancelsRun(t *testing.T) {
	history := &MockRunService{}

	_, err := RunChecks(context.Background(), RunDependencies{
		Config:   testSuiteConfig(t.TempDir()),
		Sessions: fakeSessions(),
		History:  history,
	})

	if !errors.Is(err, runner.ErrNoScenarios) {
		t.Errorf("Expected ErrNoScenarios, got %v", err)
	}
	if !history.cancelled {
		t.Error("Expected run to be cancelled")
	}
}

func TestRunChecks_StartRunError(t *testing.T) {
	history := &MockRunService{
		StartRunFunc: func(string, []string) (*models.Run, error) {
			return nil, errors.New("database down")
		},
	}

	_, err := RunChecks(context.Background(), RunDependencies{
		Config:   testSuiteConfig(t.TempDir()),
		Sessions: fakeSessions(),
		History:  history,
	})

	if err == nil {
		t.Error("Expected error when the run cannot be recorded, got nil")
	}
}
