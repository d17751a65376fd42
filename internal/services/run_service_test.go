package services

import (
	"errors"
	"testing"
	"time"

	"github.com/themizzi/menucheck/internal/models"
	"github.com/themizzi/menucheck/internal/runner"
)

// MockRunRepository is a mock implementation of RunRepository for testing
type MockRunRepository struct {
	CreateRunFunc    func(*models.Run) error
	UpdateRunFunc    func(*models.Run) error
	GetRunFunc       func(string) (*models.Run, error)
	ListRunsFunc     func(int) ([]*models.Run, error)
	CreateResultFunc func(*models.ScenarioResult) error
	ListResultsFunc  func(string) ([]*models.ScenarioResult, error)
}

func (m *MockRunRepository) CreateRun(run *models.Run) error {
	if m.CreateRunFunc != nil {
		return m.CreateRunFunc(run)
	}
	return nil
}

func (m *MockRunRepository) UpdateRun(run *models.Run) error {
	if m.UpdateRunFunc != nil {
		return m.UpdateRunFunc(run)
	}
	return nil
}

func (m *MockRunRepository) GetRun(id string) (*models.Run, error) {
	if m.GetRunFunc != nil {
		return m.GetRunFunc(id)
	}
	return &models.Run{ID: id, Status: models.RunStatusRunning}, nil
}

func (m *MockRunRepository) ListRuns(limit int) ([]*models.Run, error) {
	if m.ListRunsFunc != nil {
		return m.ListRunsFunc(limit)
	}
	return nil, nil
}

func (m *MockRunRepository) CreateResult(res *models.ScenarioResult) error {
	if m.CreateResultFunc != nil {
		return m.CreateResultFunc(res)
	}
	return nil
}

func (m *MockRunRepository) ListResults(runID string) ([]*models.ScenarioResult, error) {
	if m.ListResultsFunc != nil {
		return m.ListResultsFunc(runID)
	}
	return nil, nil
}

func testSummary() *runner.Summary {
	return &runner.Summary{
		Started:  time.Now(),
		Duration: 2 * time.Second,
		Results: []runner.Result{
			{Profile: "chromium", Suite: "Menu Display", Name: "shows prices", Status: runner.StatusPassed},
			{Profile: "chromium", Suite: "Menu Display", Name: "opens details", Status: runner.StatusFlaky},
			{Profile: "firefox", Suite: "Menu Display", Name: "shows prices", Status: runner.StatusFailed},
			{Profile: "firefox", Suite: "Responsive Design", Name: "stacks cards", Status: runner.StatusSkipped},
		},
	}
}

func TestRunService_StartRun(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		createError error
		updateError error
		wantErr     bool
	}{
		{
			name:    "successful start",
			baseURL: "https://www.greggs.com/menu",
		},
		{
			name:    "invalid base URL",
			baseURL: "not a url",
			wantErr: true,
		},
		{
			name:        "create error",
			baseURL:     "https://www.greggs.com/menu",
			createError: errors.New("database error"),
			wantErr:     true,
		},
		{
			name:        "update error",
			baseURL:     "https://www.greggs.com/menu",
			updateError: errors.New("database error"),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created, updated *models.Run
			mockRepo := &MockRunRepository{
				CreateRunFunc: func(run *models.Run) error {
					if run.Status != models.RunStatusPending {
						t.Errorf("Expected run to be stored as pending, got %s", run.Status)
					}
					created = run
					return tt.createError
				},
				UpdateRunFunc: func(run *models.Run) error {
					updated = run
					return tt.updateError
				},
			}

			service := NewRunService(mockRepo)
			run, err := service.StartRun(tt.baseURL, []string{"chromium"})

			if (err != nil) != tt.wantErr {
				t.Fatalf("StartRun() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if created == nil || updated == nil {
				t.Fatal("Expected the run to be created and then updated")
			}
			if run.Status != models.RunStatusRunning {
				t.Errorf("Expected status %s, got %s", models.RunStatusRunning, run.Status)
			}
			if run.StartedAt == nil {
				t.Error("StartedAt should be set")
			}
		})
	}
}

func TestRunService_RecordResult(t *testing.T) {
	var stored *models.ScenarioResult
	mockRepo := &MockRunRepository{
		CreateResultFunc: func(res *models.ScenarioResult) error {
			stored = res
			return nil
		},
	}
	service := NewRunService(mockRepo)

	res := runner.Result{
		Profile:  "mobile safari",
		Suite:    "Menu Display",
		Name:     "opens details",
		Status:   runner.StatusFailed,
		Duration: 3 * time.Second,
		Attempts: []runner.Attempt{
			{Number: 1, Status: runner.StatusFailed, Errors: []string{"first"}},
			{Number: 2, Status: runner.StatusFailed, Errors: []string{"modal missing", "name mismatch"}, Screenshot: "shot.png"},
		},
	}

	if err := service.RecordResult("run-1", res); err != nil {
		t.Fatalf("RecordResult failed: %v", err)
	}

	if stored == nil {
		t.Fatal("Expected result to be stored")
	}
	if stored.RunID != "run-1" {
		t.Errorf("Expected run ID run-1, got %s", stored.RunID)
	}
	if stored.Attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", stored.Attempts)
	}
	if stored.Error != "modal missing\nname mismatch" {
		t.Errorf("Expected last attempt errors, got %q", stored.Error)
	}
	if stored.Screenshot != "shot.png" {
		t.Errorf("Expected screenshot shot.png, got %s", stored.Screenshot)
	}
	if stored.Status != "failed" {
		t.Errorf("Expected status failed, got %s", stored.Status)
	}
}

func TestRunService_RecordResult_Errors(t *testing.T) {
	tests := []struct {
		name      string
		runID     string
		mockError error
	}{
		{"missing run ID", "", nil},
		{"repository error", "run-1", errors.New("database error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRunRepository{
				CreateResultFunc: func(*models.ScenarioResult) error { return tt.mockError },
			}
			service := NewRunService(mockRepo)

			err := service.RecordResult(tt.runID, runner.Result{Name: "shows prices", Status: runner.StatusPassed})
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestRunService_FinishRun(t *testing.T) {
	tests := []struct {
		name       string
		status     models.RunStatus
		getError   error
		wantStatus models.RunStatus
		wantErr    bool
	}{
		{
			name:       "failed scenario fails the run",
			status:     models.RunStatusRunning,
			wantStatus: models.RunStatusFailed,
		},
		{
			name:     "run not found",
			getError: errors.New("run not found"),
			wantErr:  true,
		},
		{
			name:    "run already cancelled",
			status:  models.RunStatusCancelled,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updateCalled := false
			mockRepo := &MockRunRepository{
				GetRunFunc: func(id string) (*models.Run, error) {
					if tt.getError != nil {
						return nil, tt.getError
					}
					return &models.Run{ID: id, Status: tt.status}, nil
				},
				UpdateRunFunc: func(*models.Run) error {
					updateCalled = true
					return nil
				},
			}
			service := NewRunService(mockRepo)

			run, err := service.FinishRun("run-1", testSummary())

			if (err != nil) != tt.wantErr {
				t.Fatalf("FinishRun() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if updateCalled {
					t.Error("UpdateRun should not be called on error")
				}
				if tt.status == models.RunStatusCancelled && !errors.Is(err, models.ErrInvalidStatusTransition) {
					t.Errorf("Expected ErrInvalidStatusTransition, got %v", err)
				}
				return
			}

			if run.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, run.Status)
			}
			want := models.RunCounts{Total: 4, Passed: 1, Failed: 1, Flaky: 1, Skipped: 1}
			if run.Counts != want {
				t.Errorf("Expected counts %+v, got %+v", want, run.Counts)
			}
			if !updateCalled {
				t.Error("Expected UpdateRun to be called")
			}
		})
	}
}

func TestRunService_CancelRun(t *testing.T) {
	var updated *models.Run
	mockRepo := &MockRunRepository{
		UpdateRunFunc: func(run *models.Run) error {
			updated = run
			return nil
		},
	}
	service := NewRunService(mockRepo)

	if err := service.CancelRun("run-1"); err != nil {
		t.Fatalf("CancelRun failed: %v", err)
	}
	if updated == nil || updated.Status != models.RunStatusCancelled {
		t.Errorf("Expected cancelled run to be stored, got %+v", updated)
	}
}

func TestRunService_RecentRuns(t *testing.T) {
	var gotLimit int
	mockRepo := &MockRunRepository{
		ListRunsFunc: func(limit int) ([]*models.Run, error) {
			gotLimit = limit
			return []*models.Run{{ID: "a"}, {ID: "b"}}, nil
		},
	}
	service := NewRunService(mockRepo)

	runs, err := service.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if gotLimit != 10 {
		t.Errorf("Expected default limit 10, got %d", gotLimit)
	}
	if len(runs) != 2 {
		t.Errorf("Expected 2 runs, got %d", len(runs))
	}
}

func TestRunService_RunResults_UnknownRun(t *testing.T) {
	listCalled := false
	mockRepo := &MockRunRepository{
		GetRunFunc: func(string) (*models.Run, error) {
			return nil, errors.New("run not found")
		},
		ListResultsFunc: func(string) ([]*models.ScenarioResult, error) {
			listCalled = true
			return nil, nil
		},
	}
	service := NewRunService(mockRepo)

	if _, err := service.RunResults("missing"); err == nil {
		t.Error("Expected error for unknown run")
	}
	if listCalled {
		t.Error("ListResults should not be called for an unknown run")
	}
}

func TestCounts(t *testing.T) {
	if got := Counts(nil); got != (models.RunCounts{}) {
		t.Errorf("Expected zero counts for nil summary, got %+v", got)
	}

	want := models.RunCounts{Total: 4, Passed: 1, Failed: 1, Flaky: 1, Skipped: 1}
	if got := Counts(testSummary()); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
