package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/themizzi/menucheck/internal/database"
	"github.com/themizzi/menucheck/internal/models"
)

// ErrRunNotFound is returned when no run has the requested ID
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for runs and their results
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository on the shared connection
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a new run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a new run
func (r *RunRepository) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO runs (id, base_url, profiles, status, started_at, finished_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now()
	_, err := r.db.Exec(query,
		run.ID,
		run.BaseURL,
		pq.Array(run.Profiles),
		run.Status,
		run.StartedAt,
		run.FinishedAt,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	run.CreatedAt = now
	run.UpdatedAt = now
	return nil
}

// UpdateRun stores the run's status, counts and timestamps
func (r *RunRepository) UpdateRun(run *models.Run) error {
	query := `
		UPDATE runs
		SET status = $1, total = $2, passed = $3, failed = $4, flaky = $5, skipped = $6,
		    interrupted = $7, started_at = $8, finished_at = $9, updated_at = $10
		WHERE id = $11
	`

	now := time.Now()
	c := run.Counts
	result, err := r.db.Exec(query,
		run.Status, c.Total, c.Passed, c.Failed, c.Flaky, c.Skipped, c.Interrupted,
		run.StartedAt, run.FinishedAt, now, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRunNotFound
	}

	run.UpdatedAt = now
	return nil
}

const runColumns = `id, base_url, profiles, status, total, passed, failed, flaky, skipped,
		       interrupted, started_at, finished_at, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	run := &models.Run{}
	var started, finished sql.NullTime
	err := row.Scan(
		&run.ID,
		&run.BaseURL,
		pq.Array(&run.Profiles),
		&run.Status,
		&run.Counts.Total,
		&run.Counts.Passed,
		&run.Counts.Failed,
		&run.Counts.Flaky,
		&run.Counts.Skipped,
		&run.Counts.Interrupted,
		&started,
		&finished,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if started.Valid {
		run.StartedAt = &started.Time
	}
	if finished.Valid {
		run.FinishedAt = &finished.Time
	}
	return run, nil
}

// GetRun retrieves a run by ID
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = $1`

	run, err := scanRun(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (r *RunRepository) ListRuns(limit int) ([]*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// CreateResult inserts a scenario result for a run
func (r *RunRepository) CreateResult(res *models.ScenarioResult) error {
	query := `
		INSERT INTO scenario_results (id, run_id, profile, suite, name, status, attempts, duration_ms, error, screenshot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), $11)
	`

	_, err := r.db.Exec(query,
		res.ID,
		res.RunID,
		res.Profile,
		res.Suite,
		res.Name,
		res.Status,
		res.Attempts,
		res.Duration.Milliseconds(),
		res.Error,
		res.Screenshot,
		res.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create scenario result: %w", err)
	}
	return nil
}

// ListResults returns a run's scenario results in insertion order
func (r *RunRepository) ListResults(runID string) ([]*models.ScenarioResult, error) {
	query := `
		SELECT id, run_id, profile, suite, name, status, attempts, duration_ms,
		       COALESCE(error, ''), COALESCE(screenshot, ''), created_at
		FROM scenario_results
		WHERE run_id = $1
		ORDER BY created_at, suite, name
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario results: %w", err)
	}
	defer rows.Close()

	var results []*models.ScenarioResult
	for rows.Next() {
		res := &models.ScenarioResult{}
		var ms int64
		if err := rows.Scan(
			&res.ID,
			&res.RunID,
			&res.Profile,
			&res.Suite,
			&res.Name,
			&res.Status,
			&res.Attempts,
			&ms,
			&res.Error,
			&res.Screenshot,
			&res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scenario result: %w", err)
		}
		res.Duration = time.Duration(ms) * time.Millisecond
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list scenario results: %w", err)
	}
	return results, nil
}
