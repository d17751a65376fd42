package database

import (
	"database/sql"
	"fmt"
	"log"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id UUID PRIMARY KEY,
	base_url TEXT NOT NULL,
	profiles TEXT[] NOT NULL,
	status VARCHAR(20) NOT NULL,
	total INTEGER NOT NULL DEFAULT 0,
	passed INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	flaky INTEGER NOT NULL DEFAULT 0,
	skipped INTEGER NOT NULL DEFAULT 0,
	interrupted INTEGER NOT NULL DEFAULT 0,
	started_at TIMESTAMP,
	finished_at TIMESTAMP,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);

CREATE TABLE IF NOT EXISTS scenario_results (
	id UUID PRIMARY KEY,
	run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	profile VARCHAR(100) NOT NULL,
	suite VARCHAR(255) NOT NULL,
	name VARCHAR(255) NOT NULL,
	status VARCHAR(20) NOT NULL,
	attempts INTEGER NOT NULL DEFAULT 1,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	error TEXT,
	screenshot TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scenario_results_run_id ON scenario_results(run_id);
`

// Migrate creates the run history tables on db
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create run history tables: %w", err)
	}
	return nil
}

// RunMigrations creates the run history tables on the shared connection
func RunMigrations() error {
	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
