// Package testutil provides throwaway Postgres schemas for integration tests.
package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/database"
)

// TestDatabase is a throwaway schema holding the run history tables
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	admin      *sql.DB
}

// SetupTestDatabase creates a uniquely named schema, points a connection at it
// and migrates it. The schema is dropped when the test finishes.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg, err := config.LoadPostgresConfig(func(key string) string {
		return getEnvOrDefault(key, map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
			"POSTGRES_HOSTNAME": "localhost",
		}[key])
	})
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	admin, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	td := &TestDatabase{
		SchemaName: fmt.Sprintf("menucheck_test_%d_%d", time.Now().UnixNano(), rand.Intn(10000)),
		admin:      admin,
	}
	t.Cleanup(func() { td.Teardown(t) })

	if _, err := admin.Exec("CREATE SCHEMA " + td.SchemaName); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	td.DB, err = sql.Open("postgres", fmt.Sprintf("%s search_path=%s", cfg.ConnectionString(), td.SchemaName))
	if err != nil {
		t.Fatalf("Failed to connect to test schema: %v", err)
	}
	td.DB.SetMaxOpenConns(5)
	td.DB.SetMaxIdleConns(2)

	if err := database.Migrate(td.DB); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return td
}

// Teardown drops the schema and closes both connections. Safe to call twice.
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
		td.DB = nil
	}
	if td.admin == nil {
		return
	}
	if _, err := td.admin.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
		t.Logf("Warning: Failed to drop test schema %s: %v", td.SchemaName, err)
	}
	td.admin.Close()
	td.admin = nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
