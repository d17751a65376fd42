package config

import (
	"errors"
	"testing"
)

func TestLoadPostgresConfig(t *testing.T) {
	full := map[string]string{
		"POSTGRES_USER":     "menucheck",
		"POSTGRES_PASSWORD": "secret",
		"POSTGRES_DB":       "history",
		"POSTGRES_HOSTNAME": "db",
	}

	tests := []struct {
		name     string
		env      map[string]string
		drop     string
		wantErr  bool
		disabled bool
	}{
		{name: "complete", env: full},
		{name: "nothing set", env: map[string]string{}, wantErr: true, disabled: true},
		{name: "missing user", env: full, drop: "POSTGRES_USER", wantErr: true},
		{name: "missing password", env: full, drop: "POSTGRES_PASSWORD", wantErr: true},
		{name: "missing database", env: full, drop: "POSTGRES_DB", wantErr: true},
		{name: "missing host", env: full, drop: "POSTGRES_HOSTNAME", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadPostgresConfig(func(key string) string {
				if key == tt.drop {
					return ""
				}
				return tt.env[key]
			})

			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if errors.Is(err, ErrHistoryDisabled) != tt.disabled {
					t.Errorf("Unexpected disabled state for error %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			want := "host=db port=5432 user=menucheck password=secret dbname=history sslmode=disable"
			if got := config.ConnectionString(); got != want {
				t.Errorf("Expected %q, got %q", want, got)
			}
		})
	}
}

func TestLoadServerConfig(t *testing.T) {
	config := LoadServerConfig(envFunc(nil))
	if config.Port != "8080" || config.TemplatesDir != "templates" {
		t.Errorf("Unexpected defaults %+v", config)
	}

	config = LoadServerConfig(envFunc(map[string]string{"PORT": "3000", "MENUCHECK_TEMPLATES": "/srv/templates"}))
	if config.Port != "3000" || config.TemplatesDir != "/srv/templates" {
		t.Errorf("Unexpected overrides %+v", config)
	}
}
