package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menucheck.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
baseURL: http://localhost:8080/menu
profiles:
  - name: chromium
    device: Desktop Chrome
  - name: small phone
    device: iPhone SE
    browser: chromium
thresholds:
  pageLoad: 8s
  maxMenuItems: 50
`)

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	config, err := LoadSuiteConfig(envFunc(nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	config.Apply(f)

	if config.BaseURL != "http://localhost:8080/menu" {
		t.Errorf("Unexpected base URL %s", config.BaseURL)
	}
	if len(config.Profiles) != 2 || config.Profiles[1].Browser != "chromium" {
		t.Errorf("Unexpected profiles %+v", config.Profiles)
	}
	if config.Thresholds.PageLoad != 8*time.Second {
		t.Errorf("Expected 8s page load, got %s", config.Thresholds.PageLoad)
	}
	if config.Thresholds.MaxMenuItems != 50 {
		t.Errorf("Expected 50 max items, got %d", config.Thresholds.MaxMenuItems)
	}
	if config.Thresholds.LargestContentfulPaint != DefaultThresholds().LargestContentfulPaint {
		t.Error("Unset thresholds should keep their defaults")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "profiles: [unterminated"},
		{name: "profile without device", content: "profiles:\n  - name: chromium\n"},
		{name: "bad duration", content: "thresholds:\n  pageLoad: quickly\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFile(writeFile(t, tt.content)); err == nil {
				t.Error("Expected error but got none")
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
