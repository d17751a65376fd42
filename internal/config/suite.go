package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the live menu the suite targets when none is configured
const DefaultBaseURL = "https://www.greggs.com/menu"

// Thresholds bound the performance scenarios
type Thresholds struct {
	PageLoad               time.Duration `yaml:"pageLoad"`
	SlowNetworkLoad        time.Duration `yaml:"slowNetworkLoad"`
	LargestContentfulPaint time.Duration `yaml:"largestContentfulPaint"`
	FirstContentfulPaint   time.Duration `yaml:"firstContentfulPaint"`
	MinMenuItems           int           `yaml:"minMenuItems"`
	MaxMenuItems           int           `yaml:"maxMenuItems"`
}

// DefaultThresholds returns the budgets the performance suite asserts against
func DefaultThresholds() Thresholds {
	return Thresholds{
		PageLoad:               5 * time.Second,
		SlowNetworkLoad:        10 * time.Second,
		LargestContentfulPaint: 2500 * time.Millisecond,
		FirstContentfulPaint:   1800 * time.Millisecond,
		MinMenuItems:           10,
		MaxMenuItems:           200,
	}
}

// SuiteConfig holds everything a check run needs
type SuiteConfig struct {
	BaseURL           string
	CI                bool
	Workers           int
	Retries           int
	TestTimeout       time.Duration
	ActionTimeout     time.Duration
	NavigationTimeout time.Duration
	Reporters         []string
	OutputDir         string
	StorageStatePath  string
	Headless          bool
	Consent           string
	Profiles          []Profile
	Thresholds        Thresholds
	// ConfigFile is an optional YAML overlay
	ConfigFile string
}

// ForbidOnly reports whether focused scenarios are an error. They are on CI.
func (c *SuiteConfig) ForbidOnly() bool {
	return c.CI
}

// LoadSuiteConfig loads suite configuration from environment variables
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	ci := parseBool(getenv("CI"))

	config := &SuiteConfig{
		BaseURL:           getenv("MENUCHECK_BASE_URL"),
		CI:                ci,
		TestTimeout:       130 * time.Second,
		ActionTimeout:     10 * time.Second,
		NavigationTimeout: 130 * time.Second,
		Reporters:         []string{"html", "json", "junit"},
		OutputDir:         getenv("MENUCHECK_OUTPUT_DIR"),
		StorageStatePath:  getenv("MENUCHECK_STORAGE_STATE"),
		Headless:          true,
		Consent:           getenv("MENUCHECK_CONSENT"),
		Profiles:          DefaultProfiles(),
		Thresholds:        DefaultThresholds(),
		ConfigFile:        getenv("MENUCHECK_CONFIG"),
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.OutputDir == "" {
		config.OutputDir = "test-results"
	}
	if config.StorageStatePath == "" {
		config.StorageStatePath = "storage-state.json"
	}

	// One worker on CI keeps the shared target from rate limiting the run.
	config.Workers = runtime.NumCPU()
	if ci {
		config.Workers = 1
	}
	if v := getenv("MENUCHECK_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("MENUCHECK_WORKERS must be a positive integer, got %q", v)
		}
		config.Workers = n
	}

	if ci {
		config.Retries = 2
	}
	if v := getenv("MENUCHECK_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("MENUCHECK_RETRIES must be a non-negative integer, got %q", v)
		}
		config.Retries = n
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"MENUCHECK_TEST_TIMEOUT", &config.TestTimeout},
		{"MENUCHECK_ACTION_TIMEOUT", &config.ActionTimeout},
		{"MENUCHECK_NAVIGATION_TIMEOUT", &config.NavigationTimeout},
	}
	for _, d := range durations {
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive duration, got %q", d.key, v)
		}
		*d.dst = parsed
	}

	if v := getenv("MENUCHECK_REPORTERS"); v != "" {
		config.Reporters = SplitList(v)
	}
	if v := getenv("MENUCHECK_HEADLESS"); v != "" {
		config.Headless = parseBool(v)
	}

	if v := getenv("MENUCHECK_PROFILES"); v != "" {
		profiles, err := SelectProfiles(config.Profiles, SplitList(v))
		if err != nil {
			return nil, err
		}
		config.Profiles = profiles
	}

	return config, nil
}

// Validate checks the run settings once every overlay has been applied
func (c *SuiteConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be a positive integer, got %d", c.Workers)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must be a non-negative integer, got %d", c.Retries)
	}
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"test timeout", c.TestTimeout},
		{"action timeout", c.ActionTimeout},
		{"navigation timeout", c.NavigationTimeout},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be a positive duration, got %s", d.name, d.d)
		}
	}
	return nil
}

// SplitList splits a comma separated value, dropping empty entries
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
