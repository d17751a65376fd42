package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the optional YAML overlay for a suite run
type File struct {
	BaseURL    string      `yaml:"baseURL"`
	Profiles   []Profile   `yaml:"profiles"`
	Thresholds *Thresholds `yaml:"thresholds"`
}

// LoadFile reads a YAML overlay from disk
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	for i, p := range f.Profiles {
		if p.Name == "" || p.Device == "" {
			return nil, fmt.Errorf("profile %d in %s needs both name and device", i, path)
		}
	}

	return &f, nil
}

// Apply overlays the file on the config. Zero threshold fields keep their
// current values.
func (c *SuiteConfig) Apply(f *File) {
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if len(f.Profiles) > 0 {
		c.Profiles = f.Profiles
	}
	if t := f.Thresholds; t != nil {
		if t.PageLoad > 0 {
			c.Thresholds.PageLoad = t.PageLoad
		}
		if t.SlowNetworkLoad > 0 {
			c.Thresholds.SlowNetworkLoad = t.SlowNetworkLoad
		}
		if t.LargestContentfulPaint > 0 {
			c.Thresholds.LargestContentfulPaint = t.LargestContentfulPaint
		}
		if t.FirstContentfulPaint > 0 {
			c.Thresholds.FirstContentfulPaint = t.FirstContentfulPaint
		}
		if t.MinMenuItems > 0 {
			c.Thresholds.MinMenuItems = t.MinMenuItems
		}
		if t.MaxMenuItems > 0 {
			c.Thresholds.MaxMenuItems = t.MaxMenuItems
		}
	}
}
