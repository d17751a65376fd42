package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownProfile is returned when a requested profile is not configured
var ErrUnknownProfile = errors.New("unknown profile")

// Profile is a named browser and device combination a scenario runs under
type Profile struct {
	Name string `yaml:"name"`
	// Device is a playwright device descriptor name, e.g. "Pixel 5".
	Device string `yaml:"device"`
	// Browser overrides the device's default browser type.
	Browser string `yaml:"browser,omitempty"`
}

// DefaultProfiles returns the desktop, mobile and tablet matrix
func DefaultProfiles() []Profile {
	return []Profile{
		{Name: "chromium", Device: "Desktop Chrome"},
		{Name: "firefox", Device: "Desktop Firefox"},
		{Name: "safari", Device: "Desktop Safari"},
		{Name: "mobile chrome", Device: "Pixel 5"},
		{Name: "mobile safari", Device: "iPhone 12"},
		{Name: "tablet", Device: "iPad Pro"},
	}
}

// SelectProfiles returns the named profiles in the order requested. No names
// selects every profile.
func SelectProfiles(all []Profile, names []string) ([]Profile, error) {
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]Profile, len(all))
	for _, p := range all {
		byName[strings.ToLower(p.Name)] = p
	}

	selected := make([]Profile, 0, len(names))
	for _, name := range names {
		p, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
		}
		selected = append(selected, p)
	}
	return selected, nil
}

// Slug is a filesystem friendly form of the profile name
func (p Profile) Slug() string {
	return strings.ReplaceAll(strings.ToLower(p.Name), " ", "-")
}
