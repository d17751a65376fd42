package runner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/menucheck/internal/browser"
	"github.com/themizzi/menucheck/internal/config"
)

// Selection errors
var (
	ErrNoScenarios     = errors.New("no scenarios selected")
	ErrFocusedScenario = errors.New("focused scenarios are not allowed on CI")
)

// Scenario is one named check
type Scenario struct {
	Suite string
	Name  string
	// Only focuses the run on this scenario, outside CI.
	Only bool
	// Profiles restricts the scenario to the named profiles. Empty means all.
	Profiles []string
	Run      func(t *T)
}

// Title is the suite and name joined for display and filtering
func (s Scenario) Title() string {
	return s.Suite + " > " + s.Name
}

// AppliesTo reports whether the scenario runs under the profile
func (s Scenario) AppliesTo(p config.Profile) bool {
	if len(s.Profiles) == 0 {
		return true
	}
	for _, name := range s.Profiles {
		if strings.EqualFold(name, p.Name) {
			return true
		}
	}
	return false
}

// Session is an isolated browser context a single attempt runs in
type Session interface {
	Page() playwright.Page
	Browser() browser.Page
	Screenshot(path string) error
	Close() error
}

// Sessions opens a fresh session per attempt
type Sessions interface {
	Open(ctx context.Context, profile config.Profile) (Session, error)
}

// SessionsFunc adapts a function to Sessions
type SessionsFunc func(ctx context.Context, profile config.Profile) (Session, error)

// Open calls f
func (f SessionsFunc) Open(ctx context.Context, profile config.Profile) (Session, error) {
	return f(ctx, profile)
}

// Select applies focus and grep filtering to the scenario list
func Select(scenarios []Scenario, grep *regexp.Regexp, forbidOnly bool) ([]Scenario, error) {
	var focused []Scenario
	for _, s := range scenarios {
		if s.Only {
			focused = append(focused, s)
		}
	}
	if len(focused) > 0 {
		if forbidOnly {
			titles := make([]string, len(focused))
			for i, s := range focused {
				titles[i] = s.Title()
			}
			return nil, fmt.Errorf("%w: %s", ErrFocusedScenario, strings.Join(titles, ", "))
		}
		scenarios = focused
	}

	var selected []Scenario
	for _, s := range scenarios {
		if grep == nil || grep.MatchString(s.Title()) {
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoScenarios
	}
	return selected, nil
}
