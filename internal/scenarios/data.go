// Package scenarios holds the menu check suites run by the runner.
package scenarios

import "github.com/themizzi/menucheck/internal/checks"

// Categories are the menu sections every run expects to find
var Categories = []string{
	"All",
	"Breakfast",
	"Savouries & Bakes",
	"Drinks & Snacks",
	"Sandwiches & Salads",
	"Sweet Treats",
	"Hot Food",
}

// Search terms by kind
var (
	ValidSearchTerms     = []string{"sausage roll", "coffee", "sandwich", "pizza"}
	InvalidSearchTerms   = []string{"xyznonexistent", "!@#$%", ""}
	BreakfastSearchTerms = []string{"bacon", "egg", "hash brown", "breakfast roll"}
)

// Price bounds in pounds
const (
	MinPrice = 0.5
	MaxPrice = 15.0
)

// Named viewports
var (
	MobileViewport       = checks.Viewport{Width: 375, Height: 667}
	TabletViewport       = checks.Viewport{Width: 768, Height: 1024}
	DesktopViewport      = checks.Viewport{Width: 1200, Height: 800}
	LargeDesktopViewport = checks.Viewport{Width: 1920, Height: 1080}
	LandscapeViewport    = checks.Viewport{Width: 667, Height: 375}
)

// Allergens offered by the filters
var Allergens = []string{"gluten", "dairy", "eggs", "nuts", "soya", "sesame"}

// Dietary filters
var Diets = []string{"vegan", "vegetarian"}

// Profile groups used to restrict layout scenarios
var (
	DesktopProfiles = []string{"chromium", "firefox", "safari"}
	TouchProfiles   = []string{"mobile chrome", "mobile safari", "tablet"}
)
