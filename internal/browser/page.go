package browser

import (
	"errors"
	"time"
)

// State is the element state a locator can wait for
type State string

// Locator wait states
const (
	StateVisible  State = "visible"
	StateHidden   State = "hidden"
	StateAttached State = "attached"
)

// ErrTimeout is returned by fakes and adapters when a wait runs out of time
var ErrTimeout = errors.New("timeout waiting for element")

// Box is an element's bounding box in CSS pixels
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside the box
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}

// Locator is the subset of a lazy element query the consent and readiness
// gates need. It mirrors playwright's Locator so the production adapter is thin.
type Locator interface {
	Locator(selector string) Locator
	Or(other Locator) Locator
	First() Locator
	// Visible narrows the match to elements that are currently rendered.
	Visible() Locator
	WaitFor(state State, timeout time.Duration) error
	IsVisible() (bool, error)
	Click(timeout time.Duration) error
	BoundingBox() (*Box, error)
	Count() (int, error)
}

// Page is a loaded, renderable page
type Page interface {
	Locator(selector string) Locator
	Press(key string) error
	ClickAt(x, y float64, timeout time.Duration) error
	Wait(d time.Duration)
	WaitForNetworkIdle(timeout time.Duration) error
	// RemoveElements hides and detaches every element matching any selector.
	RemoveElements(selectors []string) (int, error)
	// NeutralizeOverlays hides and disables pointer events on every element
	// whose computed z-index is greater than minZIndex.
	NeutralizeOverlays(minZIndex int) (int, error)
}
