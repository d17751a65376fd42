package consent

import (
	"fmt"
	"time"
)

// State is the terminal state of one gate invocation
type State string

// Gate terminal states. ForceRemoved records that no real consent choice was
// made: the banner was deleted from the document.
const (
	StateClear          State = "clear"
	StateRejected       State = "rejected"
	StateAccepted       State = "accepted"
	StateEscaped        State = "escaped"
	StateClickedOutside State = "clicked-outside"
	StateClosed         State = "closed"
	StateForceRemoved   State = "force-removed"
	StateFailed         State = "failed"
)

// Outcome describes what the gate did to a page
type Outcome struct {
	State State
	// Selector is the control that resolved the banner, if any.
	Selector string
	// Overlays is the number of high z-index elements the sweep neutralized.
	Overlays int
	// Err is the last error swallowed along the way.
	Err     error
	Elapsed time.Duration
}

// ConsentRecorded reports whether the site saw an actual consent choice
func (o Outcome) ConsentRecorded() bool {
	return o.State == StateRejected || o.State == StateAccepted
}

// Dismissed reports whether the page ended up free of a visible banner
func (o Outcome) Dismissed() bool {
	return o.State != StateFailed
}

func (o Outcome) String() string {
	s := string(o.State)
	if o.Selector != "" {
		s += fmt.Sprintf(" via %s", o.Selector)
	}
	if o.Overlays > 0 {
		s += fmt.Sprintf(", %d overlays neutralized", o.Overlays)
	}
	if o.Err != nil {
		s += fmt.Sprintf(" (last error: %v)", o.Err)
	}
	return s
}
