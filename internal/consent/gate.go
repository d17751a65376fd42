// Package consent gets cookie and privacy overlays out of the way before a
// scenario touches the page.
//
// The gate is best effort: it never returns an error and never lets a driver
// panic escape. Anything that goes wrong is logged and recorded on the Outcome.
package consent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/themizzi/menucheck/internal/browser"
)

// DefaultZIndexThreshold is the stack order above which leftover elements are
// treated as blocking overlays
const DefaultZIndexThreshold = 1000

// Timeouts bounds each probe independently so one missing selector cannot
// exhaust the whole budget
type Timeouts struct {
	Detect     time.Duration
	Probe      time.Duration
	Click      time.Duration
	Hidden     time.Duration
	Settle     time.Duration
	CloseProbe time.Duration
}

// DefaultTimeouts returns the sub-timeouts used when none are configured
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Detect:     3 * time.Second,
		Probe:      1 * time.Second,
		Click:      3 * time.Second,
		Hidden:     5 * time.Second,
		Settle:     1 * time.Second,
		CloseProbe: 500 * time.Millisecond,
	}
}

// Gate dismisses consent banners using an ordered cascade of selectors
type Gate struct {
	Timeouts        Timeouts
	Banner          []string
	Reject          []string
	Accept          []string
	Close           []string
	Removal         []string
	ZIndexThreshold int
}

// NewGate creates a gate with the default selector sets and timeouts
func NewGate() *Gate {
	return &Gate{
		Timeouts:        DefaultTimeouts(),
		Banner:          BannerSelectors,
		Reject:          RejectSelectors,
		Accept:          AcceptSelectors,
		Close:           CloseSelectors,
		Removal:         RemovalSelectors,
		ZIndexThreshold: DefaultZIndexThreshold,
	}
}

// EnsureReady makes the page interactable by dismissing any consent overlay
// and neutralizing leftover high z-index elements. It always returns.
func (g *Gate) EnsureReady(ctx context.Context, page browser.Page) Outcome {
	start := time.Now()
	out := Outcome{State: StateFailed}

	g.guard(&out, func() {
		out = g.dismiss(ctx, page)
	})

	if ctx.Err() == nil {
		g.guard(&out, func() {
			n, err := page.NeutralizeOverlays(g.ZIndexThreshold)
			if err != nil {
				log.Printf("consent: overlay sweep failed: %v", err)
				out.Err = err
				return
			}
			out.Overlays = n
		})
	}

	out.Elapsed = time.Since(start)
	log.Printf("consent: %s in %s", out, out.Elapsed.Round(time.Millisecond))
	return out
}

// BannerPresent reports whether a banner is visible right now, without waiting
func (g *Gate) BannerPresent(page browser.Page) (present bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("consent: banner probe panicked: %v", r)
			present = false
		}
	}()
	visible, err := anyOf(page, g.Banner).IsVisible()
	return err == nil && visible
}

func (g *Gate) guard(out *Outcome, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("consent: recovered from panic: %v", r)
			log.Print(err)
			out.Err = err
		}
	}()
	fn()
}

func (g *Gate) dismiss(ctx context.Context, page browser.Page) Outcome {
	if len(g.Banner) == 0 {
		return Outcome{State: StateClear}
	}

	banner := anyOf(page, g.Banner)
	if err := banner.WaitFor(browser.StateVisible, g.Timeouts.Detect); err != nil {
		if errors.Is(err, browser.ErrTimeout) {
			log.Println("consent: no banner detected")
			return Outcome{State: StateClear}
		}
		log.Printf("consent: banner detection failed: %v", err)
		return Outcome{State: StateFailed, Err: err}
	}
	log.Println("consent: banner detected")

	var lastErr error
	steps := []struct {
		state     State
		selectors []string
	}{
		{StateRejected, g.Reject},
		{StateAccepted, g.Accept},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return Outcome{State: StateFailed, Err: err}
		}
		sel, err := g.clickFirst(page, banner, step.selectors)
		if sel != "" {
			return Outcome{State: step.state, Selector: sel}
		}
		if err != nil {
			lastErr = err
		}
	}

	return g.alternatives(ctx, page, banner, lastErr)
}

// clickFirst clicks the first visible control matching one of the selectors
// and waits for the banner to go away. It returns the selector that worked.
// A selector is looked up inside the banner and only across the whole page
// when the banner has no match for it. Selectors with no element in the
// document are skipped without waiting; the banner is already showing, so its
// controls are rendered.
func (g *Gate) clickFirst(page browser.Page, banner browser.Locator, selectors []string) (string, error) {
	var lastErr error
	for _, sel := range selectors {
		button, err := control(page, banner, sel)
		if err != nil {
			lastErr = err
		}
		if button == nil {
			continue
		}
		if err := button.WaitFor(browser.StateVisible, g.Timeouts.Probe); err != nil {
			if !errors.Is(err, browser.ErrTimeout) {
				lastErr = err
			}
			continue
		}
		if err := button.Click(g.Timeouts.Click); err != nil {
			log.Printf("consent: failed to click %s: %v", sel, err)
			lastErr = err
			continue
		}
		log.Printf("consent: clicked %s", sel)
		if err := banner.WaitFor(browser.StateHidden, g.Timeouts.Hidden); err != nil {
			log.Printf("consent: banner still visible after %s: %v", sel, err)
			lastErr = err
			continue
		}
		return sel, nil
	}
	return "", lastErr
}

func (g *Gate) alternatives(ctx context.Context, page browser.Page, banner browser.Locator, lastErr error) Outcome {
	out := Outcome{Err: lastErr}

	log.Println("consent: trying Escape")
	if err := page.Press("Escape"); err != nil {
		out.Err = err
	} else if g.settled(page, banner) {
		out.State = StateEscaped
		return out
	}

	if err := ctx.Err(); err != nil {
		return Outcome{State: StateFailed, Err: err}
	}

	box, err := banner.BoundingBox()
	switch {
	case err != nil:
		out.Err = err
	case box != nil:
		x, y := outsidePoint(*box)
		log.Printf("consent: clicking outside banner at (%.0f, %.0f)", x, y)
		if err := page.ClickAt(x, y, g.Timeouts.Click); err != nil {
			out.Err = err
		} else if g.settled(page, banner) {
			out.State = StateClickedOutside
			return out
		}
	}

	for _, sel := range g.Close {
		if err := ctx.Err(); err != nil {
			return Outcome{State: StateFailed, Err: err}
		}
		button := banner.Locator(sel).First()
		if n, err := button.Count(); err != nil || n == 0 {
			continue
		}
		if err := button.WaitFor(browser.StateVisible, g.Timeouts.CloseProbe); err != nil {
			continue
		}
		if err := button.Click(g.Timeouts.Click); err != nil {
			out.Err = err
			continue
		}
		if g.settled(page, banner) {
			out.State = StateClosed
			out.Selector = sel
			return out
		}
	}

	log.Println("consent: force removing banner")
	n, err := page.RemoveElements(g.Removal)
	if err != nil {
		log.Printf("consent: force removal failed: %v", err)
		out.Err = err
	} else {
		log.Printf("consent: removed %d elements", n)
	}
	out.State = StateForceRemoved
	return out
}

func (g *Gate) settled(page browser.Page, banner browser.Locator) bool {
	page.Wait(g.Timeouts.Settle)
	visible, err := banner.IsVisible()
	return err == nil && !visible
}

// control resolves sel inside the banner, falling back to the page. It
// returns nil when neither scope has a match.
func control(page browser.Page, banner browser.Locator, sel string) (browser.Locator, error) {
	var lastErr error
	for _, l := range []browser.Locator{banner.Locator(sel).First(), page.Locator(sel).First()} {
		n, err := l.Count()
		if err != nil {
			lastErr = err
			continue
		}
		if n > 0 {
			return l, nil
		}
	}
	return nil, lastErr
}

// anyOf matches the first visible element for any of the selectors. Hidden
// matches are skipped so a collapsed notice cannot mask a showing banner.
func anyOf(page browser.Page, selectors []string) browser.Locator {
	l := page.Locator(selectors[0])
	for _, sel := range selectors[1:] {
		l = l.Or(page.Locator(sel))
	}
	return l.Visible().First()
}

// outsidePoint picks a point near the top-left of the viewport that does not
// fall inside the banner
func outsidePoint(b browser.Box) (float64, float64) {
	candidates := [][2]float64{
		{10, 10},
		{10, b.Y - 10},
		{10, b.Y + b.Height + 10},
		{b.X + b.Width + 10, 10},
	}
	for _, c := range candidates {
		if c[0] >= 0 && c[1] >= 0 && !b.Contains(c[0], c[1]) {
			return c[0], c[1]
		}
	}
	return 10, 10
}
