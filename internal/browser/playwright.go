package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

const removeElementsScript = `(selectors) => {
	let removed = 0;
	for (const selector of selectors) {
		let nodes;
		try {
			nodes = document.querySelectorAll(selector);
		} catch (e) {
			continue;
		}
		nodes.forEach((el) => {
			if (el instanceof HTMLElement && el.isConnected) {
				el.style.display = "none";
				el.remove();
				removed++;
			}
		});
	}
	return removed;
}`

const neutralizeOverlaysScript = `(minZ) => {
	let count = 0;
	document.querySelectorAll("body *").forEach((el) => {
		if (!(el instanceof HTMLElement)) {
			return;
		}
		const z = parseInt(window.getComputedStyle(el).zIndex || "0", 10);
		if (!isNaN(z) && z > minZ && el.style.display !== "none") {
			el.style.display = "none";
			el.style.pointerEvents = "none";
			count++;
		}
	});
	return count;
}`

type pwPage struct {
	page playwright.Page
}

// Wrap adapts a playwright page to the Page interface
func Wrap(page playwright.Page) Page {
	return &pwPage{page: page}
}

func (p *pwPage) Locator(selector string) Locator {
	return &pwLocator{l: p.page.Locator(selector)}
}

func (p *pwPage) Press(key string) error {
	return p.page.Keyboard().Press(key)
}

// ClickAt clicks the body at the given offset, which is how the page is
// clicked "somewhere neutral" without targeting a specific control.
func (p *pwPage) ClickAt(x, y float64, timeout time.Duration) error {
	return p.page.Locator("body").Click(playwright.LocatorClickOptions{
		Position: &playwright.Position{X: x, Y: y},
		Timeout:  ms(timeout),
	})
}

func (p *pwPage) Wait(d time.Duration) {
	time.Sleep(d)
}

func (p *pwPage) WaitForNetworkIdle(timeout time.Duration) error {
	return mapErr(p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: ms(timeout),
	}))
}

func (p *pwPage) RemoveElements(selectors []string) (int, error) {
	res, err := p.page.Evaluate(removeElementsScript, selectors)
	if err != nil {
		return 0, fmt.Errorf("failed to remove elements: %w", err)
	}
	return toInt(res), nil
}

func (p *pwPage) NeutralizeOverlays(minZIndex int) (int, error) {
	res, err := p.page.Evaluate(neutralizeOverlaysScript, minZIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to neutralize overlays: %w", err)
	}
	return toInt(res), nil
}

type pwLocator struct {
	l playwright.Locator
}

func (l *pwLocator) Locator(selector string) Locator {
	return &pwLocator{l: l.l.Locator(selector)}
}

// Or only composes with other playwright locators; a foreign locator is ignored.
func (l *pwLocator) Or(other Locator) Locator {
	o, ok := other.(*pwLocator)
	if !ok {
		return l
	}
	return &pwLocator{l: l.l.Or(o.l)}
}

func (l *pwLocator) First() Locator {
	return &pwLocator{l: l.l.First()}
}

func (l *pwLocator) Visible() Locator {
	return &pwLocator{l: l.l.Filter(playwright.LocatorFilterOptions{Visible: playwright.Bool(true)})}
}

func (l *pwLocator) WaitFor(state State, timeout time.Duration) error {
	return mapErr(l.l.WaitFor(playwright.LocatorWaitForOptions{
		State:   waitState(state),
		Timeout: ms(timeout),
	}))
}

func (l *pwLocator) IsVisible() (bool, error) {
	return l.l.IsVisible()
}

func (l *pwLocator) Click(timeout time.Duration) error {
	return mapErr(l.l.Click(playwright.LocatorClickOptions{Timeout: ms(timeout)}))
}

func (l *pwLocator) BoundingBox() (*Box, error) {
	r, err := l.l.BoundingBox(playwright.LocatorBoundingBoxOptions{Timeout: ms(2 * time.Second)})
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return &Box{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, nil
}

func (l *pwLocator) Count() (int, error) {
	return l.l.Count()
}

// mapErr lets callers test playwright timeouts with errors.Is(err, ErrTimeout)
func mapErr(err error) error {
	if err != nil && errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

func waitState(s State) *playwright.WaitForSelectorState {
	switch s {
	case StateHidden:
		return playwright.WaitForSelectorStateHidden
	case StateAttached:
		return playwright.WaitForSelectorStateAttached
	default:
		return playwright.WaitForSelectorStateVisible
	}
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
