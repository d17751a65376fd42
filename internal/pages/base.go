// Package pages wraps the menu site in page objects. Every navigation goes
// through the consent gate and the readiness wait before returning.
package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/menucheck/internal/browser"
	"github.com/themizzi/menucheck/internal/checks"
	"github.com/themizzi/menucheck/internal/consent"
	"github.com/themizzi/menucheck/internal/readiness"
)

// SearchDebounce is how long a search waits after typing for results to settle
const SearchDebounce = time.Second

// Base holds what every page shares: navigation, logo, search and overlays
type Base struct {
	Page  playwright.Page
	URL   string
	Gate  *consent.Gate
	Ready readiness.Options

	Logo           playwright.Locator
	Navigation     playwright.Locator
	SearchInput    playwright.Locator
	LoadingSpinner playwright.Locator
}

// NewBase creates a page object for url using the default gate
func NewBase(page playwright.Page, url string) *Base {
	return &Base{
		Page:  page,
		URL:   url,
		Gate:  consent.NewGate(),
		Ready: readiness.DefaultOptions(),

		Logo:           page.Locator(`[data-testid="logo"], .logo, img[alt*="Greggs"]`).First(),
		Navigation:     page.Locator(`nav, [role="navigation"]`).First(),
		SearchInput:    page.Locator(`input[type="search"], input[placeholder*="search" i], [data-testid="search"]`).First(),
		LoadingSpinner: page.Locator(strings.Join(consent.LoadingSelectors, ", ")),
	}
}

// Browser returns the page behind the interface the gate works with
func (b *Base) Browser() browser.Page {
	return browser.Wrap(b.Page)
}

// Goto opens the page's URL and makes it ready. The consent outcome is
// returned for logging; only navigation and readiness errors are fatal.
func (b *Base) Goto(ctx context.Context) (consent.Outcome, error) {
	return b.GotoURL(ctx, b.URL)
}

// GotoURL navigates to an arbitrary URL and makes it ready
func (b *Base) GotoURL(ctx context.Context, url string) (consent.Outcome, error) {
	if _, err := b.Page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return consent.Outcome{}, fmt.Errorf("failed to open %s: %w", url, err)
	}
	return readiness.EnsurePageReady(ctx, b.Browser(), b.Gate, b.Ready)
}

// Reload reloads the page and makes it ready again
func (b *Base) Reload(ctx context.Context) (consent.Outcome, error) {
	if _, err := b.Page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return consent.Outcome{}, fmt.Errorf("failed to reload: %w", err)
	}
	return readiness.EnsurePageReady(ctx, b.Browser(), b.Gate, b.Ready)
}

// WaitForPageLoad waits for network idle and hidden loading indicators
func (b *Base) WaitForPageLoad() error {
	return readiness.Wait(b.Browser(), b.Ready)
}

// ClickLogo follows the logo link
func (b *Base) ClickLogo() error {
	if err := b.Logo.Click(); err != nil {
		return fmt.Errorf("failed to click logo: %w", err)
	}
	return b.WaitForPageLoad()
}

// Search types term into the search box, if the page has one
func (b *Base) Search(term string) error {
	n, err := b.SearchInput.Count()
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if err := b.SearchInput.Fill(term); err != nil {
		return fmt.Errorf("failed to search for %q: %w", term, err)
	}
	b.Page.WaitForTimeout(float64(SearchDebounce.Milliseconds()))
	return nil
}

// Title returns the document title
func (b *Base) Title() (string, error) {
	return b.Page.Title()
}

// CurrentURL returns the page's URL
func (b *Base) CurrentURL() string {
	return b.Page.URL()
}

// Screenshot saves a full page screenshot
func (b *Base) Screenshot(path string) error {
	_, err := b.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

// RemoveOverlays strips banners and modal overlays from the DOM
func (b *Base) RemoveOverlays() (int, error) {
	return b.Browser().RemoveElements(consent.RemovalSelectors)
}

// Viewport returns the current viewport size
func (b *Base) Viewport() checks.Viewport {
	s := b.Page.ViewportSize()
	if s == nil {
		return checks.Viewport{}
	}
	return checks.Viewport{Width: s.Width, Height: s.Height}
}

// SetViewport resizes the page
func (b *Base) SetViewport(vp checks.Viewport) error {
	return b.Page.SetViewportSize(vp.Width, vp.Height)
}

// InViewport reports whether l is rendered fully inside the viewport
func (b *Base) InViewport(l playwright.Locator) (bool, error) {
	r, ok, err := Box(l)
	if err != nil || !ok {
		return false, err
	}
	return checks.InViewport(r, b.Viewport()), nil
}

// ComputedStyle reads a computed CSS property of the first match of l
func (b *Base) ComputedStyle(l playwright.Locator, property string) (string, error) {
	v, err := l.Evaluate(`(el, prop) => window.getComputedStyle(el).getPropertyValue(prop)`, property)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return strings.TrimSpace(s), nil
}

// EffectiveBackground walks up from the first match of l to the first
// ancestor with an opaque background colour, defaulting to white.
func (b *Base) EffectiveBackground(l playwright.Locator) (string, error) {
	v, err := l.Evaluate(`(el) => {
		for (let cur = el; cur; cur = cur.parentElement) {
			const bg = window.getComputedStyle(cur).backgroundColor;
			if (bg && bg !== "rgba(0, 0, 0, 0)" && bg !== "transparent") {
				return bg;
			}
		}
		return "rgb(255, 255, 255)";
	}`, nil)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// Box returns the bounding box of l; ok is false when it is not rendered
func Box(l playwright.Locator) (checks.Rect, bool, error) {
	r, err := l.BoundingBox()
	if err != nil {
		return checks.Rect{}, false, err
	}
	if r == nil {
		return checks.Rect{}, false, nil
	}
	return checks.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, true, nil
}
