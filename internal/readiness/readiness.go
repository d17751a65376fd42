// Package readiness waits for a page to finish loading before content is
// asserted. Unlike the consent gate, its failures are real failures.
package readiness

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/themizzi/menucheck/internal/browser"
	"github.com/themizzi/menucheck/internal/consent"
)

// Options configures the readiness wait
type Options struct {
	NetworkIdleTimeout time.Duration
	LoadingTimeout     time.Duration
	LoadingSelectors   []string
}

// DefaultOptions returns the 10 second network and loading budgets
func DefaultOptions() Options {
	return Options{
		NetworkIdleTimeout: 10 * time.Second,
		LoadingTimeout:     10 * time.Second,
		LoadingSelectors:   consent.LoadingSelectors,
	}
}

// Wait blocks until the network is idle and any loading indicator is hidden
func Wait(page browser.Page, opts Options) error {
	if err := page.WaitForNetworkIdle(opts.NetworkIdleTimeout); err != nil {
		return fmt.Errorf("page did not reach network idle: %w", err)
	}

	if len(opts.LoadingSelectors) == 0 {
		return nil
	}

	spinner := page.Locator(opts.LoadingSelectors[0])
	for _, sel := range opts.LoadingSelectors[1:] {
		spinner = spinner.Or(page.Locator(sel))
	}

	count, err := spinner.Count()
	if err != nil {
		return fmt.Errorf("failed to look for loading indicator: %w", err)
	}
	if count == 0 {
		return nil
	}

	// One wait per selector; a locator matching several elements is ambiguous.
	if err := waitAllHidden(page, opts.LoadingSelectors, opts.LoadingTimeout); err != nil {
		return fmt.Errorf("loading indicator still visible: %w", err)
	}
	return nil
}

func waitAllHidden(page browser.Page, selectors []string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for _, sel := range selectors {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			remaining = time.Millisecond
		}
		if err := page.Locator(sel).Visible().First().WaitFor(browser.StateHidden, remaining); err != nil {
			return fmt.Errorf("%s: %w", sel, err)
		}
	}
	return nil
}

// EnsurePageReady runs the consent gate and then the readiness wait. The
// gate's outcome is informational; only the wait can fail.
func EnsurePageReady(ctx context.Context, page browser.Page, gate *consent.Gate, opts Options) (consent.Outcome, error) {
	outcome := gate.EnsureReady(ctx, page)
	if !outcome.Dismissed() {
		log.Printf("readiness: continuing after consent gate failure: %v", outcome.Err)
	}

	if err := Wait(page, opts); err != nil {
		return outcome, err
	}
	return outcome, nil
}
