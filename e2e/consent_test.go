//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/browser"
	"github.com/themizzi/menucheck/internal/consent"
)

func gotoFixture(t *testing.T, page playwright.Page, query string) {
	t.Helper()
	_, err := page.Goto(menuURL(query), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	require.NoError(t, err)
}

func ensureReady(t *testing.T, page playwright.Page) consent.Outcome {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return consent.NewGate().EnsureReady(ctx, browser.Wrap(page))
}

func bannerCount(t *testing.T, page playwright.Page) int {
	t.Helper()
	n, err := page.Locator(".consent-bar").Count()
	require.NoError(t, err)
	return n
}

func bannerVisible(t *testing.T, page playwright.Page) bool {
	t.Helper()
	visible, err := page.Locator(".consent-bar").First().IsVisible()
	require.NoError(t, err)
	return visible
}

func TestConsentGate_Variants(t *testing.T) {
	tests := []struct {
		variant string
		want    consent.State
	}{
		{"reject", consent.StateRejected},
		{"accept", consent.StateAccepted},
		{"escape", consent.StateEscaped},
		{"outside", consent.StateClickedOutside},
		{"close", consent.StateClosed},
		{"stubborn", consent.StateForceRemoved},
		{"none", consent.StateClear},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			page := newPage(t)
			gotoFixture(t, page, "consent="+tt.variant)

			outcome := ensureReady(t, page)

			assert.Equal(t, tt.want, outcome.State, "outcome: %s", outcome)
			assert.True(t, outcome.Dismissed())
			assert.False(t, bannerVisible(t, page), "banner still visible")
		})
	}
}

func TestConsentGate_RejectTakesPrecedence(t *testing.T) {
	page := newPage(t)
	gotoFixture(t, page, "consent=reject")

	outcome := ensureReady(t, page)

	require.Equal(t, consent.StateRejected, outcome.State)
	assert.True(t, outcome.ConsentRecorded())

	cookies, err := page.Context().Cookies()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, c := range cookies {
		names[c.Name] = true
	}
	assert.True(t, names["OptanonAlertBoxClosed"], "expected consent cookie after reject")
}

func TestConsentGate_ChoicePersistsAcrossReload(t *testing.T) {
	page := newPage(t)
	gotoFixture(t, page, "consent=accept")
	require.Equal(t, consent.StateAccepted, ensureReady(t, page).State)

	gotoFixture(t, page, "consent=accept")
	outcome := ensureReady(t, page)

	assert.Equal(t, consent.StateClear, outcome.State)
	assert.Equal(t, 0, bannerCount(t, page))
}

func TestConsentGate_EscapeIsNotPersisted(t *testing.T) {
	page := newPage(t)
	gotoFixture(t, page, "consent=escape")
	require.Equal(t, consent.StateEscaped, ensureReady(t, page).State)

	gotoFixture(t, page, "consent=escape")

	assert.Equal(t, consent.StateEscaped, ensureReady(t, page).State)
}

func TestConsentGate_Idempotent(t *testing.T) {
	page := newPage(t)
	gotoFixture(t, page, "consent=stubborn")
	require.Equal(t, consent.StateForceRemoved, ensureReady(t, page).State)

	second := ensureReady(t, page)

	assert.Equal(t, consent.StateClear, second.State)
	assert.Equal(t, 0, second.Overlays)
}

func TestConsentGate_SweepsOverlays(t *testing.T) {
	page := newPage(t)
	gotoFixture(t, page, "consent=none&overlay=1")

	outcome := ensureReady(t, page)

	assert.Equal(t, consent.StateClear, outcome.State)
	assert.GreaterOrEqual(t, outcome.Overlays, 1)

	// The menu is clickable once the overlay stops catching pointer events.
	err := page.Locator("a[data-test-card]").First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(5000),
	})
	assert.NoError(t, err)
}

func TestConsentGate_LeavesFiltersModalAlone(t *testing.T) {
	page := newPage(t)
	gotoFixture(t, page, "consent=none")
	ensureReady(t, page)

	require.NoError(t, page.Locator(`[data-test="filterButton"]`).Click())
	modal := page.Locator(`[data-testid="filtersModal"]`)
	require.NoError(t, modal.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(5000),
	}))

	ensureReady(t, page)

	visible, err := modal.IsVisible()
	require.NoError(t, err)
	assert.True(t, visible, "filters modal should survive the sweep")
}

func TestConsentGate_CancelledContext(t *testing.T) {
	page := newPage(t)
	gotoFixture(t, page, "consent=stubborn")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan consent.Outcome, 1)
	go func() { done <- consent.NewGate().EnsureReady(ctx, browser.Wrap(page)) }()

	select {
	case outcome := <-done:
		assert.Zero(t, outcome.Overlays)
	case <-time.After(30 * time.Second):
		t.Fatal("gate did not return after cancellation")
	}
}
