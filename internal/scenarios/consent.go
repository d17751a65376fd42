package scenarios

import (
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/browser"
	"github.com/themizzi/menucheck/internal/consent"
	"github.com/themizzi/menucheck/internal/driver"
	"github.com/themizzi/menucheck/internal/pages"
	"github.com/themizzi/menucheck/internal/runner"
)

const consentSuite = "Cookie Consent"

func consentScenarios() []runner.Scenario {
	return []runner.Scenario{
		{Suite: consentSuite, Name: "dismisses the banner on page load", Run: dismissesBanner},
		{Suite: consentSuite, Name: "stored preferences keep the banner away", Run: storedPreferences},
		{Suite: consentSuite, Name: "falls back to accepting when reject is unavailable", Run: acceptFallback},
		{Suite: consentSuite, Name: "banner stays dismissed after reload", Run: bannerStaysDismissed},
	}
}

// gotoRaw navigates without running the gate
func gotoRaw(t *runner.T, url string) {
	t.Helper()
	_, err := t.Page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	require.NoError(t, err)
}

func dismissesBanner(t *runner.T) {
	base := pages.NewBase(t.Page, t.Config.BaseURL)
	outcome, err := base.Goto(t.Context())
	require.NoError(t, err)
	t.Logf("consent gate: %s", outcome)

	assert.NotEqual(t, consent.StateFailed, outcome.State, "gate failed: %v", outcome.Err)
	assert.False(t, base.Gate.BannerPresent(base.Browser()), "banner still visible after gate")
	assert.NoError(t, expect(t).Locator(t.Page.Locator("body")).ToBeVisible())
}

func storedPreferences(t *runner.T) {
	require.NoError(t, driver.ApplyPreferences(t.Page.Context(), t.Config.BaseURL, consent.PreferenceReject))

	gotoRaw(t, t.Config.BaseURL)
	base := pages.NewBase(t.Page, t.Config.BaseURL)
	require.NoError(t, base.WaitForPageLoad())

	banner := t.Page.Locator(`.cookie-banner, .cookie-consent, [class*="cookie"]`).First()
	assert.NoError(t, expect(t).Locator(banner).Not().ToBeVisible())
}

func acceptFallback(t *runner.T) {
	gotoRaw(t, t.Config.BaseURL)

	gate := consent.NewGate()
	page := pages.NewBase(t.Page, t.Config.BaseURL).Browser()
	present := gate.BannerPresent(page)
	if present && anyVisible(t, page, gate.Reject) {
		t.Skipf("banner offers a reject control")
	}
	canAccept := present && anyVisible(t, page, gate.Accept)

	outcome := gate.EnsureReady(t.Context(), page)
	t.Logf("consent gate: %s", outcome)
	if !present {
		assert.Equal(t, consent.StateClear, outcome.State)
		return
	}

	if canAccept {
		assert.Equal(t, consent.StateAccepted, outcome.State, "expected the accept control to be used: %s", outcome)
	} else {
		assert.True(t, outcome.Dismissed(), "banner was not dismissed: %s", outcome)
	}
	assert.False(t, gate.BannerPresent(page), "banner still visible")
}

// anyVisible reports whether any selector matches a rendered element
func anyVisible(t *runner.T, page browser.Page, selectors []string) bool {
	for _, sel := range selectors {
		n, err := page.Locator(sel).Visible().Count()
		require.NoError(t, err)
		if n > 0 {
			return true
		}
	}
	return false
}

func bannerStaysDismissed(t *runner.T) {
	base := pages.NewBase(t.Page, t.Config.BaseURL)
	outcome, err := base.Goto(t.Context())
	require.NoError(t, err)
	if !outcome.ConsentRecorded() {
		t.Skipf("no consent choice was recorded (%s)", outcome.State)
	}

	_, err = t.Page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	require.NoError(t, err)
	require.NoError(t, base.WaitForPageLoad())

	assert.False(t, base.Gate.BannerPresent(base.Browser()), "banner came back after reload")
}
