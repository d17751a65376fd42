package scenarios

import (
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/pages"
	"github.com/themizzi/menucheck/internal/runner"
)

const errorSuite = "Error Handling"

var (
	imageRequests = regexp.MustCompile(`(?i)\.(png|jpe?g|webp)(\?.*)?$`)
	apiRequests   = regexp.MustCompile(`/api/`)
	menuAPI       = regexp.MustCompile(`/api/menu`)
)

// SlowNetworkDelay is added to every request by the slow network scenarios
var SlowNetworkDelay = 500 * time.Millisecond

func errorScenarios() []runner.Scenario {
	return []runner.Scenario{
		{Suite: errorSuite, Name: "reports network errors", Run: networkError},
		{Suite: errorSuite, Name: "finishes loading on a slow network", Run: slowLoading},
		{Suite: errorSuite, Name: "stays usable with page script errors", Run: scriptErrors},
		{Suite: errorSuite, Name: "handles an empty menu response", Run: emptyMenu},
		{Suite: errorSuite, Name: "falls back for missing images", Run: missingImages},
		{Suite: errorSuite, Name: "falls back for corrupted images", Run: corruptedImages},
		{Suite: errorSuite, Name: "recovers from API failures", Run: apiRecovery},
	}
}

func networkError(t *runner.T) {
	abortAll(t, "**/*")
	defer t.Page.Unroute("**/*")

	m := newMenu(t)
	_, err := m.Goto(t.Context())
	assert.Error(t, err, "navigation succeeded with every request aborted")

	if visible, _ := m.ErrorVisible(); visible {
		t.Logf("site rendered its own error state")
	}
}

func slowLoading(t *runner.T) {
	slowNetwork(t, SlowNetworkDelay)
	m := openMenu(t)

	if n, _ := m.LoadingSpinner.Count(); n > 0 {
		assert.NoError(t, expect(t).Locator(m.LoadingSpinner.First()).ToBeHidden())
	}
	n, err := m.Items.Count()
	require.NoError(t, err)
	assert.Greater(t, n, 0)
}

func scriptErrors(t *runner.T) {
	require.NoError(t, t.Page.AddInitScript(playwright.Script{
		Content: playwright.String(`window.addEventListener("error", (e) => console.error("page error:", e.error));`),
	}))
	m := openMenu(t)
	assert.NoError(t, expect(t).Locator(m.Items.First()).ToBeVisible())
}

func emptyMenu(t *runner.T) {
	require.NoError(t, t.Page.Route(menuAPI, func(r playwright.Route) {
		_ = r.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("application/json"),
			Body:        `{"items":[]}`,
		})
	}))

	m := newMenu(t)
	_, err := m.Goto(t.Context())
	require.NoError(t, err)

	empty := t.Page.Locator(`[data-testid="empty-state"], .empty-menu, .no-items-message, :text("No items available"), :text("Menu currently unavailable")`).First()
	if c, _ := empty.Count(); c > 0 {
		assert.NoError(t, expect(t).Locator(empty).ToBeVisible())
	}

	n, err := m.Items.Count()
	require.NoError(t, err)
	assert.Zero(t, n, "cards rendered from an empty response")
	assert.NoError(t, expect(t).Locator(t.Page.Locator("body")).ToBeVisible())
}

// imagesFallBack checks every card still shows its image, a placeholder or alt text
func imagesFallBack(t *runner.T, m *pages.MenuPage) {
	t.Helper()
	n, err := m.Items.Count()
	require.NoError(t, err)
	require.Greater(t, n, 0)

	for i := 0; i < n; i++ {
		card := m.Items.Nth(i)
		img := card.Locator("img").First()
		visible, _ := img.IsVisible()
		alt, _ := img.GetAttribute("alt")
		placeholder, _ := card.Locator(".image-placeholder").Count()
		assert.True(t, visible || placeholder > 0 || alt != "", "card %d has no image fallback", i)
	}
}

func missingImages(t *runner.T) {
	abortAll(t, imageRequests)
	imagesFallBack(t, openMenu(t))
}

func corruptedImages(t *runner.T) {
	require.NoError(t, t.Page.Route(imageRequests, func(r playwright.Route) {
		_ = r.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("image/png"),
			Body:        "corrupteddata",
		})
	}))
	imagesFallBack(t, openMenu(t))
}

func apiRecovery(t *runner.T) {
	abortAll(t, apiRequests)

	m := newMenu(t)
	_, err := m.Goto(t.Context())
	require.NoError(t, err)

	errVisible, err := m.ErrorVisible()
	require.NoError(t, err)
	t.Logf("error state shown while API is down: %v", errVisible)

	require.NoError(t, t.Page.Unroute(apiRequests))

	count := 0
	for attempt := 0; attempt < 3 && count == 0; attempt++ {
		_, err := m.Reload(t.Context())
		require.NoError(t, err)
		require.NoError(t, m.WaitForItems())
		count, err = m.Items.Count()
		require.NoError(t, err)
	}
	assert.Greater(t, count, 0, "menu did not recover")
}
