package scenarios

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/pages"
	"github.com/themizzi/menucheck/internal/runner"
)

var imageURL = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|svg)(\?.*)?$`)

// openMenu navigates to the menu, gets past consent and waits for cards
func openMenu(t *runner.T) *pages.MenuPage {
	t.Helper()
	m := newMenu(t)
	gotoMenu(t, m)
	return m
}

func newMenu(t *runner.T) *pages.MenuPage {
	return pages.NewMenuPage(t.Page, t.Config.BaseURL)
}

func gotoMenu(t *runner.T, m *pages.MenuPage) {
	t.Helper()
	outcome, err := m.Goto(t.Context())
	require.NoError(t, err, "menu page did not become ready")
	t.Logf("consent gate: %s", outcome)
	require.NoError(t, m.WaitForItems())
}

// expect returns web-first assertions bounded by the action timeout
func expect(t *runner.T) playwright.PlaywrightAssertions {
	timeout := 5 * time.Second
	if t.Config != nil && t.Config.ActionTimeout > 0 {
		timeout = t.Config.ActionTimeout
	}
	return playwright.NewPlaywrightAssertions(float64(timeout.Milliseconds()))
}

// homeURL is the site root of a menu URL
func homeURL(menu string) string {
	u, err := url.Parse(menu)
	if err != nil || u.Host == "" {
		return menu
	}
	return u.Scheme + "://" + u.Host + "/"
}

// homePattern matches the site root with or without a trailing slash
func homePattern(menu string) *regexp.Regexp {
	root := homeURL(menu)
	return regexp.MustCompile("^" + regexp.QuoteMeta(strings.TrimSuffix(root, "/")) + `/?(\?.*)?$`)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// abortAll fails every request whose URL matches pattern
func abortAll(t *runner.T, pattern interface{}) {
	t.Helper()
	require.NoError(t, t.Page.Route(pattern, func(r playwright.Route) {
		_ = r.Abort()
	}))
}

// slowNetwork delays every request by delay before letting it through
func slowNetwork(t *runner.T, delay time.Duration) {
	t.Helper()
	require.NoError(t, t.Page.Route("**/*", func(r playwright.Route) {
		time.Sleep(delay)
		_ = r.Continue()
	}))
}
