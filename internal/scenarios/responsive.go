package scenarios

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/checks"
	"github.com/themizzi/menucheck/internal/pages"
	"github.com/themizzi/menucheck/internal/runner"
)

const responsiveSuite = "Responsive Design"

func responsiveScenarios() []runner.Scenario {
	return []runner.Scenario{
		{Suite: responsiveSuite, Name: "stacks cards on mobile", Run: mobileStacking},
		{Suite: responsiveSuite, Name: "supports touch on tablets", Run: tabletTouch, Profiles: TouchProfiles},
		{Suite: responsiveSuite, Name: "shows several columns on large screens", Run: largeScreenColumns, Profiles: DesktopProfiles},
		{Suite: responsiveSuite, Name: "keeps card content across viewports", Run: consistentAcrossViewports},
		{Suite: responsiveSuite, Name: "keeps items across orientation changes", Run: orientationChange},
	}
}

// openMenuAt resizes the page before opening the menu
func openMenuAt(t *runner.T, vp checks.Viewport) *pages.MenuPage {
	t.Helper()
	m := newMenu(t)
	require.NoError(t, m.SetViewport(vp))
	gotoMenu(t, m)
	return m
}

func itemBoxes(t *runner.T, m *pages.MenuPage, indexes ...int) ([]checks.Rect, bool) {
	t.Helper()
	boxes := make([]checks.Rect, 0, len(indexes))
	for _, i := range indexes {
		r, ok, err := m.Item(i).Box()
		require.NoError(t, err)
		if !ok {
			return nil, false
		}
		boxes = append(boxes, r)
	}
	return boxes, true
}

func mobileStacking(t *runner.T) {
	m := openMenuAt(t, MobileViewport)

	nav := t.Page.Locator(`.mobile-nav, [data-testid="mobile-nav"], .hamburger, button[aria-label*="menu" i]`).First()
	if c, _ := nav.Count(); c > 0 {
		assert.NoError(t, expect(t).Locator(nav).ToBeVisible())
	}

	n, err := m.ItemCount()
	require.NoError(t, err)
	if n < 2 {
		t.Skipf("need two items to compare, have %d", n)
	}
	boxes, ok := itemBoxes(t, m, 0, 1)
	require.True(t, ok, "cards are not rendered")
	assert.True(t, checks.StackedVertically(boxes[0], boxes[1]),
		"second card at y=%.0f is beside the first (y=%.0f, h=%.0f)", boxes[1].Y, boxes[0].Y, boxes[0].Height)
	assert.True(t, checks.FitsWidth(boxes[0], MobileViewport), "card overflows the mobile viewport")
}

func tabletTouch(t *runner.T) {
	m := openMenuAt(t, TabletViewport)

	grid := t.Page.Locator(`button[data-component="HeaderSwitch"], [data-testid="menu-grid"], .menu-grid`).First()
	assert.NoError(t, expect(t).Locator(grid).ToBeVisible())

	assert.NoError(t, m.FirstItem().Element.Tap())
}

func largeScreenColumns(t *runner.T) {
	m := openMenuAt(t, LargeDesktopViewport)

	n, err := m.ItemCount()
	require.NoError(t, err)
	if n < 3 {
		t.Skipf("need three items to compare, have %d", n)
	}
	boxes, ok := itemBoxes(t, m, 0, 2)
	require.True(t, ok, "cards are not rendered")
	assert.True(t, checks.SameRow(boxes[0], boxes[1]),
		"third card at y=%.0f is not on the first row (y=%.0f)", boxes[1].Y, boxes[0].Y)
}

func consistentAcrossViewports(t *runner.T) {
	m := newMenu(t)
	for _, vp := range []checks.Viewport{MobileViewport, TabletViewport, DesktopViewport} {
		label := fmt.Sprintf("%dx%d", vp.Width, vp.Height)
		require.NoError(t, m.SetViewport(vp))
		gotoMenu(t, m)

		first := m.FirstItem()
		e := expect(t)
		assert.NoError(t, e.Locator(first.Element).ToBeVisible(), label)
		assert.NoError(t, e.Locator(first.NameText).ToBeVisible(), label)
		if c, _ := first.PriceText.Count(); c > 0 {
			assert.NoError(t, e.Locator(first.PriceText).ToBeVisible(), label)
		}
	}
}

func orientationChange(t *runner.T) {
	m := openMenuAt(t, MobileViewport)
	portrait, err := m.ItemCount()
	require.NoError(t, err)

	require.NoError(t, m.SetViewport(LandscapeViewport))
	landscape, err := m.ItemCount()
	require.NoError(t, err)

	assert.Equal(t, portrait, landscape)
}
