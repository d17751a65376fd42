package scenarios

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/runner"
)

const performanceSuite = "Performance"

const lcpScript = `() => new Promise((resolve) => {
	let last = 0;
	try {
		new PerformanceObserver((list) => {
			const entries = list.getEntries();
			last = entries[entries.length - 1].startTime;
			resolve(last);
		}).observe({ type: "largest-contentful-paint", buffered: true });
	} catch (e) {
		resolve(0);
	}
	setTimeout(() => resolve(last), 3000);
})`

const fcpScript = `() => {
	const e = performance.getEntriesByName("first-contentful-paint")[0];
	return e ? e.startTime : 0;
}`

func performanceScenarios() []runner.Scenario {
	return []runner.Scenario{
		{Suite: performanceSuite, Name: "loads the menu within budget", Run: loadTime},
		{Suite: performanceSuite, Name: "lazy loads images", Run: lazyImages},
		{Suite: performanceSuite, Name: "renders a sensible number of items", Run: itemCountBounds},
		{Suite: performanceSuite, Name: "meets paint timing budgets", Run: paintTimings},
		{Suite: performanceSuite, Name: "loads within budget on a slow network", Run: slowNetworkLoad},
	}
}

func loadTime(t *runner.T) {
	start := time.Now()
	openMenu(t)
	elapsed := time.Since(start)
	t.Logf("menu ready in %s", elapsed)

	assert.Less(t, elapsed, t.Config.Thresholds.PageLoad, "page load budget exceeded")
	heading := t.Page.Locator(`h1, .menu-title, [data-testid="page-title"]`).First()
	assert.NoError(t, expect(t).Locator(heading).ToBeVisible())
}

func lazyImages(t *runner.T) {
	m := openMenu(t)
	n, err := m.ItemCount()
	require.NoError(t, err)

	lazy := 0
	for i := 0; i < minInt(n, 10); i++ {
		v, err := m.Item(i).Image.GetAttribute("loading")
		require.NoError(t, err)
		if v == "lazy" {
			lazy++
		}
	}
	assert.Greater(t, lazy, 0, "no lazily loaded images among the first %d", minInt(n, 10))
}

func itemCountBounds(t *runner.T) {
	m := openMenu(t)
	require.NoError(t, m.ScrollToBottom(2*time.Second))

	n, err := m.ItemCount()
	require.NoError(t, err)
	th := t.Config.Thresholds
	assert.Greater(t, n, th.MinMenuItems)
	assert.Less(t, n, th.MaxMenuItems)

	offset, err := t.Page.Evaluate(`() => window.pageYOffset`)
	require.NoError(t, err)
	assert.Greater(t, toFloat(offset), 0.0, "page did not scroll")
}

func paintTimings(t *runner.T) {
	openMenu(t)
	th := t.Config.Thresholds

	fcp, err := t.Page.Evaluate(fcpScript)
	require.NoError(t, err)
	if v := toFloat(fcp); v > 0 {
		t.Logf("first contentful paint: %.0fms", v)
		assert.Less(t, v, float64(th.FirstContentfulPaint.Milliseconds()), "FCP budget exceeded")
	}

	lcp, err := t.Page.Evaluate(lcpScript)
	require.NoError(t, err)
	if v := toFloat(lcp); v > 0 {
		t.Logf("largest contentful paint: %.0fms", v)
		assert.Less(t, v, float64(th.LargestContentfulPaint.Milliseconds()), "LCP budget exceeded")
	}
}

func slowNetworkLoad(t *runner.T) {
	slowNetwork(t, SlowNetworkDelay)

	start := time.Now()
	openMenu(t)
	elapsed := time.Since(start)
	t.Logf("menu ready on a slow network in %s", elapsed)

	assert.Less(t, elapsed, t.Config.Thresholds.SlowNetworkLoad)
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
