package scenarios

import (
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/checks"
	"github.com/themizzi/menucheck/internal/pages"
	"github.com/themizzi/menucheck/internal/runner"
)

const traversalSuite = "DOM Traversal"

var placeholderText = regexp.MustCompile(`(?i)lorem|ipsum|placeholder|\btest\b`)

func traversalScenarios() []runner.Scenario {
	return []runner.Scenario{
		{Suite: traversalSuite, Name: "checks every menu item", Run: everyItem},
		{Suite: traversalSuite, Name: "every category has items", Run: categoriesHaveItems},
		{Suite: traversalSuite, Name: "menu items are unique", Run: uniqueItems},
	}
}

func everyItem(t *runner.T) {
	m := openMenu(t)
	cards, err := m.Cards()
	require.NoError(t, err)
	require.Greater(t, len(cards), t.Config.Thresholds.MinMenuItems, "too few menu items")

	for _, c := range cards {
		assert.Greater(t, len(c.Name), 2, "item %d: name %q too short", c.Index+1, c.Name)
		assert.NotRegexp(t, placeholderText, c.Name, "item %d: placeholder name", c.Index+1)

		if c.Price != "" {
			v, ok := checks.ExtractPrice(c.Price)
			if assert.True(t, ok, "item %q: bad price %q", c.Name, c.Price) {
				assert.True(t, checks.PriceInRange(v, MinPrice, MaxPrice), "item %q: price £%.2f out of range", c.Name, v)
			}
		}
		assert.NotEmpty(t, c.ImageAlt, "item %q: no alt text", c.Name)
		if len(c.Dietary) > 0 {
			t.Logf("%s: %s", c.Name, strings.Join(c.Dietary, ", "))
		}
	}
}

func categoriesHaveItems(t *runner.T) {
	m := openMenu(t)
	cards, err := m.Cards()
	require.NoError(t, err)

	seen := mapset.NewSet[string]()
	for _, c := range cards {
		if c.Category != "" {
			seen.Add(c.Category)
		}
	}
	if seen.Cardinality() == 0 {
		t.Skipf("menu is not grouped into category sections")
	}

	want := mapset.NewSet[string]()
	for _, name := range Categories[1:] {
		want.Add(pages.CategorySlug(name))
	}
	empty := want.Difference(seen)
	assert.Zero(t, empty.Cardinality(), "categories without items: %v", empty.ToSlice())
}

func uniqueItems(t *runner.T) {
	m := openMenu(t)
	cards, err := m.Cards()
	require.NoError(t, err)

	ids := mapset.NewSet[string]()
	var dupes []string
	for _, c := range cards {
		key := c.TestCardID
		if key == "" {
			key = c.Href
		}
		if key == "" {
			continue
		}
		if !ids.Add(key) {
			dupes = append(dupes, key)
		}
	}
	assert.Empty(t, dupes, "duplicate menu items")
}
