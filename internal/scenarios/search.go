package scenarios

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/pages"
	"github.com/themizzi/menucheck/internal/runner"
)

const searchSuite = "Search and Filter"

func searchScenarios() []runner.Scenario {
	s := []runner.Scenario{
		{Suite: searchSuite, Name: "filters items by search term", Run: searchFilters},
		{Suite: searchSuite, Name: "shows no results for unknown terms", Run: searchNoResults},
		{Suite: searchSuite, Name: "clears filters", Run: clearsFilters},
		{Suite: searchSuite, Name: "keeps search text across navigation", Run: keepsSearchState},
		{Suite: searchSuite, Name: "filters by allergen", Run: allergenFilter},
	}
	for _, diet := range Diets {
		diet := diet
		s = append(s, runner.Scenario{
			Suite: searchSuite,
			Name:  fmt.Sprintf("applies the %s filter", diet),
			Run:   func(t *runner.T) { dietFilter(t, diet) },
		})
	}
	return s
}

func requireSearch(t *runner.T, m *pages.MenuPage) {
	t.Helper()
	n, err := m.SearchInput.Count()
	require.NoError(t, err)
	if n == 0 {
		t.Skipf("menu has no search box")
	}
}

func searchFilters(t *runner.T) {
	m := openMenu(t)
	requireSearch(t, m)

	for _, term := range ValidSearchTerms {
		require.NoError(t, m.Search(term))

		n, err := m.Items.Count()
		require.NoError(t, err)
		if n == 0 {
			t.Logf("no results for %q", term)
			continue
		}
		name, err := m.FirstItem().Name()
		require.NoError(t, err)
		assert.Contains(t, strings.ToLower(name), term, "first result for %q", term)
	}
}

func searchNoResults(t *runner.T) {
	m := openMenu(t)
	requireSearch(t, m)

	for _, term := range InvalidSearchTerms {
		if term == "" {
			continue
		}
		require.NoError(t, m.Search(term))

		n, err := m.Items.Count()
		require.NoError(t, err)
		if n == 0 {
			assert.NoError(t, expect(t).Locator(m.NoResults.First()).ToBeVisible(), "no empty state for %q", term)
		}
	}
}

func applyDiet(t *runner.T, m *pages.MenuPage, diet string) {
	t.Helper()
	if c, _ := m.FilterButton.Count(); c == 0 {
		t.Skipf("menu has no filters")
	}
	require.NoError(t, m.OpenFilters())
	require.NoError(t, m.SelectDietary(diet))
	require.NoError(t, m.ApplyFilters())
}

func dietFilter(t *runner.T, diet string) {
	m := openMenu(t)
	applyDiet(t, m, diet)

	n, err := m.ItemCount()
	require.NoError(t, err)
	for i := 0; i < minInt(n, 3); i++ {
		item := m.Item(i)
		var ok bool
		if diet == "vegan" {
			ok, err = item.HasVeganBadge()
		} else {
			ok, err = item.HasVegetarianBadge()
		}
		require.NoError(t, err)
		name, _ := item.Name()
		assert.True(t, ok, "%s is not marked %s", name, diet)
	}
}

func clearsFilters(t *runner.T) {
	m := openMenu(t)
	before, err := m.ItemCount()
	require.NoError(t, err)

	applyDiet(t, m, "vegan")
	filtered, err := m.ItemCount()
	require.NoError(t, err)
	t.Logf("%d items, %d after filtering", before, filtered)

	require.NoError(t, m.ClearAllFilters())
	after, err := m.ItemCount()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func keepsSearchState(t *runner.T) {
	m := openMenu(t)
	requireSearch(t, m)

	require.NoError(t, m.Search("coffee"))
	before, err := m.SearchInput.InputValue()
	require.NoError(t, err)

	require.NoError(t, m.ClickCategory("Breakfast"))
	_, err = t.Page.GoBack()
	require.NoError(t, err)

	after, err := m.SearchInput.InputValue()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func allergenFilter(t *runner.T) {
	m := openMenu(t)
	if c, _ := m.FilterButton.Count(); c == 0 {
		t.Skipf("menu has no filters")
	}
	require.NoError(t, m.OpenFilters())

	options, err := m.AllergenOptions()
	require.NoError(t, err)
	require.NotEmpty(t, options, "no allergen options")
	t.Logf("allergen options: %v", options)

	allergen := options[0]
	require.NoError(t, m.SelectAllergen(allergen))
	require.NoError(t, m.ApplyFilters())

	if err := expect(t).Locator(m.FilterPill(allergen)).ToBeVisible(); err != nil {
		t.Logf("no filter pill for %s", allergen)
	}
}
