package scenarios

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/runner"
)

const navigationSuite = "Menu Navigation"

func navigationScenarios() []runner.Scenario {
	return []runner.Scenario{
		{Suite: navigationSuite, Name: "shows all main categories", Run: showsCategories},
		{Suite: navigationSuite, Name: "navigates to a category section", Run: navigatesToCategory},
		{Suite: navigationSuite, Name: "marks the current category active", Run: activeCategory},
		{Suite: navigationSuite, Name: "returns home when the logo is clicked", Run: logoGoesHome},
		{Suite: navigationSuite, Name: "supports keyboard navigation", Run: keyboardNavigation},
	}
}

func showsCategories(t *runner.T) {
	m := openMenu(t)

	found, err := m.CategoryNames(Categories)
	require.NoError(t, err)

	missing := mapset.NewSet(Categories...).Difference(mapset.NewSet(found...))
	assert.Zero(t, missing.Cardinality(), "missing categories: %v", missing.ToSlice())
}

func navigatesToCategory(t *runner.T) {
	m := openMenu(t)
	require.NoError(t, m.ClickCategory("Breakfast"))
	assert.NoError(t, expect(t).Locator(m.CategorySection("Breakfast").First()).ToBeVisible())
}

func activeCategory(t *runner.T) {
	m := openMenu(t)
	require.NoError(t, m.ClickCategory("Savouries & Bakes"))

	active := t.Page.Locator(`.active, [aria-current="page"], .current`).First()
	assert.NoError(t, expect(t).Locator(active).ToBeVisible())
}

func logoGoesHome(t *runner.T) {
	m := openMenu(t)
	require.NoError(t, m.ClickLogo())
	assert.NoError(t, expect(t).Page(t.Page).ToHaveURL(homePattern(t.Config.BaseURL)))
}

func keyboardNavigation(t *runner.T) {
	openMenu(t)

	require.NoError(t, t.Page.Keyboard().Press("Tab"))
	focused := t.Page.Locator(":focus")
	assert.NoError(t, expect(t).Locator(focused).ToBeVisible())

	require.NoError(t, t.Page.Keyboard().Press("Enter"))
}
