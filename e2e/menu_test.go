//go:build e2e

package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/consent"
	"github.com/themizzi/menucheck/internal/handlers"
	"github.com/themizzi/menucheck/internal/pages"
)

func openMenuPage(t *testing.T, query string) *pages.MenuPage {
	t.Helper()
	m := pages.NewMenuPage(newPage(t), menuURL(query))
	outcome, err := m.Goto(context.Background())
	require.NoError(t, err)
	require.True(t, outcome.Dismissed(), "outcome: %s", outcome)
	require.NoError(t, m.WaitForItems())
	return m
}

// TestMenuPage_ShowsCatalog
// Feature: Menu Display
//
//	Scenario: Every catalog item is rendered as a card
//	  Given the cookie banner has been rejected
//	  When the menu loads
//	  Then I see one card per catalog item
func TestMenuPage_ShowsCatalog(t *testing.T) {
	m := openMenuPage(t, "consent=reject")

	n, err := m.ItemCount()
	require.NoError(t, err)
	assert.Equal(t, len(handlers.DefaultCatalog().Items), n)

	price, err := m.FirstItem().PriceValue()
	require.NoError(t, err)
	assert.Greater(t, price, 0.0)
}

func TestMenuPage_Search(t *testing.T) {
	m := openMenuPage(t, "consent=none")

	require.NoError(t, m.Search("coffee"))
	n, err := m.ItemCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, m.Search("zzzz"))
	visible, err := m.NoResultsVisible()
	require.NoError(t, err)
	assert.True(t, visible, "expected no results message")
}

func TestMenuPage_ItemDetails(t *testing.T) {
	m := openMenuPage(t, "consent=none")
	first := m.FirstItem()
	listed, err := first.Name()
	require.NoError(t, err)

	modal, err := first.Click()
	require.NoError(t, err)
	require.NoError(t, modal.WaitFor())

	name, err := modal.Name()
	require.NoError(t, err)
	assert.Equal(t, listed, name)

	calories, err := modal.NutritionValue("calories")
	require.NoError(t, err)
	assert.NotEmpty(t, calories)

	require.NoError(t, modal.IncreaseQuantity())
	q, err := modal.Quantity()
	require.NoError(t, err)
	assert.Equal(t, 2, q)
}

func TestMenuPage_OutOfStock(t *testing.T) {
	m := openMenuPage(t, "consent=none")

	item := pages.NewMenuItem(m.Page, m.Page.Locator(`a[data-test-card][href="/menu/cheese-onion-bake"]`))
	out, err := item.IsOutOfStock()
	require.NoError(t, err)
	assert.True(t, out)

	out, err = m.FirstItem().IsOutOfStock()
	require.NoError(t, err)
	assert.False(t, out)
}

func TestMenuPage_VeganFilter(t *testing.T) {
	m := openMenuPage(t, "consent=none")

	require.NoError(t, m.OpenFilters())
	require.NoError(t, m.SelectDietary("vegan"))
	require.NoError(t, m.ApplyFilters())

	cards, err := m.Cards()
	require.NoError(t, err)
	require.NotEmpty(t, cards)

	want := handlers.DefaultCatalog().List(handlers.Filter{Diet: "vegan"})
	assert.Len(t, cards, len(want))
}

func TestMenuPage_GotoReportsGateOutcome(t *testing.T) {
	m := pages.NewMenuPage(newPage(t), menuURL("consent=close&overlay=1"))

	outcome, err := m.Goto(context.Background())

	require.NoError(t, err)
	assert.Equal(t, consent.StateClosed, outcome.State)
	assert.GreaterOrEqual(t, outcome.Overlays, 1)
}
