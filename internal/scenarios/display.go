package scenarios

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/checks"
	"github.com/themizzi/menucheck/internal/consent"
	"github.com/themizzi/menucheck/internal/runner"
)

const displaySuite = "Menu Display"

func displayScenarios() []runner.Scenario {
	return []runner.Scenario{
		{Suite: displaySuite, Name: "shows item cards with required information", Run: showsCards},
		{Suite: displaySuite, Name: "loads item images", Run: loadsImages},
		{Suite: displaySuite, Name: "opens item details when clicked", Run: opensDetails},
		{Suite: displaySuite, Name: "shows nutrition in item details", Run: showsNutrition},
		{Suite: displaySuite, Name: "handles out of stock items", Run: outOfStock},
		{Suite: displaySuite, Name: "shows consistent item information", Run: consistentItems},
		{Suite: displaySuite, Name: "prices are in pounds and within range", Run: pricesInRange},
	}
}

func showsCards(t *runner.T) {
	m := openMenu(t)

	n, err := m.ItemCount()
	require.NoError(t, err)
	require.Greater(t, n, 0, "no menu items")

	first := m.FirstItem()
	e := expect(t)
	assert.NoError(t, e.Locator(first.Element).ToBeVisible())
	assert.NoError(t, e.Locator(first.NameText).ToBeVisible())
	assert.NoError(t, e.Locator(first.Image).ToBeVisible())
}

func loadsImages(t *runner.T) {
	m := openMenu(t)
	first := m.FirstItem()

	src, err := first.Image.GetAttribute("src")
	require.NoError(t, err)
	assert.Regexp(t, imageURL, src)

	loaded, err := first.ImageLoaded()
	require.NoError(t, err)
	assert.True(t, loaded, "image %s has no pixels", src)
}

func opensDetails(t *runner.T) {
	m := openMenu(t)
	first := m.FirstItem()

	listed, err := first.Name()
	require.NoError(t, err)

	// a click can be swallowed by a late banner, so retry through the gate
	var shown string
	err = consent.RetryWithConsent(t.Context(), m.Browser(), m.Gate, 3, time.Second, func() error {
		modal, err := first.Click()
		if err != nil {
			return err
		}
		if err := modal.WaitFor(); err != nil {
			return err
		}
		shown, err = modal.Name()
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, listed, shown)
}

func showsNutrition(t *runner.T) {
	m := openMenu(t)
	modal, err := m.FirstItem().Click()
	require.NoError(t, err)
	require.NoError(t, m.WaitForPageLoad())

	has, err := modal.HasNutritionInfo()
	require.NoError(t, err)
	if !has {
		t.Skipf("item details have no nutrition block")
	}

	values, err := modal.Nutrition()
	require.NoError(t, err)
	assert.NotEmpty(t, values["calories"], "calories missing")
	for field, v := range values {
		t.Logf("%s: %s", field, v)
	}
}

func outOfStock(t *runner.T) {
	m := openMenu(t)
	n, err := m.ItemCount()
	require.NoError(t, err)

	for i := 0; i < minInt(n, 10); i++ {
		item := m.Item(i)
		out, err := item.IsOutOfStock()
		require.NoError(t, err)
		if !out {
			continue
		}
		name, _ := item.Name()
		t.Logf("%s is out of stock", name)
		if c, _ := item.AddButton.Count(); c > 0 {
			assert.NoError(t, expect(t).Locator(item.AddButton).ToBeDisabled(), "%s can still be added", name)
		}
	}
}

func consistentItems(t *runner.T) {
	m := openMenu(t)
	n, err := m.ItemCount()
	require.NoError(t, err)

	for i := 0; i < minInt(n, 3); i++ {
		item := m.Item(i)
		name, err := item.Name()
		require.NoError(t, err)
		assert.NotEmpty(t, name, "item %d has no name", i)

		if c, _ := item.PriceText.Count(); c > 0 {
			price, err := item.Price()
			require.NoError(t, err)
			assert.True(t, checks.ValidPriceFormat(price), "item %q price %q", name, price)
		}
	}
}

func pricesInRange(t *runner.T) {
	m := openMenu(t)
	cards, err := m.Cards()
	require.NoError(t, err)

	priced := 0
	for _, c := range cards {
		if c.Price == "" {
			continue
		}
		priced++
		v, ok := checks.ExtractPrice(c.Price)
		if !assert.True(t, ok, "%s: price %q is not in pounds", c.Name, c.Price) {
			continue
		}
		assert.True(t, checks.PriceInRange(v, MinPrice, MaxPrice),
			"%s: £%.2f outside £%.2f-£%.2f", c.Name, v, MinPrice, MaxPrice)
	}
	if priced == 0 {
		t.Skipf("menu cards do not show prices")
	}
}
