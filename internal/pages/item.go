package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/menucheck/internal/checks"
)

// MenuItem is one card on the menu
type MenuItem struct {
	page    playwright.Page
	Element playwright.Locator

	NameText    playwright.Locator
	PriceText   playwright.Locator
	Image       playwright.Locator
	Description playwright.Locator
	Allergens   playwright.Locator
	Dietary     playwright.Locator
	Calories    playwright.Locator
	OutOfStock  playwright.Locator
	AddButton   playwright.Locator
}

// NewMenuItem wraps a card locator
func NewMenuItem(page playwright.Page, el playwright.Locator) *MenuItem {
	return &MenuItem{
		page:        page,
		Element:     el,
		NameText:    el.Locator(`h2, h3, h4, .item-name, .product-name, [data-testid="item-name"]`).First(),
		PriceText:   el.Locator(`.price, [data-testid="price"], .cost`).First(),
		Image:       el.Locator("img").First(),
		Description: el.Locator(`.description, [data-testid="description"], p`).First(),
		Allergens:   el.Locator(`.allergen, [data-testid="allergen"]`),
		Dietary:     el.Locator(`.dietary, [data-testid="dietary"], .vegan, .vegetarian`),
		Calories:    el.Locator(`.calories, [data-testid="calories"], .kcal`).First(),
		OutOfStock:  el.Locator(`.out-of-stock, [data-stock="false"], .unavailable`).First(),
		AddButton:   el.Locator(`button:has-text("Add"), .add-to-basket, [data-testid="add-to-basket"]`).First(),
	}
}

// Name returns the item's trimmed name
func (i *MenuItem) Name() (string, error) {
	return trimmedText(i.NameText)
}

// Price returns the price text as displayed
func (i *MenuItem) Price() (string, error) {
	return trimmedText(i.PriceText)
}

// PriceValue parses the displayed price
func (i *MenuItem) PriceValue() (float64, error) {
	text, err := i.Price()
	if err != nil {
		return 0, err
	}
	v, ok := checks.ExtractPrice(text)
	if !ok {
		return 0, fmt.Errorf("no price in %q", text)
	}
	return v, nil
}

// ImageAlt returns the image's alt text, empty when missing
func (i *MenuItem) ImageAlt() (string, error) {
	return i.Image.GetAttribute("alt")
}

// ImageLoaded reports whether the image has a src and decoded pixels
func (i *MenuItem) ImageLoaded() (bool, error) {
	src, err := i.Image.GetAttribute("src")
	if err != nil || src == "" {
		return false, err
	}
	w, err := i.Image.Evaluate(`(img) => img.naturalWidth`, nil)
	if err != nil {
		return false, err
	}
	return toFloat(w) > 0, nil
}

// IsVisible reports whether the card is visible
func (i *MenuItem) IsVisible() (bool, error) {
	return i.Element.IsVisible()
}

// IsOutOfStock reports whether the out of stock badge is visible
func (i *MenuItem) IsOutOfStock() (bool, error) {
	return i.OutOfStock.IsVisible()
}

// HasVeganBadge reports whether the card is marked vegan
func (i *MenuItem) HasVeganBadge() (bool, error) {
	n, err := i.Element.Locator(`.vegan, [data-vegan="true"]`).Count()
	return n > 0, err
}

// HasVegetarianBadge reports whether the card is marked vegetarian
func (i *MenuItem) HasVegetarianBadge() (bool, error) {
	n, err := i.Element.Locator(`.vegetarian, [data-vegetarian="true"]`).Count()
	return n > 0, err
}

// AllergenCount counts allergen badges
func (i *MenuItem) AllergenCount() (int, error) {
	return i.Allergens.Count()
}

// AddToBasket clicks the add button when the card has an enabled one
func (i *MenuItem) AddToBasket() error {
	n, err := i.AddButton.Count()
	if err != nil || n == 0 {
		return err
	}
	enabled, err := i.AddButton.IsEnabled()
	if err != nil || !enabled {
		return err
	}
	if err := i.AddButton.Click(); err != nil {
		return err
	}
	i.page.WaitForTimeout(500)
	return nil
}

// Hover moves the pointer over the card
func (i *MenuItem) Hover() error {
	return i.Element.Hover()
}

// Box returns the card's bounding box
func (i *MenuItem) Box() (checks.Rect, bool, error) {
	return Box(i.Element)
}

// Click opens the item and returns its detail view
func (i *MenuItem) Click() (*MenuItemModal, error) {
	if err := i.Element.Click(); err != nil {
		return nil, fmt.Errorf("failed to open menu item: %w", err)
	}
	i.page.WaitForTimeout(500)
	return NewMenuItemModal(i.page), nil
}

func trimmedText(l playwright.Locator) (string, error) {
	s, err := l.TextContent()
	if err != nil {
		return "", err
	}
	return trim(s), nil
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
