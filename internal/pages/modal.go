package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// NutritionFields are the values a detail view can show
var NutritionFields = []string{"calories", "fat", "saturates", "sugar", "salt", "protein"}

// MenuItemModal is the item detail view, a modal on some layouts and a
// separate page on others
type MenuItemModal struct {
	page  playwright.Page
	Modal playwright.Locator

	CloseButton      playwright.Locator
	NameText         playwright.Locator
	PriceText        playwright.Locator
	Image            playwright.Locator
	Description      playwright.Locator
	NutritionInfo    playwright.Locator
	AllergenInfo     playwright.Locator
	QuantityIncrease playwright.Locator
	QuantityDecrease playwright.Locator
	QuantityInput    playwright.Locator
	AddButton        playwright.Locator
}

// NewMenuItemModal locates the detail view on page
func NewMenuItemModal(page playwright.Page) *MenuItemModal {
	modal := page.Locator(`.modal, [data-testid="modal"], .popup, .product-detail`).First()
	return &MenuItemModal{
		page:             page,
		Modal:            modal,
		CloseButton:      page.Locator(`.close, [data-testid="close"], .modal-close, button:has-text("×")`).First(),
		NameText:         modal.Locator(`h1, h2, .modal-title, [data-testid="modal-item-name"]`).First(),
		PriceText:        modal.Locator(`.price, [data-testid="modal-price"]`).First(),
		Image:            modal.Locator("img").First(),
		Description:      modal.Locator(`.description, [data-testid="modal-description"]`).First(),
		NutritionInfo:    modal.Locator(`.nutrition, [data-testid="nutrition"], .nutritional-info`).First(),
		AllergenInfo:     modal.Locator(`.allergen-info, [data-testid="allergen-info"]`).First(),
		QuantityIncrease: modal.Locator(`[data-testid="quantity-increase"], .quantity-plus`).First(),
		QuantityDecrease: modal.Locator(`[data-testid="quantity-decrease"], .quantity-minus`).First(),
		QuantityInput:    modal.Locator(`[data-testid="quantity-input"], input[type="number"]`).First(),
		AddButton:        modal.Locator(`[data-testid="add-to-basket"], button:has-text("Add to Basket")`).First(),
	}
}

// WaitFor waits for the detail view to show
func (m *MenuItemModal) WaitFor() error {
	return m.Modal.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(5000),
	})
}

// IsVisible reports whether the detail view is shown
func (m *MenuItemModal) IsVisible() (bool, error) {
	return m.Modal.IsVisible()
}

// Close dismisses the detail view
func (m *MenuItemModal) Close() error {
	if err := m.CloseButton.Click(); err != nil {
		return fmt.Errorf("failed to close item: %w", err)
	}
	return m.Modal.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(3000),
	})
}

// Name returns the item name in the detail view
func (m *MenuItemModal) Name() (string, error) {
	return trimmedText(m.NameText)
}

// Price returns the price text in the detail view
func (m *MenuItemModal) Price() (string, error) {
	return trimmedText(m.PriceText)
}

// Describe returns the item description
func (m *MenuItemModal) Describe() (string, error) {
	return trimmedText(m.Description)
}

// HasNutritionInfo reports whether a nutrition block is visible
func (m *MenuItemModal) HasNutritionInfo() (bool, error) {
	return m.NutritionInfo.IsVisible()
}

// HasAllergenInfo reports whether allergen information is visible
func (m *MenuItemModal) HasAllergenInfo() (bool, error) {
	return m.AllergenInfo.IsVisible()
}

// NutritionValue returns a field's displayed value, empty when not shown
func (m *MenuItemModal) NutritionValue(field string) (string, error) {
	l := m.Modal.Locator(fmt.Sprintf(`[data-testid=%q], .%s-value`, field, field)).First()
	visible, err := l.IsVisible()
	if err != nil || !visible {
		return "", err
	}
	return trimmedText(l)
}

// Nutrition returns every nutrition field the view shows
func (m *MenuItemModal) Nutrition() (map[string]string, error) {
	out := make(map[string]string, len(NutritionFields))
	for _, f := range NutritionFields {
		v, err := m.NutritionValue(f)
		if err != nil {
			return nil, err
		}
		out[f] = v
	}
	return out, nil
}

// Quantity returns the selected quantity, 1 when unset
func (m *MenuItemModal) Quantity() (int, error) {
	v, err := m.QuantityInput.InputValue()
	if err != nil {
		return 0, err
	}
	return parseQuantity(v), nil
}

// SetQuantity types a quantity
func (m *MenuItemModal) SetQuantity(n int) error {
	return m.QuantityInput.Fill(strconv.Itoa(n))
}

// IncreaseQuantity clicks the plus control
func (m *MenuItemModal) IncreaseQuantity() error {
	return m.QuantityIncrease.Click()
}

// DecreaseQuantity clicks the minus control
func (m *MenuItemModal) DecreaseQuantity() error {
	return m.QuantityDecrease.Click()
}

// AddToBasket clicks the add button in the detail view
func (m *MenuItemModal) AddToBasket() error {
	if err := m.AddButton.Click(); err != nil {
		return err
	}
	m.page.WaitForTimeout(1000)
	return nil
}

func parseQuantity(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func trim(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
