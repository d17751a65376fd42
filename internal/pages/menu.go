package pages

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/menucheck/internal/checks"
)

// Menu card and filter selectors
const (
	CardSelector          = "a[data-test-card]"
	FilterButtonSelector  = `button[data-test="filterButton"]`
	ModalApplySelector    = `button[type="button"][data-test="modalApply"]`
	FiltersHeaderSelector = `header:has(h3:has-text("Filters"))`
)

// ItemsTimeout bounds the wait for the first menu card
var ItemsTimeout = 30 * time.Second

// MenuPage is the menu listing
type MenuPage struct {
	*Base

	Items         playwright.Locator
	Categories    playwright.Locator
	CategoryLinks playwright.Locator
	FilterButton  playwright.Locator
	ApplyButton   playwright.Locator
	FiltersModal  playwright.Locator
	NoResults     playwright.Locator
	ErrorMessage  playwright.Locator
	ClearFilters  playwright.Locator
	DismissError  playwright.Locator
}

// NewMenuPage creates the menu page object for url
func NewMenuPage(page playwright.Page, url string) *MenuPage {
	return &MenuPage{
		Base:          NewBase(page, url),
		Items:         page.Locator(CardSelector),
		Categories:    page.Locator(`.menu-category, [data-testid="menu-category"]`),
		CategoryLinks: page.Locator(`.category-link, [data-testid="category-link"]`),
		FilterButton:  page.Locator(FilterButtonSelector),
		ApplyButton:   page.Locator(ModalApplySelector),
		FiltersModal:  page.Locator(`[data-testid="filtersModal"]`),
		NoResults:     page.Locator(`.no-results, [data-testid="no-results"], .empty-state`),
		ErrorMessage:  page.Locator(`.error, [data-testid="error"], .network-error, h2:has-text("Oh crumbs!")`),
		ClearFilters:  page.Locator(`.clear-filters, [data-testid="clear-filters"]`),
		DismissError:  page.Locator(`.error-message-dismiss, .error-close, button:has-text("Dismiss")`),
	}
}

// WaitForItems waits for the first card, if any are in the DOM, and for
// loading indicators to clear.
func (m *MenuPage) WaitForItems() error {
	n, err := m.Items.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		if err := m.Items.First().WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(float64(ItemsTimeout.Milliseconds())),
		}); err != nil {
			return fmt.Errorf("menu items did not appear: %w", err)
		}
	}
	return m.WaitForPageLoad()
}

// ItemCount waits for the menu and counts the cards
func (m *MenuPage) ItemCount() (int, error) {
	if err := m.WaitForItems(); err != nil {
		return 0, err
	}
	return m.Items.Count()
}

// Item returns the card at index i
func (m *MenuPage) Item(i int) *MenuItem {
	return NewMenuItem(m.Page, m.Items.Nth(i))
}

// FirstItem returns the first card
func (m *MenuPage) FirstItem() *MenuItem {
	return m.Item(0)
}

// OpenFilters opens the filters modal
func (m *MenuPage) OpenFilters() error {
	if err := m.FilterButton.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("filter button not visible: %w", err)
	}
	if err := m.FilterButton.Click(); err != nil {
		return fmt.Errorf("failed to open filters: %w", err)
	}
	return m.Page.Locator(FiltersHeaderSelector).WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	})
}

// ApplyFilters confirms the filters modal and waits for the menu to reload
func (m *MenuPage) ApplyFilters() error {
	if err := m.ApplyButton.ScrollIntoViewIfNeeded(); err != nil {
		return err
	}
	if err := m.ApplyButton.Click(playwright.LocatorClickOptions{
		Force: playwright.Bool(true),
	}); err != nil {
		return fmt.Errorf("failed to apply filters: %w", err)
	}
	return m.WaitForItems()
}

// ScrollFilters scrolls the filters modal to reveal more options
func (m *MenuPage) ScrollFilters() error {
	if _, err := m.Page.Evaluate(`() => {
		const modal = document.querySelector('[data-testid="filtersModal"]');
		if (modal) modal.scrollBy(0, 300);
	}`); err != nil {
		return err
	}
	m.Page.WaitForTimeout(500)
	return nil
}

// AllergenOptions lists allergen filters by their test id suffix
func (m *MenuPage) AllergenOptions() ([]string, error) {
	return testIDSuffixes(m.Page.Locator(`[data-testid^="allergen-"]`), "allergen-")
}

// SelectAllergen ticks the "No <allergen>" option
func (m *MenuPage) SelectAllergen(allergen string) error {
	return m.Page.Locator(fmt.Sprintf(`[data-testid="allergen-%s"]`, allergen)).Click()
}

// SelectDietary ticks a dietary filter such as "vegan"
func (m *MenuPage) SelectDietary(diet string) error {
	return m.Page.Locator(fmt.Sprintf(`[data-testid="dietary-%s"], [data-filter=%q]`, diet, diet)).First().Click()
}

// FilterPill is the applied filter indicator for name
func (m *MenuPage) FilterPill(name string) playwright.Locator {
	return m.Page.Locator(`[data-test="filterPills"]`).GetByText(name)
}

// CategoryOptions lists category filters by their test id suffix
func (m *MenuPage) CategoryOptions() ([]string, error) {
	return testIDSuffixes(m.Page.Locator(`[data-testid^="category-"]`), "category-")
}

// SelectCategory ticks a category filter
func (m *MenuPage) SelectCategory(slug string) error {
	return m.Page.Locator(fmt.Sprintf(`[data-testid="category-%s"]`, slug)).Click()
}

// SelectedCategories lists the categories shown as applied
func (m *MenuPage) SelectedCategories() ([]string, error) {
	return testIDSuffixes(m.Page.Locator(`[data-testid^="selected-category-"]`), "selected-category-")
}

// CategoryNames returns which of names appear as text on the page. "All"
// matches loosely since the site renders it in varying case.
func (m *MenuPage) CategoryNames(names []string) ([]string, error) {
	var found []string
	for _, name := range names {
		var l playwright.Locator
		if strings.EqualFold(name, "all") {
			l = m.Page.GetByText("All").First()
		} else {
			l = m.Page.GetByText(name, playwright.PageGetByTextOptions{Exact: playwright.Bool(true)}).First()
		}
		n, err := l.Count()
		if err != nil {
			return nil, err
		}
		if n > 0 {
			found = append(found, name)
		}
	}
	return found, nil
}

// ClickCategory clicks the category tab named name
func (m *MenuPage) ClickCategory(name string) error {
	btn := m.Page.Locator(fmt.Sprintf(`button:has-text(%q)`, name)).First()
	if err := btn.Click(); err != nil {
		return fmt.Errorf("failed to click category %q: %w", name, err)
	}
	return m.WaitForPageLoad()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// CategorySlug turns a display name into the data-category value
func CategorySlug(name string) string {
	s := strings.ToLower(strings.ReplaceAll(name, "&", " "))
	return strings.Trim(nonSlug.ReplaceAllString(s, "-"), "-")
}

// CategorySection locates the section for a category
func (m *MenuPage) CategorySection(name string) playwright.Locator {
	slug := CategorySlug(name)
	head := name
	if f := strings.Fields(name); len(f) > 0 {
		head = f[0]
	}
	return m.Page.Locator(fmt.Sprintf(
		`[data-category="%s"], .%s-section, section:has(h2:has-text(%q))`, slug, slug, head,
	))
}

// ItemsInCategory returns the cards inside a category section
func (m *MenuPage) ItemsInCategory(name string) ([]*MenuItem, error) {
	items := m.CategorySection(name).Locator(CardSelector + `, .menu-item, [data-testid="menu-item"], .product-card`)
	all, err := items.All()
	if err != nil {
		return nil, err
	}
	out := make([]*MenuItem, 0, len(all))
	for _, l := range all {
		out = append(out, NewMenuItem(m.Page, l))
	}
	return out, nil
}

// ClearAllFilters clicks the clear control if the page has one
func (m *MenuPage) ClearAllFilters() error {
	n, err := m.ClearFilters.Count()
	if err != nil || n == 0 {
		return err
	}
	if err := m.ClearFilters.First().Click(); err != nil {
		return err
	}
	return m.WaitForPageLoad()
}

// DismissErrorMessage closes an error message when one is shown
func (m *MenuPage) DismissErrorMessage() error {
	visible, err := m.DismissError.First().IsVisible()
	if err != nil || !visible {
		return err
	}
	return m.DismissError.First().Click()
}

// ScrollToBottom scrolls to the end of the document and lets lazy content load
func (m *MenuPage) ScrollToBottom(settle time.Duration) error {
	if _, err := m.Page.Evaluate(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
		return err
	}
	m.Page.WaitForTimeout(float64(settle.Milliseconds()))
	return nil
}

// NoResultsVisible reports whether the empty state is shown
func (m *MenuPage) NoResultsVisible() (bool, error) {
	return m.NoResults.First().IsVisible()
}

// ErrorVisible reports whether an error message is shown
func (m *MenuPage) ErrorVisible() (bool, error) {
	return m.ErrorMessage.First().IsVisible()
}

// Card is a menu card as read from the DOM in one round trip
type Card struct {
	Index           int      `json:"index"`
	TestCardID      string   `json:"testCardId"`
	Name            string   `json:"name"`
	Price           string   `json:"price"`
	Href            string   `json:"href"`
	ImageSrc        string   `json:"imageSrc"`
	ImageAlt        string   `json:"imageAlt"`
	ImageAriaLabel  string   `json:"imageAriaLabel"`
	ImageAriaHidden string   `json:"imageAriaHidden"`
	AriaLabel       string   `json:"ariaLabel"`
	AriaDescribedBy string   `json:"ariaDescribedBy"`
	TabIndex        string   `json:"tabIndex"`
	Category        string   `json:"category"`
	Dietary         []string `json:"dietary"`
}

const cardsScript = `(selector) => Array.from(document.querySelectorAll(selector)).map((link, index) => {
	const name = link.querySelector("h3, h2, h4, .item-name, [data-testid='item-name']");
	const price = link.querySelector(".price, [data-testid='price'], .cost");
	const img = link.querySelector("img");
	const section = link.closest("[data-category]");
	return {
		index,
		testCardId: link.getAttribute("data-test-card") || "",
		name: (name && name.textContent || "").trim(),
		price: (price && price.textContent || "").trim(),
		href: link.getAttribute("href") || "",
		imageSrc: img ? img.getAttribute("src") || "" : "",
		imageAlt: img ? img.getAttribute("alt") || "" : "",
		imageAriaLabel: img ? img.getAttribute("aria-label") || "" : "",
		imageAriaHidden: img ? img.getAttribute("aria-hidden") || "" : "",
		ariaLabel: link.getAttribute("aria-label") || "",
		ariaDescribedBy: link.getAttribute("aria-describedby") || "",
		tabIndex: link.getAttribute("tabindex") || "",
		category: section ? section.getAttribute("data-category") : "",
		dietary: Array.from(link.querySelectorAll(".dietary, .vegan, .vegetarian, [data-testid='dietary']"))
			.map((el) => (el.textContent || "").trim()).filter(Boolean),
	};
})`

// Cards reads every menu card
func (m *MenuPage) Cards() ([]Card, error) {
	res, err := m.Page.Evaluate(cardsScript, CardSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu cards: %w", err)
	}
	var cards []Card
	if err := decode(res, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode menu cards: %w", err)
	}
	return cards, nil
}

const controlsScript = `() => Array.from(document.querySelectorAll(
	'a, button, input, select, textarea, [tabindex]:not([tabindex="-1"])'
)).map((el) => ({
	tag: el.tagName.toLowerCase(),
	id: el.id || "",
	ariaLabel: el.getAttribute("aria-label") || "",
	ariaLabelledBy: el.getAttribute("aria-labelledby") || "",
	text: (el.textContent || "").trim().slice(0, 80),
	hasLabelFor: !!(el.id && document.querySelector('label[for="' + el.id + '"]')),
	placeholder: el.getAttribute("placeholder") || "",
}))`

// Controls reads every interactive element for an accessibility audit
func (m *MenuPage) Controls() ([]checks.Control, error) {
	res, err := m.Page.Evaluate(controlsScript)
	if err != nil {
		return nil, fmt.Errorf("failed to read controls: %w", err)
	}
	var controls []checks.Control
	if err := decode(res, &controls); err != nil {
		return nil, fmt.Errorf("failed to decode controls: %w", err)
	}
	return controls, nil
}

// decode converts an Evaluate result into v through its JSON form
func decode(res interface{}, v interface{}) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func testIDSuffixes(l playwright.Locator, prefix string) ([]string, error) {
	all, err := l.All()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, el := range all {
		id, err := el.GetAttribute("data-testid")
		if err != nil {
			return nil, err
		}
		if s := strings.TrimPrefix(id, prefix); s != "" && s != id {
			out = append(out, s)
		}
	}
	return out, nil
}
