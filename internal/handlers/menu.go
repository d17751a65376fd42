package handlers

import (
	"html/template"
	"net/http"
)

// MenuHandler serves the menu page. Cards are rendered client side from the menu API.
type MenuHandler struct {
	template *template.Template
	catalog  Catalog
}

// MenuData is the menu template's payload
type MenuData struct {
	Categories []Category
	Allergens  []string
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(templatesDir string, catalog Catalog) (*MenuHandler, error) {
	tmpl, err := parsePage(templatesDir, "menu.html")
	if err != nil {
		return nil, err
	}

	return &MenuHandler{
		template: tmpl,
		catalog:  catalog,
	}, nil
}

// ServeHTTP handles the GET /menu request
func (h *MenuHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	render(w, h.template, newPageData(r, "Menu", MenuData{
		Categories: h.catalog.Categories,
		Allergens:  h.catalog.Allergens,
	}))
}
