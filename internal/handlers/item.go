package handlers

import (
	"html/template"
	"net/http"
	"strings"
)

// ItemHandler serves the detail page of a single menu item at /menu/{slug}
type ItemHandler struct {
	template *template.Template
	catalog  Catalog
}

// ItemData is the item template's payload
type ItemData struct {
	Item     Item
	Category string
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(templatesDir string, catalog Catalog) (*ItemHandler, error) {
	tmpl, err := parsePage(templatesDir, "item.html")
	if err != nil {
		return nil, err
	}

	return &ItemHandler{
		template: tmpl,
		catalog:  catalog,
	}, nil
}

// ServeHTTP handles the GET /menu/{slug} request
func (h *ItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/menu/"), "/")
	item, ok := h.catalog.Find(slug)
	if !ok {
		http.NotFound(w, r)
		return
	}

	render(w, h.template, newPageData(r, item.Name, ItemData{
		Item:     item,
		Category: h.catalog.CategoryName(item.Category),
	}))
}
