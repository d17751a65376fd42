package handlers

import (
	"html/template"
	"net/http"
)

// HomeHandler serves the landing page the logo links to
type HomeHandler struct {
	template *template.Template
	catalog  Catalog
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(templatesDir string, catalog Catalog) (*HomeHandler, error) {
	tmpl, err := parsePage(templatesDir, "home.html")
	if err != nil {
		return nil, err
	}
	return &HomeHandler{template: tmpl, catalog: catalog}, nil
}

// ServeHTTP handles the GET / request
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	render(w, h.template, newPageData(r, "Home", h.catalog.Categories))
}
