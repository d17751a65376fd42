package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// MenuResponse is the body of GET /api/menu
type MenuResponse struct {
	Items      []Item     `json:"items"`
	Categories []Category `json:"categories"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MenuAPIHandler serves the catalog as JSON. Query parameters q, diet,
// exclude (comma separated allergens) and category narrow the listing.
type MenuAPIHandler struct {
	catalog Catalog
}

// NewMenuAPIHandler creates a new MenuAPIHandler
func NewMenuAPIHandler(catalog Catalog) *MenuAPIHandler {
	return &MenuAPIHandler{catalog: catalog}
}

// ServeHTTP handles the GET /api/menu request
func (h *MenuAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	diet := q.Get("diet")
	if diet != "" && diet != "vegan" && diet != "vegetarian" {
		sendErrorResponse(w, "Unknown diet "+diet, http.StatusBadRequest)
		return
	}

	var exclude []string
	for _, a := range strings.Split(q.Get("exclude"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			exclude = append(exclude, a)
		}
	}

	resp := MenuResponse{
		Items: h.catalog.List(Filter{
			Query:    q.Get("q"),
			Diet:     diet,
			Exclude:  exclude,
			Category: q.Get("category"),
		}),
		Categories: h.catalog.Categories,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
