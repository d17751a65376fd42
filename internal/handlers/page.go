package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
)

// LayoutTemplate holds the header, consent banner and overlay partials shared by every page
const LayoutTemplate = "layout.html"

// Banner variants selected with the consent query parameter
const (
	BannerReject   = "reject"
	BannerAccept   = "accept"
	BannerEscape   = "escape"
	BannerOutside  = "outside"
	BannerClose    = "close"
	BannerStubborn = "stubborn"
	BannerNone     = "none"
)

// BannerVariants lists every supported consent banner
var BannerVariants = []string{BannerReject, BannerAccept, BannerEscape, BannerOutside, BannerClose, BannerStubborn, BannerNone}

// consentCookies mark a visitor who already answered the banner
var consentCookies = []string{"OptanonAlertBoxClosed", "cookie-consent"}

// PageData is what every fixture page renders with
type PageData struct {
	Title   string
	Banner  string
	Overlay bool
	Data    any
}

func parsePage(dir, name string) (*template.Template, error) {
	tmpl, err := template.New(name).ParseFiles(filepath.Join(dir, name), filepath.Join(dir, LayoutTemplate))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl, nil
}

// bannerFor picks the banner variant for a request. Visitors holding a
// consent cookie get no banner.
func bannerFor(r *http.Request) string {
	for _, name := range consentCookies {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return ""
		}
	}
	v := r.URL.Query().Get("consent")
	switch v {
	case "":
		return BannerReject
	case BannerNone:
		return ""
	}
	for _, known := range BannerVariants {
		if v == known {
			return v
		}
	}
	log.Printf("Unknown consent variant %q, using %s", v, BannerReject)
	return BannerReject
}

func newPageData(r *http.Request, title string, data any) PageData {
	return PageData{
		Title:   title,
		Banner:  bannerFor(r),
		Overlay: r.URL.Query().Get("overlay") == "1",
		Data:    data,
	}
}

func render(w http.ResponseWriter, tmpl *template.Template, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Error rendering %s: %v", tmpl.Name(), err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
