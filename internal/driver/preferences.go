package driver

import (
	"fmt"
	"net/url"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/menucheck/internal/consent"
)

// ApplyPreferences records a consent choice in the context before any page
// loads, so banners that honour stored choices never appear
func ApplyPreferences(bc playwright.BrowserContext, baseURL string, pref consent.Preference) error {
	if err := bc.AddInitScript(playwright.Script{
		Content: playwright.String(consent.InitScript(pref)),
	}); err != nil {
		return fmt.Errorf("failed to add consent init script: %w", err)
	}

	domain, err := cookieDomain(baseURL)
	if err != nil {
		return err
	}
	if err := bc.AddCookies(optionalCookies(consent.Cookies(domain, pref))); err != nil {
		return fmt.Errorf("failed to add consent cookies: %w", err)
	}
	return nil
}

func cookieDomain(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("base URL %q has no host", baseURL)
	}
	return u.Hostname(), nil
}

func optionalCookies(cookies []consent.Cookie) []playwright.OptionalCookie {
	out := make([]playwright.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, playwright.OptionalCookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: playwright.String(c.Domain),
			Path:   playwright.String(c.Path),
		})
	}
	return out
}
