package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/menucheck/internal/browser"
	"github.com/themizzi/menucheck/internal/config"
)

// Session is one isolated browser context with a single page
type Session struct {
	Profile config.Profile
	Context playwright.BrowserContext
	page    playwright.Page
}

// Page returns the session's page
func (s *Session) Page() playwright.Page {
	return s.page
}

// Browser returns the page behind the narrow interface the gates use
func (s *Session) Browser() browser.Page {
	return browser.Wrap(s.page)
}

// Screenshot saves a full page screenshot, creating parent directories
func (s *Session) Screenshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}
	return nil
}

// Close closes the context and everything in it
func (s *Session) Close() error {
	return s.Context.Close()
}
