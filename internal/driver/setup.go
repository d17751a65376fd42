package driver

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/consent"
	"github.com/themizzi/menucheck/internal/readiness"
)

// Setup visits the base URL once in a clean context, deals with the consent
// banner and saves the resulting cookies and local storage to path. Later
// sessions start from that state and usually skip the banner entirely.
func Setup(ctx context.Context, l *Launcher, profile config.Profile, path string, gate *consent.Gate) (consent.Outcome, error) {
	session, err := l.open(ctx, profile, "")
	if err != nil {
		return consent.Outcome{}, err
	}
	defer session.Close()

	if _, err := session.Page().Goto(l.opts.BaseURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return consent.Outcome{}, fmt.Errorf("failed to open %s: %w", l.opts.BaseURL, err)
	}

	outcome, err := readiness.EnsurePageReady(ctx, session.Browser(), gate, readiness.DefaultOptions())
	if err != nil {
		return outcome, fmt.Errorf("page not ready during setup: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return outcome, fmt.Errorf("failed to create storage state directory: %w", err)
	}
	if _, err := session.Context.StorageState(path); err != nil {
		return outcome, fmt.Errorf("failed to save storage state: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return outcome, fmt.Errorf("failed to read back storage state: %w", err)
	}
	if consent.StateHasConsent(data) {
		log.Printf("driver: saved storage state with consent record to %s", path)
	} else {
		log.Printf("driver: saved storage state to %s, but it has no consent record (banner %s)", path, outcome.State)
	}
	l.storageState = resolveStorageState(path)

	return outcome, nil
}
