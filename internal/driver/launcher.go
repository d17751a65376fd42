// Package driver launches browsers and opens isolated, per-profile sessions
// against the target site.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/consent"
)

// ErrUnknownDevice is returned when a profile names a device playwright does not know
var ErrUnknownDevice = errors.New("unknown device")

// acceptHeader mirrors what a browser sends for a top level navigation; some
// CDNs in front of the target reject the default.
const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Options configures browser launch and context creation
type Options struct {
	BaseURL           string
	Headless          bool
	ActionTimeout     time.Duration
	NavigationTimeout time.Duration
	// StorageStatePath is loaded into every context when it holds a consent record.
	StorageStatePath string
	// Preference, when set, is seeded into every context before navigation.
	Preference consent.Preference
}

// OptionsFromConfig builds launcher options from the suite configuration
func OptionsFromConfig(c *config.SuiteConfig) (Options, error) {
	opts := Options{
		BaseURL:           c.BaseURL,
		Headless:          c.Headless,
		ActionTimeout:     c.ActionTimeout,
		NavigationTimeout: c.NavigationTimeout,
		StorageStatePath:  c.StorageStatePath,
	}
	if c.Consent != "" {
		pref, err := consent.ParsePreference(c.Consent)
		if err != nil {
			return opts, err
		}
		opts.Preference = pref
	}
	return opts, nil
}

// Launcher owns the playwright driver and one browser per browser type
type Launcher struct {
	pw           *playwright.Playwright
	opts         Options
	storageState string

	mu       sync.Mutex
	browsers map[string]playwright.Browser
}

// Start launches the playwright driver. Browsers are launched lazily on the
// first session that needs them.
func Start(opts Options) (*Launcher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	return &Launcher{
		pw:           pw,
		opts:         opts,
		storageState: resolveStorageState(opts.StorageStatePath),
		browsers:     make(map[string]playwright.Browser),
	}, nil
}

// Open creates a fresh browser context and page for the profile
func (l *Launcher) Open(ctx context.Context, profile config.Profile) (*Session, error) {
	return l.open(ctx, profile, l.storageState)
}

func (l *Launcher) open(ctx context.Context, profile config.Profile, statePath string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	device, ok := l.pw.Devices[profile.Device]
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, profile.Device)
	}

	browser, err := l.browser(browserTypeFor(profile, device))
	if err != nil {
		return nil, err
	}

	bc, err := browser.NewContext(contextOptions(device, l.opts, statePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	bc.SetDefaultTimeout(millis(l.opts.ActionTimeout))
	bc.SetDefaultNavigationTimeout(millis(l.opts.NavigationTimeout))

	if l.opts.Preference != "" {
		if err := ApplyPreferences(bc, l.opts.BaseURL, l.opts.Preference); err != nil {
			bc.Close()
			return nil, err
		}
	}

	page, err := bc.NewPage()
	if err != nil {
		bc.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &Session{Profile: profile, Context: bc, page: page}, nil
}

func (l *Launcher) browser(name string) (playwright.Browser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.browsers[name]; ok {
		return b, nil
	}

	var bt playwright.BrowserType
	switch name {
	case "chromium":
		bt = l.pw.Chromium
	case "firefox":
		bt = l.pw.Firefox
	case "webkit":
		bt = l.pw.WebKit
	default:
		return nil, fmt.Errorf("unsupported browser type %q", name)
	}

	b, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.opts.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", name, err)
	}
	log.Printf("driver: launched %s %s", name, b.Version())

	l.browsers[name] = b
	return b, nil
}

// Close shuts down every browser and the driver
func (l *Launcher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for name, b := range l.browsers {
		if err := b.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", name, err))
		}
	}
	l.browsers = map[string]playwright.Browser{}

	if err := l.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	return errors.Join(errs...)
}

func browserTypeFor(profile config.Profile, device *playwright.DeviceDescriptor) string {
	if profile.Browser != "" {
		return profile.Browser
	}
	if device != nil && device.DefaultBrowserType != "" {
		return device.DefaultBrowserType
	}
	return "chromium"
}

func contextOptions(device *playwright.DeviceDescriptor, opts Options, statePath string) playwright.BrowserNewContextOptions {
	o := playwright.BrowserNewContextOptions{
		ExtraHttpHeaders: map[string]string{"Accept": acceptHeader},
	}
	if opts.BaseURL != "" {
		o.BaseURL = playwright.String(opts.BaseURL)
	}
	if statePath != "" {
		o.StorageStatePath = playwright.String(statePath)
	}
	if device != nil {
		o.UserAgent = playwright.String(device.UserAgent)
		o.Viewport = device.Viewport
		o.Screen = device.Screen
		o.DeviceScaleFactor = playwright.Float(device.DeviceScaleFactor)
		o.IsMobile = playwright.Bool(device.IsMobile)
		o.HasTouch = playwright.Bool(device.HasTouch)
	}
	return o
}

// resolveStorageState returns path when it holds a usable consent record
func resolveStorageState(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("driver: ignoring storage state %s: %v", path, err)
		}
		return ""
	}
	if !consent.StateHasConsent(data) {
		log.Printf("driver: storage state %s has no consent record, ignoring it", path)
		return ""
	}
	return path
}

func millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
