package runner

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/menucheck/internal/browser"
	"github.com/themizzi/menucheck/internal/config"
)

// T is handed to a scenario. It satisfies testify's assert.TestingT and
// require.TestingT, so scenarios assert the same way Go tests do.
type T struct {
	ctx     context.Context
	title   string
	Page    playwright.Page
	Browser browser.Page
	Profile config.Profile
	Config  *config.SuiteConfig
	Attempt int

	mu      sync.Mutex
	failed  bool
	skipped bool
	errors  []string
	logs    []string
}

func newT(ctx context.Context, title string, session Session, profile config.Profile, cfg *config.SuiteConfig, attempt int) *T {
	t := &T{
		ctx:     ctx,
		title:   title,
		Profile: profile,
		Config:  cfg,
		Attempt: attempt,
	}
	if session != nil {
		t.Page = session.Page()
		t.Browser = session.Browser()
	}
	return t
}

// Context is cancelled when the scenario times out or the run is interrupted
func (t *T) Context() context.Context {
	return t.ctx
}

// Errorf records a failure and lets the scenario continue
func (t *T) Errorf(format string, args ...interface{}) {
	t.fail(fmt.Sprintf(format, args...))
}

// Fatalf records a failure and stops the scenario
func (t *T) Fatalf(format string, args ...interface{}) {
	t.fail(fmt.Sprintf(format, args...))
	runtime.Goexit()
}

// FailNow stops the scenario. Like testing.T it must be called from the
// scenario's own goroutine.
func (t *T) FailNow() {
	t.mu.Lock()
	t.failed = true
	t.mu.Unlock()
	runtime.Goexit()
}

// Failed reports whether the scenario has failed
func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

// Logf records a line in the attempt's output
func (t *T) Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s: %s", t.Profile.Name, t.title, msg)

	t.mu.Lock()
	t.logs = append(t.logs, msg)
	t.mu.Unlock()
}

// Skipf marks the scenario skipped and stops it
func (t *T) Skipf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	t.mu.Lock()
	t.skipped = true
	t.logs = append(t.logs, msg)
	t.mu.Unlock()
	runtime.Goexit()
}

// Helper is a no-op kept for testify compatibility
func (t *T) Helper() {}

func (t *T) fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = true
	t.errors = append(t.errors, msg)
}

func (t *T) snapshot() (failed, skipped bool, errs, logs []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed, t.skipped, append([]string(nil), t.errors...), append([]string(nil), t.logs...)
}
