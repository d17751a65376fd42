package consent

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/themizzi/menucheck/internal/browser"
)

// RetryWithConsent runs action up to attempts times. Before each attempt the
// gate is re-run if a banner has come back. The action's last error is
// returned; unlike the gate itself, this is a failure for the caller.
func RetryWithConsent(ctx context.Context, page browser.Page, g *Gate, attempts int, pause time.Duration, action func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if g.BannerPresent(page) {
			g.EnsureReady(ctx, page)
		}

		if err = action(); err == nil {
			return nil
		}

		if attempt < attempts {
			log.Printf("consent: attempt %d failed, retrying with consent handling: %v", attempt, err)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("retry aborted: %w", ctxErr)
			}
			page.Wait(pause)
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", attempts, err)
}
