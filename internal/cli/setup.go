package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/consent"
	"github.com/themizzi/menucheck/internal/driver"
)

// ErrNoProfiles is returned when setup has no profile to launch
var ErrNoProfiles = errors.New("no profiles configured")

// RunSetup opens the base URL once under the first configured profile, deals
// with the consent banner and saves the storage state later runs start from
func RunSetup(ctx context.Context, cfg *config.SuiteConfig) (consent.Outcome, error) {
	if len(cfg.Profiles) == 0 {
		return consent.Outcome{}, ErrNoProfiles
	}

	opts, err := driver.OptionsFromConfig(cfg)
	if err != nil {
		return consent.Outcome{}, err
	}

	launcher, err := driver.Start(opts)
	if err != nil {
		return consent.Outcome{}, err
	}
	defer func() {
		if err := launcher.Close(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	profile := cfg.Profiles[0]
	log.Printf("Setting up %s with %s", cfg.BaseURL, profile.Name)

	outcome, err := driver.Setup(ctx, launcher, profile, cfg.StorageStatePath, consent.NewGate())
	if err != nil {
		return outcome, fmt.Errorf("setup failed: %w", err)
	}
	return outcome, nil
}
