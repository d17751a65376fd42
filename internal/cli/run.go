package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/driver"
	"github.com/themizzi/menucheck/internal/models"
	"github.com/themizzi/menucheck/internal/report"
	"github.com/themizzi/menucheck/internal/runner"
	"github.com/themizzi/menucheck/internal/services"
)

// ErrRunFailed is returned when at least one scenario failed or was interrupted
var ErrRunFailed = errors.New("check run failed")

// RunDependencies holds everything a check run needs
type RunDependencies struct {
	Config    *config.SuiteConfig
	Grep      *regexp.Regexp
	Scenarios []runner.Scenario
	Sessions  runner.Sessions
	// History is nil unless the run is recorded.
	History services.RunService
}

// LauncherSessions opens runner sessions from a playwright launcher
func LauncherSessions(l *driver.Launcher) runner.Sessions {
	return runner.SessionsFunc(func(ctx context.Context, profile config.Profile) (runner.Session, error) {
		s, err := l.Open(ctx, profile)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// RunChecks runs the scenario matrix, writes the reports and records the run
// when history is enabled. Scenario failures come back as ErrRunFailed along
// with the summary.
func RunChecks(ctx context.Context, deps RunDependencies) (*runner.Summary, error) {
	cfg := deps.Config
	if err := report.Validate(cfg.Reporters); err != nil {
		return nil, err
	}

	var run *models.Run
	if deps.History != nil {
		names := make([]string, len(cfg.Profiles))
		for i, p := range cfg.Profiles {
			names[i] = p.Name
		}
		var err error
		run, err = deps.History.StartRun(cfg.BaseURL, names)
		if err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		log.Printf("Recording run %s", run.ID)
	}

	r := &runner.Runner{
		Sessions: deps.Sessions,
		Config:   cfg,
		Grep:     deps.Grep,
		OnResult: func(res runner.Result) {
			if run == nil {
				return
			}
			if err := deps.History.RecordResult(run.ID, res); err != nil {
				log.Printf("Warning: failed to record %s: %v", res.Title(), err)
			}
		},
	}

	summary, err := r.Run(ctx, deps.Scenarios)
	if err != nil {
		if run != nil {
			if cerr := deps.History.CancelRun(run.ID); cerr != nil {
				log.Printf("Warning: failed to cancel run %s: %v", run.ID, cerr)
			}
		}
		return nil, err
	}

	if run != nil {
		if _, err := deps.History.FinishRun(run.ID, summary); err != nil {
			log.Printf("Warning: failed to finish run %s: %v", run.ID, err)
		}
	}

	if err := report.Write(summary, cfg.OutputDir, cfg.Reporters); err != nil {
		return summary, err
	}

	if summary.Failed() {
		return summary, fmt.Errorf("%w: %d failed, %d interrupted", ErrRunFailed,
			summary.Count(runner.StatusFailed), summary.Count(runner.StatusInterrupted))
	}
	return summary, nil
}
