// Package runner executes scenarios across browser profiles on a bounded
// worker pool, with per-attempt isolation, timeouts and retries.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/themizzi/menucheck/internal/config"
	"golang.org/x/sync/errgroup"
)

// Status of a scenario or attempt
type Status string

// Statuses
const (
	StatusPassed      Status = "passed"
	StatusFailed      Status = "failed"
	StatusSkipped     Status = "skipped"
	StatusFlaky       Status = "flaky"
	StatusInterrupted Status = "interrupted"
)

// Attempt is one execution of a scenario in a fresh session
type Attempt struct {
	Number     int
	Status     Status
	Duration   time.Duration
	Errors     []string
	Logs       []string
	Screenshot string
}

// Result is the outcome of a scenario under one profile
type Result struct {
	Profile  string
	Suite    string
	Name     string
	Status   Status
	Started  time.Time
	Duration time.Duration
	Attempts []Attempt
}

// Title is the suite and name joined for display
func (r Result) Title() string {
	return r.Suite + " > " + r.Name
}

// Summary holds every result of a run in matrix order
type Summary struct {
	Started  time.Time
	Duration time.Duration
	Results  []Result
}

// Count returns how many results have the status
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any scenario failed or was interrupted
func (s *Summary) Failed() bool {
	return s.Count(StatusFailed) > 0 || s.Count(StatusInterrupted) > 0
}

// Runner runs scenarios across the configured profiles
type Runner struct {
	Sessions Sessions
	Config   *config.SuiteConfig
	Grep     *regexp.Regexp
	// OnResult is called once per finished scenario, never concurrently.
	OnResult func(Result)
}

type job struct {
	index    int
	scenario Scenario
	profile  config.Profile
}

// Run executes the profile by scenario matrix. Scenario failures are reported
// in the summary; the error is reserved for selection problems.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) (*Summary, error) {
	selected, err := Select(scenarios, r.Grep, r.Config.ForbidOnly())
	if err != nil {
		return nil, err
	}

	var jobs []job
	for _, p := range r.Config.Profiles {
		for _, s := range selected {
			if s.AppliesTo(p) {
				jobs = append(jobs, job{index: len(jobs), scenario: s, profile: p})
			}
		}
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w for profiles %s", ErrNoScenarios, profileNames(r.Config.Profiles))
	}

	workers := r.Config.Workers
	if workers < 1 {
		workers = 1
	}
	log.Printf("runner: running %d scenarios using %d workers", len(jobs), workers)

	summary := &Summary{Started: time.Now(), Results: make([]Result, len(jobs))}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(workers)
	for _, j := range jobs {
		g.Go(func() error {
			res := r.runScenario(ctx, j)

			mu.Lock()
			defer mu.Unlock()
			summary.Results[j.index] = res
			if r.OnResult != nil {
				r.OnResult(res)
			}
			return nil
		})
	}
	g.Wait()

	summary.Duration = time.Since(summary.Started)
	log.Printf("runner: %d passed, %d failed, %d flaky, %d skipped in %s",
		summary.Count(StatusPassed), summary.Count(StatusFailed), summary.Count(StatusFlaky),
		summary.Count(StatusSkipped), summary.Duration.Round(time.Millisecond))
	return summary, nil
}

func (r *Runner) runScenario(ctx context.Context, j job) Result {
	res := Result{
		Profile: j.profile.Name,
		Suite:   j.scenario.Suite,
		Name:    j.scenario.Name,
		Started: time.Now(),
	}

	if ctx.Err() != nil {
		res.Status = StatusInterrupted
		return res
	}

	retries := r.Config.Retries
	if retries < 0 {
		retries = 0
	}
	for n := 1; n <= retries+1; n++ {
		a := r.runAttempt(ctx, j, n)
		res.Attempts = append(res.Attempts, a)
		res.Status = a.Status
		log.Printf("runner: [%s] %s: %s in %s (attempt %d)", res.Profile, res.Title(), a.Status, a.Duration.Round(time.Millisecond), n)

		if a.Status != StatusFailed || ctx.Err() != nil {
			break
		}
	}

	if res.Status == StatusPassed && len(res.Attempts) > 1 {
		res.Status = StatusFlaky
	}
	if res.Status == StatusFailed && ctx.Err() != nil {
		res.Status = StatusInterrupted
	}
	res.Duration = time.Since(res.Started)
	return res
}

func (r *Runner) runAttempt(ctx context.Context, j job, n int) Attempt {
	actx, cancel := context.WithTimeout(ctx, r.Config.TestTimeout)
	defer cancel()

	start := time.Now()
	a := Attempt{Number: n}

	session, err := r.Sessions.Open(actx, j.profile)
	if err != nil {
		a.Status = StatusFailed
		a.Errors = []string{fmt.Sprintf("failed to open session: %v", err)}
		a.Duration = time.Since(start)
		return a
	}

	var closeOnce sync.Once
	closeSession := func() {
		closeOnce.Do(func() {
			if err := session.Close(); err != nil {
				log.Printf("runner: failed to close session: %v", err)
			}
		})
	}
	defer closeSession()

	t := newT(actx, j.scenario.Title(), session, j.profile, r.Config, n)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if rec := recover(); rec != nil {
				t.fail(fmt.Sprintf("panic: %v", rec))
			}
		}()
		j.scenario.Run(t)
	}()

	timedOut := false
	select {
	case <-done:
	case <-actx.Done():
		timedOut = true
		if errors.Is(actx.Err(), context.DeadlineExceeded) {
			t.fail(fmt.Sprintf("Test timeout of %s exceeded.", r.Config.TestTimeout))
		} else {
			t.fail("Run interrupted.")
		}
		// Closing the context aborts whatever driver call the scenario is blocked on.
		closeSession()
		<-done
	}

	failed, skipped, errs, logs := t.snapshot()
	a.Errors, a.Logs = errs, logs
	switch {
	case failed:
		a.Status = StatusFailed
	case skipped:
		a.Status = StatusSkipped
	default:
		a.Status = StatusPassed
	}

	if failed && !timedOut {
		path := screenshotPath(r.Config.OutputDir, j, n)
		if err := session.Screenshot(path); err != nil {
			log.Printf("runner: %v", err)
		} else {
			a.Screenshot = path
		}
	}

	a.Duration = time.Since(start)
	return a
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

func screenshotPath(dir string, j job, attempt int) string {
	name := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(j.scenario.Title()), "-"), "-")
	return filepath.Join(dir, "screenshots", j.profile.Slug(), fmt.Sprintf("%s-attempt-%d.png", name, attempt))
}

func profileNames(profiles []config.Profile) string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
