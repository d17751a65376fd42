package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/models"
	"github.com/themizzi/menucheck/internal/services"
)

// PrintHistory writes the most recent runs as a table
func PrintHistory(w io.Writer, svc services.RunService, limit int) error {
	runs, err := svc.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tPASSED\tFAILED\tFLAKY\tSKIPPED\tDURATION\tBASE URL")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			run.ID, startedAt(run), run.Status,
			run.Counts.Passed, run.Counts.Failed, run.Counts.Flaky, run.Counts.Skipped,
			run.Duration().Round(time.Second), run.BaseURL)
	}
	return tw.Flush()
}

// PrintRunResults writes the scenario results of one run
func PrintRunResults(w io.Writer, svc services.RunService, runID string) error {
	results, err := svc.RunResults(runID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROFILE\tSUITE\tSCENARIO\tSTATUS\tATTEMPTS\tDURATION")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			res.Profile, res.Suite, res.Name, res.Status, res.Attempts, res.Duration.Round(time.Millisecond))
	}
	return tw.Flush()
}

// PrintProfiles writes the configured device profiles
func PrintProfiles(w io.Writer, profiles []config.Profile) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDEVICE\tBROWSER")
	for _, p := range profiles {
		b := p.Browser
		if b == "" {
			b = "(device default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Device, b)
	}
	return tw.Flush()
}

func startedAt(run *models.Run) string {
	if run.StartedAt == nil {
		return "-"
	}
	return run.StartedAt.Local().Format("2006-01-02 15:04")
}
