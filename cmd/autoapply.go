package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/assist"
	"github.com/arin/career-copilot/internal/ui"
)

var (
	autoApplyTitle    string
	autoApplyLocation string
	autoApplyCycles   int
	autoApplyPace     time.Duration
)

var autoApplyCmd = &cobra.Command{
	Use:   "auto-apply",
	Short: "Run the auto-apply simulator",
	Long: `Simulate automated job applications for a target role. Each cycle prints a
generated log of searches and applications with a running tally. Nothing is
actually submitted anywhere.`,
	Example: `  copilot auto-apply --title "Data Engineer" --location Remote --cycles 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAssistClient(cmd.Context())
		if err != nil {
			return err
		}

		cyan := color.New(color.FgCyan, color.Bold)
		var stats assist.ApplyStats
		for cycle := 1; cycle <= autoApplyCycles; cycle++ {
			cyan.Fprintf(os.Stderr, "\n  Cycle %d/%d\n", cycle, autoApplyCycles)

			sp := ui.NewSpinner("Finding openings...")
			sp.Start()
			entries, err := client.AutoApplyCycle(cmd.Context(), autoApplyTitle, autoApplyLocation)
			if err != nil {
				sp.Fail("Cycle failed")
				return err
			}
			sp.Stop()

			for _, e := range entries {
				if err := pause(cmd.Context(), autoApplyPace); err != nil {
					return err
				}
				printApplyEntry(e, time.Now())
				stats.Record(e)
			}
		}

		fmt.Fprintln(os.Stderr)
		ui.Hint(os.Stderr, "Applications sent: %d  Successful: %d  Failed: %d\n", stats.Sent, stats.Success, stats.Failed)
		return nil
	},
}

func printApplyEntry(e assist.ApplyLogEntry, at time.Time) {
	mark := color.New(color.FgHiBlack).Sprint("•")
	switch e.Status {
	case assist.ApplySuccess:
		mark = color.New(color.FgGreen).Sprint("✓")
	case assist.ApplyFailure:
		mark = color.New(color.FgRed).Sprint("✗")
	}
	fmt.Fprintf(os.Stderr, "  %s %s %s\n", color.New(color.FgHiBlack).Sprint(at.Format("15:04:05")), mark, e.Message)
}

// pause waits between half and one and a half times pace, or until ctx ends.
func pause(ctx context.Context, pace time.Duration) error {
	if pace <= 0 {
		return nil
	}
	d := pace/2 + rand.N(pace)
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func init() {
	autoApplyCmd.Flags().StringVar(&autoApplyTitle, "title", "", "Target job title (required)")
	autoApplyCmd.Flags().StringVar(&autoApplyLocation, "location", "", "Target location (default Remote)")
	autoApplyCmd.Flags().IntVar(&autoApplyCycles, "cycles", 1, "Number of cycles to run")
	autoApplyCmd.Flags().DurationVar(&autoApplyPace, "pace", time.Second, "Average delay between log entries, 0 to print at once")
	_ = autoApplyCmd.MarkFlagRequired("title")
}
