package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/ui"
)

var (
	jobsTitle    string
	jobsLocation string
	jobsResume   string
)

var jobsCmd = &cobra.Command{
	Use:     "jobs",
	Short:   "Suggest job listings that fit your resume",
	Example: `  copilot jobs --title "Backend Engineer" --location Berlin --resume resume.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadResume(jobsResume)
		if err != nil {
			return err
		}
		client, err := newAssistClient(cmd.Context())
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Searching for jobs...")
		sp.Start()
		jobs, err := client.FindJobs(cmd.Context(), res, jobsTitle, jobsLocation)
		if err != nil {
			sp.Fail("Search failed")
			return err
		}
		sp.Stop()

		if len(jobs) == 0 {
			ui.Hint(os.Stderr, "No listings found. Try a broader title or location.")
			return nil
		}
		bold := color.New(color.Bold)
		dim := color.New(color.FgHiBlack)
		fmt.Fprintln(os.Stdout)
		for _, j := range jobs {
			scoreColor(j.MatchScore).Fprintf(os.Stdout, "  %3d%% ", j.MatchScore)
			bold.Fprintf(os.Stdout, "%s", j.Title)
			fmt.Fprintf(os.Stdout, " at %s\n", j.Company)
			dim.Fprintf(os.Stdout, "       %s\n", j.Location)
			if j.Description != "" {
				fmt.Fprintf(os.Stdout, "       %s\n", j.Description)
			}
			fmt.Fprintln(os.Stdout)
		}
		return nil
	},
}

func init() {
	jobsCmd.Flags().StringVar(&jobsTitle, "title", "", "Job title to search for (required)")
	jobsCmd.Flags().StringVar(&jobsLocation, "location", "", "Location (default Remote)")
	jobsCmd.Flags().StringVar(&jobsResume, "resume", "", "Resume file")
	_ = jobsCmd.MarkFlagRequired("title")
}
