package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "copilot",
	Short: "An AI career copilot for interviews and job applications",
	Long: `copilot coaches you through live interviews and helps with the rest of
the job search: resume bullets and optimization, cover letters, job matching,
job search, LinkedIn review, an auto-apply simulator and outreach.

Examples:
  copilot interview --role "Backend Engineer" --resume resume.yaml
  copilot match --resume resume.pdf --jd-file job.txt
  copilot cover-letter --company Initech --role SRE --tone confident
  copilot relay --addr :8787

Answers come from Gemini through one of three channels, picked in order:
a relay URL, a running bridge process, or an API key used directly.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 1,
}

func init() {
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(bulletsCmd)
	rootCmd.AddCommand(coverLetterCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(outreachCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(linkedInCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(autoApplyCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(bridgeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the entry point called from main.
func Execute() error {
	return rootCmd.Execute()
}
