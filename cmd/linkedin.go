package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/ui"
)

var (
	linkedInURL    string
	linkedInRole   string
	linkedInResume string
)

var linkedInCmd = &cobra.Command{
	Use:   "linkedin",
	Short: "Get suggestions for your LinkedIn profile",
	Long: `Review your LinkedIn profile for a target role. The suggestions are based on
your resume; the profile URL is passed along as context only.`,
	Example: `  copilot linkedin --role "Platform Engineer" --resume resume.yaml --url https://linkedin.com/in/you`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadResume(linkedInResume)
		if err != nil {
			return err
		}
		client, err := newAssistClient(cmd.Context())
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Reviewing your profile...")
		sp.Start()
		result, err := client.LinkedInProfile(cmd.Context(), res, linkedInURL, linkedInRole)
		if err != nil {
			sp.Fail("Review failed")
			return err
		}
		sp.Stop()

		fmt.Fprintln(os.Stdout)
		scoreColor(result.Score).Fprintf(os.Stdout, "  Profile score: %d/100\n\n", result.Score)
		bold := color.New(color.Bold)
		for _, s := range []struct{ title, text string }{
			{"Headline", result.HeadlineSuggestion},
			{"About", result.SummarySuggestion},
			{"Experience", result.ExperienceSuggestion},
			{"Skills", result.SkillsSuggestion},
			{"Education", result.EducationSuggestion},
			{"Certifications", result.CertificationsSuggestion},
		} {
			if s.text == "" {
				continue
			}
			bold.Fprintf(os.Stdout, "  %s\n", s.title)
			fmt.Fprintf(os.Stdout, "  %s\n\n", s.text)
		}
		return nil
	},
}

func init() {
	linkedInCmd.Flags().StringVar(&linkedInURL, "url", "", "Your LinkedIn profile URL")
	linkedInCmd.Flags().StringVar(&linkedInRole, "role", "", "Role you want the profile to target (required)")
	linkedInCmd.Flags().StringVar(&linkedInResume, "resume", "", "Resume file (required)")
	_ = linkedInCmd.MarkFlagRequired("role")
	_ = linkedInCmd.MarkFlagRequired("resume")
}
