package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/resume"
	"github.com/arin/career-copilot/internal/ui"
)

var (
	matchResume    string
	matchJDFile    string
	matchJD        string
	matchCustomize bool
	matchOut       string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score how well your resume fits a job description",
	Long: `Score your resume against a job description and list strengths, gaps and
suggestions. With --customize, also propose targeted edits to the summary,
latest experience and skills; add --out to save the edited resume.`,
	Example: `  copilot match --resume resume.pdf --jd-file job.txt
  pbpaste | copilot match --resume resume.yaml --jd-file -
  copilot match --resume resume.yaml --jd-file job.txt --customize --out tailored.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if matchOut != "" && !matchCustomize {
			return fmt.Errorf("--out requires --customize")
		}
		jd, err := jobDescription(matchJD, matchJDFile)
		if err != nil {
			return err
		}
		res, err := loadResume(matchResume)
		if err != nil {
			return err
		}
		client, err := newAssistClient(cmd.Context())
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Comparing resume and job...")
		sp.Start()
		result, err := client.AnalyzeMatch(cmd.Context(), res, jd)
		if err != nil {
			sp.Fail("Analysis failed")
			return err
		}
		sp.Stop()

		bold := color.New(color.Bold)

		fmt.Fprintln(os.Stdout)
		scoreColor(result.MatchScore).Fprintf(os.Stdout, "  Match score: %d/100\n\n", result.MatchScore)
		if result.Strengths != "" {
			bold.Fprintln(os.Stdout, "  Strengths")
			fmt.Fprintf(os.Stdout, "  %s\n\n", result.Strengths)
		}
		if result.Weaknesses != "" {
			bold.Fprintln(os.Stdout, "  Gaps")
			fmt.Fprintf(os.Stdout, "  %s\n\n", result.Weaknesses)
		}
		if len(result.Suggestions) > 0 {
			bold.Fprintln(os.Stdout, "  Suggestions")
			for _, s := range result.Suggestions {
				fmt.Fprintf(os.Stdout, "  • %s\n", s)
			}
			fmt.Fprintln(os.Stdout)
		}
		if !matchCustomize {
			return nil
		}

		sp = ui.NewSpinner("Tailoring your resume...")
		sp.Start()
		edits, err := client.CustomizeResume(cmd.Context(), res, jd)
		if err != nil {
			sp.Fail("Customization failed")
			return err
		}
		sp.Stop()

		if edits.Empty() {
			ui.Hint(os.Stderr, "No changes suggested.")
			return nil
		}
		bold.Fprintln(os.Stdout, "  Suggested edits")
		if edits.Summary != "" {
			fmt.Fprintf(os.Stdout, "  Summary:\n  %s\n\n", edits.Summary)
		}
		for _, u := range edits.Experience {
			fmt.Fprintf(os.Stdout, "  Experience %s:\n%s\n\n", experienceLabel(res, u.ID), indentLines(u.Responsibilities, "  "))
		}
		if edits.Skills != "" {
			fmt.Fprintf(os.Stdout, "  Skills:\n  %s\n\n", edits.Skills)
		}

		if matchOut != "" {
			if err := resume.Save(matchOut, edits.Apply(res)); err != nil {
				return err
			}
			ui.Hint(os.Stderr, "Saved tailored resume to %s", matchOut)
		}
		return nil
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchResume, "resume", "", "Resume file (required)")
	matchCmd.Flags().StringVar(&matchJDFile, "jd-file", "", "File with the job description ('-' for stdin)")
	matchCmd.Flags().StringVar(&matchJD, "jd", "", "Job description text")
	matchCmd.Flags().BoolVar(&matchCustomize, "customize", false, "Also suggest targeted resume edits")
	matchCmd.Flags().StringVar(&matchOut, "out", "", "With --customize, save the edited resume here (.json or .yaml)")
	_ = matchCmd.MarkFlagRequired("resume")
	matchCmd.MarkFlagsOneRequired("jd", "jd-file")
	matchCmd.MarkFlagsMutuallyExclusive("jd", "jd-file")
}

// jobDescription returns the inline text, or the file contents when a file
// is given.
func jobDescription(text, file string) (string, error) {
	if file == "" {
		return text, nil
	}
	jd, err := readText(file)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return jd, nil
}

// scoreColor picks green, yellow or red for a 0-100 score.
func scoreColor(score int) *color.Color {
	switch {
	case score >= 75:
		return color.New(color.FgGreen, color.Bold)
	case score >= 50:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func experienceLabel(r resume.Data, id string) string {
	for _, e := range r.Experience {
		if e.ID == id {
			return fmt.Sprintf("%s at %s", e.Role, e.Company)
		}
	}
	return id
}

func indentLines(s, prefix string) string {
	return prefix + strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n"+prefix)
}
