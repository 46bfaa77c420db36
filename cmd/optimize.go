package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/resume"
	"github.com/arin/career-copilot/internal/ui"
)

var (
	optimizeResume string
	optimizeJDFile string
	optimizeJD     string
	optimizeOut    string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rewrite your resume for a job description",
	Long: `Score your resume against a job description, rewrite it to fit, and show
what changed. With --out the rewritten resume is saved as JSON or YAML.`,
	Example: `  copilot optimize --resume resume.yaml --jd-file job.txt --out tailored.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jd, err := jobDescription(optimizeJD, optimizeJDFile)
		if err != nil {
			return err
		}
		res, err := loadResume(optimizeResume)
		if err != nil {
			return err
		}
		client, err := newAssistClient(cmd.Context())
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Optimizing your resume...")
		sp.Start()
		result, err := client.OptimizeResume(cmd.Context(), res, jd)
		if err != nil {
			sp.Fail("Optimization failed")
			return err
		}
		sp.Stop()

		fmt.Fprintln(os.Stdout)
		fmt.Fprint(os.Stdout, "  Score: ")
		scoreColor(result.BeforeScore).Fprintf(os.Stdout, "%d", result.BeforeScore)
		fmt.Fprint(os.Stdout, " → ")
		scoreColor(result.AfterScore).Fprintf(os.Stdout, "%d\n\n", result.AfterScore)

		if len(result.Highlights) > 0 {
			color.New(color.Bold).Fprintln(os.Stdout, "  What changed")
			for _, h := range result.Highlights {
				fmt.Fprintf(os.Stdout, "  • %s: %s\n", h.Keyword, h.Reason)
			}
			fmt.Fprintln(os.Stdout)
		}

		if optimizeOut == "" {
			fmt.Fprintln(os.Stdout, result.OptimizedResume.Text())
			return nil
		}
		if err := resume.Save(optimizeOut, result.OptimizedResume); err != nil {
			return err
		}
		ui.Hint(os.Stderr, "Saved optimized resume to %s", optimizeOut)
		return nil
	},
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeResume, "resume", "", "Resume file (required)")
	optimizeCmd.Flags().StringVar(&optimizeJDFile, "jd-file", "", "File with the job description ('-' for stdin)")
	optimizeCmd.Flags().StringVar(&optimizeJD, "jd", "", "Job description text")
	optimizeCmd.Flags().StringVar(&optimizeOut, "out", "", "Write the optimized resume here (.json or .yaml)")
	_ = optimizeCmd.MarkFlagRequired("resume")
	optimizeCmd.MarkFlagsOneRequired("jd", "jd-file")
	optimizeCmd.MarkFlagsMutuallyExclusive("jd", "jd-file")
}
