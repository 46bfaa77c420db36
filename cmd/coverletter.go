package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/prompt"
	"github.com/arin/career-copilot/internal/ui"
)

var (
	coverCompany string
	coverRole    string
	coverTone    string
	coverManager string
	coverResume  string
)

var coverLetterCmd = &cobra.Command{
	Use:     "cover-letter",
	Aliases: []string{"cover"},
	Short:   "Draft a cover letter from your resume",
	Example: `  copilot cover-letter --company Initech --role SRE --resume resume.yaml
  copilot cover-letter --company Initech --role SRE --tone conversational --manager "Bill Lumbergh"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadResume(coverResume)
		if err != nil {
			return err
		}
		client, err := newAssistClient(cmd.Context())
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Drafting your letter...")
		sp.Start()
		out, err := client.CoverLetter(cmd.Context(), res, prompt.CoverLetterInput{
			Company: coverCompany,
			Role:    coverRole,
			Tone:    prompt.ParseTone(coverTone),
			Manager: coverManager,
		})
		if err != nil {
			sp.Fail("Could not draft the letter")
			return err
		}
		sp.Stop()

		fmt.Fprintln(os.Stdout, out)
		return nil
	},
}

func init() {
	coverLetterCmd.Flags().StringVar(&coverCompany, "company", "", "Company you are applying to (required)")
	coverLetterCmd.Flags().StringVar(&coverRole, "role", "", "Role you are applying for (required)")
	coverLetterCmd.Flags().StringVar(&coverTone, "tone", "formal", "formal, conversational or confident")
	coverLetterCmd.Flags().StringVar(&coverManager, "manager", "", "Hiring manager's name, if known")
	coverLetterCmd.Flags().StringVar(&coverResume, "resume", "", "Resume file")
	_ = coverLetterCmd.MarkFlagRequired("company")
	_ = coverLetterCmd.MarkFlagRequired("role")
}
