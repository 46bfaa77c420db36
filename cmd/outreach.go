package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/ui"
)

var (
	outreachName    string
	outreachRole    string
	outreachCompany string
	outreachResume  string
)

var outreachCmd = &cobra.Command{
	Use:     "outreach",
	Short:   "Write a short networking message to a contact",
	Example: `  copilot outreach --name "Grace Hopper" --contact-role CTO --company Navy --resume resume.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadResume(outreachResume)
		if err != nil {
			return err
		}
		client, err := newAssistClient(cmd.Context())
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Writing your message...")
		sp.Start()
		out, err := client.Outreach(cmd.Context(), res, outreachName, outreachRole, outreachCompany)
		if err != nil {
			sp.Fail("Could not write the message")
			return err
		}
		sp.Stop()

		fmt.Fprintln(os.Stdout, out)
		return nil
	},
}

func init() {
	outreachCmd.Flags().StringVar(&outreachName, "name", "", "Contact's name (required)")
	outreachCmd.Flags().StringVar(&outreachRole, "contact-role", "", "Contact's role")
	outreachCmd.Flags().StringVar(&outreachCompany, "company", "", "Contact's company (required)")
	outreachCmd.Flags().StringVar(&outreachResume, "resume", "", "Resume file")
	_ = outreachCmd.MarkFlagRequired("name")
	_ = outreachCmd.MarkFlagRequired("company")
}
