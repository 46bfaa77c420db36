package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/ui"
)

var (
	bulletsRole  string
	bulletsNotes string
)

var bulletsCmd = &cobra.Command{
	Use:   "bullets",
	Short: "Write resume bullet points for a role",
	Example: `  copilot bullets --role "Site Reliability Engineer"
  copilot bullets --role SRE --notes "cut pager load in half, led k8s migration"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAssistClient(cmd.Context())
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Writing bullets...")
		sp.Start()
		out, err := client.ResumeBullets(cmd.Context(), bulletsRole, bulletsNotes)
		if err != nil {
			sp.Fail("Could not write bullets")
			return err
		}
		sp.Stop()

		fmt.Fprintln(os.Stdout, out)
		return nil
	},
}

func init() {
	bulletsCmd.Flags().StringVar(&bulletsRole, "role", "", "Role the bullets are for (required)")
	bulletsCmd.Flags().StringVar(&bulletsNotes, "notes", "", "Achievements or context to draw from")
	_ = bulletsCmd.MarkFlagRequired("role")
}
