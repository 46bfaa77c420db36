package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask the career help assistant quick questions",
	Long: `Start a chat with the help assistant. Replies are short and stream in as
they are written. Each message is answered on its own.

Type 'exit' or 'quit' to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAssistClient(cmd.Context())
		if err != nil {
			return err
		}

		cyan := color.New(color.FgCyan, color.Bold)
		dim := color.New(color.FgHiBlack)
		green := color.New(color.FgGreen)

		fmt.Fprintln(os.Stderr)
		cyan.Fprintln(os.Stderr, "  copilot chat")
		dim.Fprintln(os.Stderr, "  Ask about resumes, applications or interviews.")
		dim.Fprintf(os.Stderr, "  Type 'exit' to quit.\n\n")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			green.Fprint(os.Stderr, "  you → ")
			if !scanner.Scan() {
				break
			}

			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" || input == "bye" {
				dim.Fprintf(os.Stderr, "\n  Good luck out there!\n\n")
				break
			}

			sp := ui.NewSpinner("Thinking...")
			sp.Start()
			ch, err := client.ChatStream(cmd.Context(), input)
			sp.Stop()
			if err != nil {
				fmt.Fprintf(os.Stderr, "  Error: %v\n\n", err)
				continue
			}

			cyan.Fprintln(os.Stderr, "  copilot →")
			if _, err := ui.RenderStream(os.Stderr, ch, "  "); err != nil {
				fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
			}
			fmt.Fprintln(os.Stderr)
		}
		return scanner.Err()
	},
}
