package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/config"
	"github.com/arin/career-copilot/internal/interview"
	"github.com/arin/career-copilot/internal/prompt"
	"github.com/arin/career-copilot/internal/suggest"
	"github.com/arin/career-copilot/internal/transcript"
	"github.com/arin/career-copilot/internal/ui"
)

var (
	interviewRole   string
	interviewJDFile string
	interviewResume string
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Get live suggested answers during an interview",
	Long: `Type (or paste) each interview question as it is asked. The suggested
answer streams in as it is written, followed by key talking points and a
delivery tip. Earlier questions give the model context for later ones.

Commands:
  /regen        answer the last question again
  /reset        forget every question so far
  /save [dir]   write the interview log (default: ~/.career-copilot)
  /exit         quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		jd, err := readInterviewJD(interviewJDFile)
		if err != nil {
			return err
		}
		if strings.TrimSpace(interviewRole) == "" && jd == "" {
			return fmt.Errorf("tell me what the interview is for: --role or --jd-file")
		}
		res, err := loadResume(interviewResume)
		if err != nil {
			return err
		}
		ch, err := selectChannel(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		r := &interviewRepl{}
		ctrl := interview.NewController(ch.transport, prompt.NewBuilder(cfg.Model, cfg.Temperature),
			interview.Session{Resume: res, JobRole: interviewRole, JobDescription: jd},
			interview.WithObserver(r.observe))
		defer ctrl.Close()

		cyan := color.New(color.FgCyan, color.Bold)
		dim := color.New(color.FgHiBlack)
		green := color.New(color.FgGreen)

		fmt.Fprintln(os.Stderr)
		cyan.Fprintf(os.Stderr, "  Interview copilot: %s\n", sessionLabel(interviewRole, jd))
		dim.Fprintf(os.Stderr, "  via %s. Type a question, /regen, /reset, /save or /exit.\n\n", ch.name)

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for {
			green.Fprint(os.Stderr, "  question → ")
			if !scanner.Scan() {
				break
			}

			input := strings.TrimSpace(scanner.Text())
			switch {
			case input == "":
				continue
			case input == "/exit" || input == "/quit":
				dim.Fprintf(os.Stderr, "\n  Good luck!\n\n")
				return nil
			case input == "/reset":
				ctrl.Reset()
				ui.Hint(os.Stderr, "Session cleared.\n")
			case input == "/regen":
				r.ask(cmd.Context(), ctrl, ctrl.Regenerate)
			case input == "/save" || strings.HasPrefix(input, "/save "):
				dir := strings.TrimSpace(strings.TrimPrefix(input, "/save"))
				if dir == "" {
					dir = config.Dir()
				}
				path, err := transcript.Save(dir, sessionLabel(interviewRole, jd), ctrl.Turns(), time.Now())
				if err != nil {
					fmt.Fprintf(os.Stderr, "  Error: %v\n\n", err)
					continue
				}
				ui.Hint(os.Stderr, "Saved %s\n", path)
			case strings.HasPrefix(input, "/"):
				ui.Hint(os.Stderr, "Unknown command %s\n", input)
			default:
				r.ask(cmd.Context(), ctrl, func(ctx context.Context) (interview.Turn, error) {
					return ctrl.Analyze(ctx, input)
				})
			}
		}
		return scanner.Err()
	},
}

func init() {
	interviewCmd.Flags().StringVar(&interviewRole, "role", "", "Job role you are interviewing for")
	interviewCmd.Flags().StringVar(&interviewJDFile, "jd-file", "", "File with the job description")
	interviewCmd.Flags().StringVar(&interviewResume, "resume", "", "Resume file (.json, .yaml, .pdf, .docx or text)")
}

// interviewRepl renders one turn at a time. Its fields are written before a
// turn starts and by the observer while it streams; they are read only after
// the controller's Wait returns.
type interviewRepl struct {
	live    *ui.LiveAnswer
	spinner *ui.Spinner
	final   interview.Update
}

func (r *interviewRepl) observe(u interview.Update) {
	r.spinner.Stop()
	if !u.Final() {
		r.live.Update(u.Suggestion.Answer)
		return
	}
	r.final = u
}

func (r *interviewRepl) ask(ctx context.Context, ctrl *interview.Controller, start func(context.Context) (interview.Turn, error)) {
	r.live = ui.NewLiveAnswer(os.Stderr, "  ")
	r.spinner = ui.NewSpinner("Thinking...")
	r.final = interview.Update{}

	r.spinner.Start()
	if _, err := start(ctx); err != nil {
		r.spinner.Stop()
		if errors.Is(err, interview.ErrRejected) {
			color.New(color.FgYellow).Fprintf(os.Stderr, "  %v\n\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "  Error: %v\n\n", err)
		return
	}
	ctrl.Wait()
	r.spinner.Stop()
	r.live.Finish()
	fmt.Fprintln(os.Stderr)

	if r.final.State == suggest.Failed {
		color.New(color.FgRed).Fprintf(os.Stderr, "  ✗ %v\n\n", r.final.Err)
		return
	}
	if latest, ok := ctrl.Latest(); ok {
		ui.RenderSuggestion(os.Stderr, latest.Suggestion)
	}
}

// readInterviewJD reads the job description file. Stdin is reserved for the
// questions, so "-" is refused.
func readInterviewJD(path string) (string, error) {
	if path == "-" {
		return "", fmt.Errorf("--jd-file cannot be stdin during an interview; questions are read from stdin")
	}
	jd, err := readText(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return jd, nil
}

func sessionLabel(role, jd string) string {
	if role != "" {
		return role
	}
	first, _, _ := strings.Cut(jd, "\n")
	if len(first) > 60 {
		first = first[:60]
	}
	return first
}
