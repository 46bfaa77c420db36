package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/arin/career-copilot/internal/suggest"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	tip     = color.New(color.FgYellow)
	dim     = color.New(color.Faint)
)

// RenderSuggestion prints the finished answer, key points and pro tip.
// Empty sections are left out.
func RenderSuggestion(w io.Writer, s suggest.SuggestedAnswer) {
	heading.Fprintln(w, "  Answer")
	fmt.Fprintf(w, "  %s\n", indent(s.Answer, "  "))

	if len(s.KeyPoints) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "  Key points")
		for _, p := range s.KeyPoints {
			fmt.Fprintf(w, "  • %s\n", p)
		}
	}

	if s.ProTip != "" {
		fmt.Fprintln(w)
		tip.Fprintf(w, "  Pro tip: %s\n", s.ProTip)
	}
	fmt.Fprintln(w)
}

// Hint prints a dimmed one-line hint.
func Hint(w io.Writer, format string, args ...any) {
	dim.Fprintf(w, "  "+format+"\n", args...)
}
