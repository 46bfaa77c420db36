package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arin/career-copilot/internal/ai"
)

// RenderStream writes fragments from ch to w as they arrive, indenting every
// line with prefix. It returns the trimmed full text and the stream error, if
// any, with the text gathered before it.
func RenderStream(w io.Writer, ch <-chan ai.StreamDelta, prefix string) (string, error) {
	var full strings.Builder
	first := true

	for delta := range ch {
		if delta.Err != nil {
			return full.String(), delta.Err
		}
		if delta.Text == "" {
			continue
		}

		if first {
			fmt.Fprint(w, prefix)
			first = false
		}
		fmt.Fprint(w, indent(delta.Text, prefix))
		full.WriteString(delta.Text)
	}

	if full.Len() > 0 && !strings.HasSuffix(full.String(), "\n") {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	return strings.TrimSpace(full.String()), nil
}

// LiveAnswer keeps a growing answer on screen. Every update carries the
// whole answer; only what is new since the last update is written.
type LiveAnswer struct {
	w      io.Writer
	prefix string
	shown  string
	open   bool
}

func NewLiveAnswer(w io.Writer, prefix string) *LiveAnswer {
	return &LiveAnswer{w: w, prefix: prefix}
}

// Update shows answer. If answer no longer extends what is on screen, for
// example after the model rewrote its opening, it is reprinted in full on a
// new line.
func (l *LiveAnswer) Update(answer string) {
	if answer == l.shown {
		return
	}
	if !strings.HasPrefix(answer, l.shown) {
		if l.open {
			fmt.Fprintln(l.w)
		}
		l.shown, l.open = "", false
	}
	if !l.open {
		fmt.Fprint(l.w, l.prefix)
		l.open = true
	}
	fmt.Fprint(l.w, indent(answer[len(l.shown):], l.prefix))
	l.shown = answer
}

// Finish terminates the live line. It is safe to call more than once.
func (l *LiveAnswer) Finish() {
	if l.open {
		fmt.Fprintln(l.w)
		l.open = false
	}
}

// Shown returns the answer currently on screen.
func (l *LiveAnswer) Shown() string {
	return l.shown
}

func indent(s, prefix string) string {
	if prefix == "" {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
