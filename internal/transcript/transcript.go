// Package transcript exports an interview session as a plain-text log.
// The log is an export for the user, not a store: nothing reads it back.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/arin/career-copilot/internal/interview"
)

const separator = "--------------------------------------------------"

// fileMu guards concurrent writes to the same log file.
var fileMu sync.Mutex

// FileName returns the log file name for role, with whitespace replaced by
// underscores.
func FileName(role string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case r == '/' || r == os.PathSeparator:
			return '-'
		}
		return r
	}, role)
	return "interview-log-" + safe + ".txt"
}

// Write renders turns, given newest first as the controller keeps them, in
// chronological order.
func Write(w io.Writer, role string, turns []interview.Turn, now time.Time) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Interview Copilot Log for %s\nDate: %s\n\n", role, now.Format("2006-01-02 15:04:05"))
	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		fmt.Fprintf(bw, "%s\n", separator)
		fmt.Fprintf(bw, "[%s] Question:\n%s\n\n", t.Timestamp.Format("15:04:05"), t.Question)
		fmt.Fprintf(bw, "AI Suggested Answer:\n%s\n\n", t.Suggestion.Answer)
		fmt.Fprintf(bw, "Key Points:\n")
		for _, p := range t.Suggestion.KeyPoints {
			fmt.Fprintf(bw, "- %s\n", p)
		}
		fmt.Fprintf(bw, "\nPro-Tip: %s\n\n", t.Suggestion.ProTip)
	}
	return bw.Flush()
}

// Save writes the log into dir and returns the file path. The file is
// readable by the owner only.
func Save(dir, role string, turns []interview.Turn, now time.Time) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("nothing to save: no questions yet")
	}

	fileMu.Lock()
	defer fileMu.Unlock()

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(role))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", err
	}
	if err := Write(f, role, turns, now); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
