package transcript

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arin/career-copilot/internal/interview"
	"github.com/arin/career-copilot/internal/suggest"
)

var (
	day   = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	turns = []interview.Turn{
		{
			ID:        "2",
			Question:  "Why Go?",
			Timestamp: day.Add(10*time.Hour + 5*time.Minute),
			Suggestion: suggest.SuggestedAnswer{
				Answer:    "Simplicity.",
				KeyPoints: []string{"Fast builds", "Static binaries"},
				ProTip:    "Be concrete.",
			},
		},
		{
			ID:         "1",
			Question:   "Tell me about yourself",
			Timestamp:  day.Add(10 * time.Hour),
			Suggestion: suggest.SuggestedAnswer{Answer: "I build backends.", KeyPoints: []string{}},
		},
	}
)

func TestWrite_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "Backend Engineer", turns, day.Add(11*time.Hour)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "Interview Copilot Log for Backend Engineer\nDate: 2026-03-04 11:00:00\n\n" +
		separator + "\n" +
		"[10:00:00] Question:\nTell me about yourself\n\n" +
		"AI Suggested Answer:\nI build backends.\n\n" +
		"Key Points:\n" +
		"\nPro-Tip: \n\n" +
		separator + "\n" +
		"[10:05:00] Question:\nWhy Go?\n\n" +
		"AI Suggested Answer:\nSimplicity.\n\n" +
		"Key Points:\n- Fast builds\n- Static binaries\n" +
		"\nPro-Tip: Be concrete.\n\n"
	if buf.String() != want {
		t.Errorf("unexpected log:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWrite_OldestFirst(t *testing.T) {
	var buf bytes.Buffer
	_ = Write(&buf, "SRE", turns, day)
	out := buf.String()
	if strings.Index(out, "Tell me about yourself") > strings.Index(out, "Why Go?") {
		t.Error("expected the oldest turn first")
	}
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"Backend Engineer":    "interview-log-Backend_Engineer.txt",
		"SRE":                 "interview-log-SRE.txt",
		"Data\tScientist  II": "interview-log-Data_Scientist__II.txt",
		"CI/CD Lead":          "interview-log-CI-CD_Lead.txt",
	}
	for role, want := range cases {
		if got := FileName(role); got != want {
			t.Errorf("FileName(%q) = %q, want %q", role, got, want)
		}
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	path, err := Save(dir, "Backend Engineer", turns, day)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "interview-log-Backend_Engineer.txt" {
		t.Errorf("unexpected path: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected 0600, got %v", info.Mode().Perm())
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "Interview Copilot Log for Backend Engineer\n") {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestSave_Overwrites(t *testing.T) {
	dir := t.TempDir()
	if _, err := Save(dir, "SRE", turns, day); err != nil {
		t.Fatal(err)
	}
	path, err := Save(dir, "SRE", turns[:1], day)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Tell me about yourself") {
		t.Error("expected the second save to replace the first")
	}
}

func TestSave_NoTurns(t *testing.T) {
	if _, err := Save(t.TempDir(), "SRE", nil, day); err == nil {
		t.Fatal("expected error for an empty session")
	}
}
