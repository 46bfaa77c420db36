package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arin/career-copilot/internal/resume"
)

func TestJobDescription(t *testing.T) {
	jd, err := jobDescription("inline text", "")
	require.NoError(t, err)
	assert.Equal(t, "inline text", jd)

	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("  from file \n"), 0o600))
	jd, err = jobDescription("", path)
	require.NoError(t, err)
	assert.Equal(t, "from file", jd)

	_, err = jobDescription("", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestScoreColor(t *testing.T) {
	assert.True(t, scoreColor(90).Equals(color.New(color.FgGreen, color.Bold)))
	assert.True(t, scoreColor(60).Equals(color.New(color.FgYellow, color.Bold)))
	assert.True(t, scoreColor(10).Equals(color.New(color.FgRed, color.Bold)))
}

func TestExperienceLabel(t *testing.T) {
	r := resume.Data{Experience: []resume.Experience{{ID: "e1", Role: "SRE", Company: "Acme"}}}
	assert.Equal(t, "SRE at Acme", experienceLabel(r, "e1"))
	assert.Equal(t, "e9", experienceLabel(r, "e9"))
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, "  - a\n  - b", indentLines("- a\n- b\n", "  "))
}

func TestPause(t *testing.T) {
	require.NoError(t, pause(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.ErrorIs(t, pause(ctx, time.Hour), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	require.NoError(t, pause(context.Background(), 2*time.Millisecond))
}
