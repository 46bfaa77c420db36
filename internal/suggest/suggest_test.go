package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `<ANSWER>
In my last role I led the migration to Go.
</ANSWER>
<KEYPOINTS>
- Owned the rollout plan
- Cut p99 latency by 40%
- Mentored two engineers
</KEYPOINTS>
<PROTIP>
Pause after the result so it lands.
</PROTIP>`

func TestParse_WellFormed(t *testing.T) {
	got := Parse(wellFormed)
	assert.Equal(t, "In my last role I led the migration to Go.", got.Answer)
	assert.Equal(t, []string{"Owned the rollout plan", "Cut p99 latency by 40%", "Mentored two engineers"}, got.KeyPoints)
	assert.Equal(t, "Pause after the result so it lands.", got.ProTip)
}

func TestParse_Idempotent(t *testing.T) {
	assert.Equal(t, Parse(wellFormed), Parse(wellFormed))
}

func TestParse_Degradation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want SuggestedAnswer
	}{
		{
			name: "no tags at all",
			text: "Just some free text from the model.",
			want: SuggestedAnswer{Answer: FallbackAnswer, KeyPoints: []string{}},
		},
		{
			name: "answer only",
			text: "<ANSWER>Short.</ANSWER>",
			want: SuggestedAnswer{Answer: "Short.", KeyPoints: []string{}},
		},
		{
			name: "unclosed answer",
			text: "<ANSWER>Never finished",
			want: SuggestedAnswer{Answer: FallbackAnswer, KeyPoints: []string{}},
		},
		{
			name: "key points without answer",
			text: "<KEYPOINTS>\n- one\n</KEYPOINTS><PROTIP>tip</PROTIP>",
			want: SuggestedAnswer{Answer: FallbackAnswer, KeyPoints: []string{"one"}, ProTip: "tip"},
		},
		{
			name: "empty key point block",
			text: "<ANSWER>a</ANSWER><KEYPOINTS>\n\n</KEYPOINTS>",
			want: SuggestedAnswer{Answer: "a", KeyPoints: []string{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text))
		})
	}
}

func TestParse_KeyPointsKeepHyphenatedWords(t *testing.T) {
	got := Parse("<ANSWER>x</ANSWER><KEYPOINTS>\n- Self-starter with cross-team reach\n-   Data-driven\n</KEYPOINTS>")
	assert.Equal(t, []string{"Self-starter with cross-team reach", "Data-driven"}, got.KeyPoints)
}

func TestPartialAnswer(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", ""},
		{"preamble before tags", ""},
		{"<ANSWER>Hel", "Hel"},
		{"<ANSWER>\n  Hello wor", "Hello wor"},
		{"<ANSWER>Hello</ANS", "Hello"},
		{"<ANSWER>Hello<", "Hello"},
		{"<ANSWER>Hello</ANSWER><KEYPOI", "Hello"},
		{"<ANSWER> a < b </ANSWER>", "a < b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PartialAnswer(tt.text), "PartialAnswer(%q)", tt.text)
	}
}

func TestExtractor_ChunkOrder(t *testing.T) {
	e := NewExtractor()
	e.Feed("<ANSWER>Hel")
	e.Feed("lo</ANSWER>")
	assert.Equal(t, "Hello", e.Finish().Answer)

	reversed := NewExtractor()
	reversed.Feed("lo</ANSWER>")
	reversed.Feed("<ANSWER>Hel")
	assert.NotEqual(t, "Hello", reversed.Finish().Answer)
}

func TestExtractor_PartialVisibility(t *testing.T) {
	e := NewExtractor()
	got := e.Feed("<ANSWER>Hel")

	assert.Equal(t, "Hel", got.Answer)
	assert.Empty(t, got.KeyPoints)
	assert.Empty(t, got.ProTip)
	assert.Equal(t, Accumulating, e.State())
}

func TestExtractor_KeyPointsHiddenUntilFinish(t *testing.T) {
	e := NewExtractor()
	got := e.Feed(wellFormed)
	assert.Equal(t, "In my last role I led the migration to Go.", got.Answer)
	assert.Empty(t, got.KeyPoints)
	assert.Empty(t, got.ProTip)

	final := e.Finish()
	assert.Len(t, final.KeyPoints, 3)
	assert.Equal(t, Complete, e.State())
}

func TestExtractor_Fail(t *testing.T) {
	e := NewExtractor()
	e.Feed("<ANSWER>Half an ans")
	got := e.Fail()

	assert.Equal(t, ErrorAnswer, got.Answer)
	assert.Empty(t, got.KeyPoints)
	assert.Empty(t, got.ProTip)
	assert.Equal(t, Failed, e.State())
}

func TestExtractor_TerminalStateIgnoresInput(t *testing.T) {
	e := NewExtractor()
	e.Feed("<ANSWER>done</ANSWER>")
	final := e.Finish()

	assert.Equal(t, final, e.Feed("<ANSWER>more</ANSWER>"))
	assert.Equal(t, final, e.Fail())
	assert.Equal(t, Complete, e.State())
	assert.Equal(t, "<ANSWER>done</ANSWER>", e.Text())
}

func TestExtractor_EmptyStreamCompletesWithFallback(t *testing.T) {
	e := NewExtractor()
	got := e.Finish()
	require.Equal(t, Complete, e.State())
	assert.Equal(t, FallbackAnswer, got.Answer)
}

func TestSuggestedAnswer_CloneIsIndependent(t *testing.T) {
	s := SuggestedAnswer{KeyPoints: []string{"a"}}
	c := s.Clone()
	c.KeyPoints[0] = "b"
	assert.Equal(t, "a", s.KeyPoints[0])
}
