package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/arin/career-copilot/internal/ai"
	"github.com/arin/career-copilot/internal/prompt"
	"github.com/arin/career-copilot/internal/resume"
)

// --- Mock transport ---

// mockTransport is a test double that returns canned responses.
type mockTransport struct {
	response string
	err      error
	// Track calls for verification.
	calls   int
	lastReq ai.Request
}

func (m *mockTransport) Generate(_ context.Context, req ai.Request) (ai.Chunk, error) {
	m.calls++
	m.lastReq = req
	return ai.Chunk{Text: m.response}, m.err
}

func (m *mockTransport) Stream(_ context.Context, req ai.Request) (<-chan ai.StreamDelta, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	ch := make(chan ai.StreamDelta, 1)
	ch <- ai.StreamDelta{Text: m.response}
	close(ch)
	return ch, nil
}

func newTestClient(m *mockTransport) *Client {
	return NewClient(m, prompt.NewBuilder("", 0))
}

var testResume = resume.Data{
	Name:       "Ada",
	Experience: []resume.Experience{{Role: "Backend Engineer", Company: "Acme"}},
}

// --- AnalyzeMatch tests ---

func TestAnalyzeMatch(t *testing.T) {
	mock := &mockTransport{
		response: `{"matchScore": 82, "strengths": "Go", "weaknesses": "No k8s", "suggestions": ["Add k8s", "Add metrics"]}`,
	}
	client := newTestClient(mock)

	result, err := client.AnalyzeMatch(context.Background(), testResume, "We need Go and k8s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MatchScore != 82 {
		t.Errorf("expected score 82, got %d", result.MatchScore)
	}
	if len(result.Suggestions) != 2 {
		t.Errorf("expected 2 suggestions, got %d", len(result.Suggestions))
	}
	if mock.lastReq.Config.ResponseMIMEType != "application/json" {
		t.Error("AnalyzeMatch should request JSON output")
	}
}

func TestAnalyzeMatch_StripsFences(t *testing.T) {
	mock := &mockTransport{response: "```json\n{\"matchScore\": 40, \"strengths\": \"s\", \"weaknesses\": \"w\"}\n```"}
	client := newTestClient(mock)

	result, err := client.AnalyzeMatch(context.Background(), testResume, "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MatchScore != 40 {
		t.Errorf("expected score 40, got %d", result.MatchScore)
	}
	if result.Suggestions == nil {
		t.Error("suggestions should never be nil")
	}
}

func TestAnalyzeMatch_ClampsScore(t *testing.T) {
	for raw, want := range map[string]int{"140": 100, "-5": 0, "0": 0} {
		mock := &mockTransport{response: fmt.Sprintf(`{"matchScore": %s}`, raw)}
		result, err := newTestClient(mock).AnalyzeMatch(context.Background(), testResume, "jd")
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", raw, err)
		}
		if result.MatchScore != want {
			t.Errorf("score %s: expected %d, got %d", raw, want, result.MatchScore)
		}
	}
}

func TestAnalyzeMatch_InvalidJSON_ReturnsError(t *testing.T) {
	mock := &mockTransport{response: "not json at all"}
	_, err := newTestClient(mock).AnalyzeMatch(context.Background(), testResume, "jd")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestAnalyzeMatch_EmptyJobDescription(t *testing.T) {
	mock := &mockTransport{response: "{}"}
	_, err := newTestClient(mock).AnalyzeMatch(context.Background(), testResume, "  ")
	if err == nil {
		t.Fatal("expected error for empty job description")
	}
	if mock.calls != 0 {
		t.Error("transport should not be called for invalid input")
	}
}

// --- Text tool tests ---

func TestResumeBullets(t *testing.T) {
	mock := &mockTransport{response: "  - Built X\n- Shipped Y  "}
	client := newTestClient(mock)

	out, err := client.ResumeBullets(context.Background(), "SRE", "on-call")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "- Built X\n- Shipped Y" {
		t.Errorf("unexpected bullets: %q", out)
	}
	if !strings.Contains(mock.lastReq.Contents, "Role: SRE") {
		t.Error("expected role in prompt")
	}
}

func TestResumeBullets_RequiresRole(t *testing.T) {
	mock := &mockTransport{response: "x"}
	if _, err := newTestClient(mock).ResumeBullets(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for empty role")
	}
}

func TestCoverLetter(t *testing.T) {
	mock := &mockTransport{response: "Dear Bill,"}
	client := newTestClient(mock)

	out, err := client.CoverLetter(context.Background(), testResume, prompt.CoverLetterInput{
		Company: "Initech", Role: "SRE", Tone: prompt.ToneConversational, Manager: "Bill",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Dear Bill," {
		t.Errorf("unexpected letter: %s", out)
	}
	if !strings.Contains(mock.lastReq.Contents, "Tone: Conversational") {
		t.Error("expected tone in prompt")
	}
}

func TestCoverLetter_RequiresCompanyAndRole(t *testing.T) {
	mock := &mockTransport{response: "x"}
	_, err := newTestClient(mock).CoverLetter(context.Background(), testResume, prompt.CoverLetterInput{Company: "Initech"})
	if err == nil {
		t.Fatal("expected error for missing role")
	}
}

func TestOutreach(t *testing.T) {
	mock := &mockTransport{response: "Hi Grace!"}
	out, err := newTestClient(mock).Outreach(context.Background(), testResume, "Grace", "CTO", "Navy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hi Grace!" {
		t.Errorf("unexpected message: %s", out)
	}
}

func TestChatReply_LimitsTokens(t *testing.T) {
	mock := &mockTransport{response: "You got this."}
	client := newTestClient(mock)

	out, err := client.ChatReply(context.Background(), "how do I prepare?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "You got this." {
		t.Errorf("unexpected reply: %s", out)
	}
	if mock.lastReq.Config.MaxOutputTokens != 150 {
		t.Errorf("expected 150 max tokens, got %d", mock.lastReq.Config.MaxOutputTokens)
	}
}

func TestChatStream(t *testing.T) {
	mock := &mockTransport{response: "Keep going!"}
	ch, err := newTestClient(mock).ChatStream(context.Background(), "tired of applying")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := ai.CollectStream(ch)
	if err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	if text != "Keep going!" {
		t.Errorf("unexpected reply: %s", text)
	}
	if !strings.Contains(mock.lastReq.Contents, "tired of applying") {
		t.Error("expected message in prompt")
	}
}

func TestChatStream_EmptyMessage(t *testing.T) {
	mock := &mockTransport{}
	if _, err := newTestClient(mock).ChatStream(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty message")
	}
	if mock.calls != 0 {
		t.Error("transport should not be called for invalid input")
	}
}

func TestEmptyResponse_ReturnsError(t *testing.T) {
	mock := &mockTransport{response: "   "}
	_, err := newTestClient(mock).ChatReply(context.Background(), "hi")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestTransportError_Propagates(t *testing.T) {
	mock := &mockTransport{err: &ai.TransportError{Op: "connect", Err: fmt.Errorf("connection refused")}}
	_, err := newTestClient(mock).ResumeBullets(context.Background(), "SRE", "")
	if err == nil {
		t.Fatal("expected error from transport")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected transport error, got: %v", err)
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		`{"a":1}`:                  `{"a":1}`,
		"```json\n{\"a\":1}\n```":  `{"a":1}`,
		"```\n{\"a\":1}```":        `{"a":1}`,
		"  \n```json\n{}\n```\n  ": `{}`,
		"```json{\"a\":1}```":      `{"a":1}`,
		"```JSON {\"a\":1}\n```":   `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripFences(in); got != want {
			t.Errorf("stripFences(%q) = %q, want %q", in, got, want)
		}
	}
}
