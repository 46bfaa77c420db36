// Package assist holds the one-shot career tools: resume bullets, cover
// letters, job matching and tailoring, job search, LinkedIn review, the
// auto-apply simulator, networking outreach and the help chatbot. Each call
// builds a prompt, sends it through the configured transport and shapes the
// reply.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/arin/career-copilot/internal/ai"
	"github.com/arin/career-copilot/internal/prompt"
	"github.com/arin/career-copilot/internal/resume"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("no response from AI")

// Client runs career prompts against a transport.
type Client struct {
	transport ai.Transport
	prompts   *prompt.Builder
}

func NewClient(t ai.Transport, prompts *prompt.Builder) *Client {
	return &Client{transport: t, prompts: prompts}
}

// JobAnalysis is the structured result of a resume/job description match.
type JobAnalysis struct {
	MatchScore  int      `json:"matchScore"`
	Strengths   string   `json:"strengths"`
	Weaknesses  string   `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

func (c *Client) generate(ctx context.Context, req ai.Request) (string, error) {
	chunk, err := c.transport.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(chunk.Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// ResumeBullets returns 3-5 bullet points for role, one per line.
func (c *Client) ResumeBullets(ctx context.Context, role, notes string) (string, error) {
	if strings.TrimSpace(role) == "" {
		return "", fmt.Errorf("a job role is required")
	}
	return c.generate(ctx, c.prompts.ResumeBullets(role, notes))
}

// CoverLetter returns a letter for the position described by in.
func (c *Client) CoverLetter(ctx context.Context, r resume.Data, in prompt.CoverLetterInput) (string, error) {
	if strings.TrimSpace(in.Company) == "" || strings.TrimSpace(in.Role) == "" {
		return "", fmt.Errorf("company and role are required")
	}
	return c.generate(ctx, c.prompts.CoverLetter(r, in))
}

// AnalyzeMatch scores r against jobDescription.
func (c *Client) AnalyzeMatch(ctx context.Context, r resume.Data, jobDescription string) (*JobAnalysis, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("a job description is required")
	}
	raw, err := c.generate(ctx, c.prompts.JobMatch(r, jobDescription))
	if err != nil {
		return nil, err
	}

	var result JobAnalysis
	if err := decodeJSON(raw, &result); err != nil {
		return nil, err
	}
	result.MatchScore = clampScore(result.MatchScore)
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return &result, nil
}

// Outreach returns a short networking message to a contact.
func (c *Client) Outreach(ctx context.Context, r resume.Data, name, role, company string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(company) == "" {
		return "", fmt.Errorf("contact name and company are required")
	}
	return c.generate(ctx, c.prompts.Outreach(r, name, role, company))
}

// ChatReply answers one chatbot message.
func (c *Client) ChatReply(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("message is empty")
	}
	return c.generate(ctx, c.prompts.ChatReply(input))
}

// ChatStream is ChatReply delivered as it is generated.
func (c *Client) ChatStream(ctx context.Context, input string) (<-chan ai.StreamDelta, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("message is empty")
	}
	return c.transport.Stream(ctx, c.prompts.ChatReply(input))
}

// decodeJSON unmarshals a JSON-mode reply into v.
func decodeJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(stripFences(raw)), v); err != nil {
		return fmt.Errorf("failed to parse AI output: %w\nRaw: %s", err, raw)
	}
	return nil
}

func clampScore(n int) int {
	return min(max(n, 0), 100)
}

// stripFences removes a ```json ... ``` wrapper some models add despite
// being asked for bare JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
