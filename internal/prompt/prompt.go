// Package prompt builds provider requests from in-memory application state.
// Every builder here is a pure function: no I/O, no validation beyond what
// shapes the text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/arin/career-copilot/internal/ai"
	"github.com/arin/career-copilot/internal/resume"
)

const (
	// MaxHistory is how many earlier exchanges an interview prompt carries.
	MaxHistory = 3

	defaultTemperature = 0.7
)

// Builder holds the model settings shared by every request.
type Builder struct {
	Model       string
	Temperature float32
}

// NewBuilder returns a Builder for model. An empty model selects
// ai.DefaultModel; a zero temperature selects 0.7.
func NewBuilder(model string, temperature float32) *Builder {
	if model == "" {
		model = ai.DefaultModel
	}
	if temperature == 0 {
		temperature = defaultTemperature
	}
	return &Builder{Model: model, Temperature: temperature}
}

// Exchange is one earlier question and the answer that was suggested for it.
type Exchange struct {
	Question string
	Answer   string
}

// InterviewInput is everything an interview answer prompt depends on.
type InterviewInput struct {
	Resume         resume.Data
	JobRole        string
	JobDescription string
	// History is newest first; only the first MaxHistory entries are used.
	History  []Exchange
	Question string
}

// InterviewAnswer builds the streaming request for one interview question.
// The model is told to answer in three tagged blocks.
func (b *Builder) InterviewAnswer(in InterviewInput) ai.Request {
	target := in.JobDescription
	if target == "" {
		target = in.JobRole
	}
	if target == "" {
		target = "new role"
	}

	history := in.History
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	lines := make([]string, 0, len(history))
	for _, h := range history {
		lines = append(lines, fmt.Sprintf("Q: %s\nA: %s", h.Question, h.Answer))
	}

	return b.request(fmt.Sprintf(interviewTemplate,
		target, in.Resume.Text(), strings.Join(lines, "\n\n"), strings.TrimSpace(in.Question)),
		b.Temperature)
}

func (b *Builder) request(contents string, temperature float32) ai.Request {
	return ai.Request{
		Model:    b.Model,
		Contents: contents,
		Config:   ai.GenerationConfig{Temperature: temperature},
	}
}

const interviewTemplate = `You are a live interview coach. The user is in an interview for a %s. Based on their resume and the interview question, provide a structured, high-quality answer.

<Resume>
%s
</Resume>

<InterviewHistory>
%s
</InterviewHistory>

<LatestQuestion>
%s
</LatestQuestion>

Instructions:
1.  Generate a concise, well-structured answer to the question.
2.  Use the STAR (Situation, Task, Action, Result) method where appropriate.
3.  Tailor the answer to the user's experience shown in their resume.
4.  Provide 3-4 key talking points as a bulleted list.
5.  Offer a "Pro Tip" for delivering the answer effectively.
6.  Format your response EXACTLY as follows, with these specific tags:
<ANSWER>
[Your suggested answer here]
</ANSWER>
<KEYPOINTS>
- [Key Point 1]
- [Key Point 2]
- [Key Point 3]
</KEYPOINTS>
<PROTIP>
[Your pro tip here]
</PROTIP>`
