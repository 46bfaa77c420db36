package prompt

import (
	"fmt"
	"strings"

	"github.com/arin/career-copilot/internal/ai"
	"github.com/arin/career-copilot/internal/resume"
)

// Tone is the register of a generated cover letter.
type Tone string

const (
	ToneFormal         Tone = "Formal"
	ToneConversational Tone = "Conversational"
	ToneConfident      Tone = "Confident"
)

// ParseTone matches s case-insensitively and falls back to ToneFormal.
func ParseTone(s string) Tone {
	for _, t := range []Tone{ToneFormal, ToneConversational, ToneConfident} {
		if strings.EqualFold(s, string(t)) {
			return t
		}
	}
	return ToneFormal
}

// CoverLetterInput describes the position a cover letter targets.
type CoverLetterInput struct {
	Company string
	Role    string
	Tone    Tone
	Manager string
}

// ResumeBullets asks for 3-5 action-oriented bullet points for role.
func (b *Builder) ResumeBullets(role, notes string) ai.Request {
	var draft string
	if strings.TrimSpace(notes) != "" {
		draft = "Current Draft / Notes:\n" + notes
	}
	return b.request(fmt.Sprintf(bulletsTemplate, role, draft), 0.7)
}

// CoverLetter asks for a ready-to-send letter in the requested tone.
func (b *Builder) CoverLetter(r resume.Data, in CoverLetterInput) ai.Request {
	var manager string
	if in.Manager != "" {
		manager = "Hiring Manager: " + in.Manager
	}
	return b.request(fmt.Sprintf(coverLetterTemplate, in.Tone, in.Company, in.Role, manager, r.Text()), 0.8)
}

// JobMatch asks for a JSON analysis of r against jobDescription.
func (b *Builder) JobMatch(r resume.Data, jobDescription string) ai.Request {
	return b.jsonRequest(fmt.Sprintf(jobMatchTemplate, r.Text(), jobDescription))
}

// ChatReply asks for a short, encouraging chatbot answer.
func (b *Builder) ChatReply(input string) ai.Request {
	req := b.request(fmt.Sprintf(chatTemplate, input), 0.7)
	req.Config.MaxOutputTokens = 150
	return req
}

// Outreach asks for a brief networking message to a contact.
func (b *Builder) Outreach(r resume.Data, name, role, company string) ai.Request {
	return b.request(fmt.Sprintf(outreachTemplate, r.CurrentRole(), name, role, company), 0.8)
}

const bulletsTemplate = `You are an expert resume writer. Your task is to generate 3-5 concise, action-oriented, and quantifiable bullet points for a resume's work experience section.
Role: %s
%s
Instructions:
- Start each bullet point with a strong action verb.
- Quantify achievements with metrics where possible (e.g., "Increased efficiency by 20%%", "Managed a team of 5", "Reduced costs by $10k").
- Focus on accomplishments, not just duties.
- Format the output as a list of bullet points, each starting with '- '.
- Do not add any introductory or concluding text, only the bullet points.`

const coverLetterTemplate = `Generate a compelling cover letter based on the provided resume and job details.

Tone: %s
Company: %s
Job Role: %s
%s

Resume:
%s

Instructions:
1.  Address the letter to the hiring manager if their name is provided, otherwise use a generic greeting.
2.  Craft a strong opening paragraph that grabs attention and states the desired position.
3.  In the body, highlight 2-3 key experiences or skills from the resume that are most relevant to the role.
4.  Maintain the specified tone throughout the letter.
5.  Conclude with a strong call to action.
6.  Keep the letter concise, around 3-4 paragraphs.
7.  Do not include placeholders like "[Your Name]" or "[Date]". The letter should be ready to use.`

const jobMatchTemplate = `Analyze the following resume against the job description and provide a detailed analysis.

<Resume>
%s
</Resume>

<JobDescription>
%s
</JobDescription>

Provide your response in JSON format. The JSON object should have the following structure:
- "matchScore": An integer between 0 and 100 representing the percentage match.
- "strengths": A paragraph explaining what makes the candidate a strong fit.
- "weaknesses": A paragraph explaining the key areas where the resume is lacking for this specific role.
- "suggestions": An array of 3-5 specific, actionable suggestions for improving the resume to better match the job description.
Return valid JSON only. No extra text.`

const chatTemplate = `You are a friendly and helpful career assistant chatbot. Provide a concise and encouraging response to the user's query. User: %q`

const outreachTemplate = `Generate a concise and professional networking outreach message for LinkedIn. The message should be based on the user's profile and the contact's details.

User's Role: %s
Contact Name: %s
Contact Role: %s
Contact Company: %s

Keep it brief, under 100 words.`
