package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/arin/career-copilot/internal/ai"
	"github.com/arin/career-copilot/internal/resume"
)

// CustomizeResume asks for targeted edits to the summary, the most recent
// experience entry and the skills, as JSON.
func (b *Builder) CustomizeResume(r resume.Data, jobDescription string) ai.Request {
	return b.jsonRequest(fmt.Sprintf(customizeTemplate, resumeJSON(r), jobDescription))
}

// OptimizeResume asks for before/after scores and a fully rewritten resume,
// as JSON in the same shape as resume.Data.
func (b *Builder) OptimizeResume(r resume.Data, jobDescription string) ai.Request {
	return b.jsonRequest(fmt.Sprintf(optimizeTemplate, r.Text(), jobDescription))
}

// LinkedInProfile asks for LinkedIn section suggestions for targetRole. The
// profile URL is context only; the model cannot open it.
func (b *Builder) LinkedInProfile(r resume.Data, profileURL, targetRole string) ai.Request {
	return b.jsonRequest(fmt.Sprintf(linkedInTemplate, profileURL, r.Text(), targetRole))
}

// FindJobs asks for five plausible listings for title in location.
func (b *Builder) FindJobs(r resume.Data, title, location string) ai.Request {
	return b.jsonRequest(fmt.Sprintf(findJobsTemplate, r.Summary, r.Skills, title, location))
}

// AutoApplyCycle asks for the log of one simulated auto-apply run.
func (b *Builder) AutoApplyCycle(title, location string) ai.Request {
	return b.jsonRequest(fmt.Sprintf(autoApplyTemplate, title, location))
}

func (b *Builder) jsonRequest(contents string) ai.Request {
	req := b.request(contents, 0)
	req.Config.ResponseMIMEType = "application/json"
	return req
}

// resumeJSON renders r as indented JSON so the model can echo experience IDs.
// Text-only resumes fall back to their text.
func resumeJSON(r resume.Data) string {
	if r.Raw != "" {
		return r.Text()
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return r.Text()
	}
	return string(data)
}

const customizeTemplate = `Analyze the provided resume and job description. Suggest specific, targeted modifications to the resume to make it a stronger fit for the job. Only suggest changes for the summary, the most recent experience section, and the skills section.

<Resume>
%s
</Resume>

<JobDescription>
%s
</JobDescription>

Return a JSON object with optional keys: "summary", "experience", "skills".
- "summary": A re-written professional summary.
- "experience": An array containing objects with "id" and "responsibilities" for the ONE experience entry you are updating. The 'id' MUST match an ID from the input resume. 'responsibilities' should be a string with new bullet points.
- "skills": A new comma-separated string of skills.
Your suggestions should be subtle and maintain the candidate's voice.`

const optimizeTemplate = `Analyze the provided resume against the job description. Then, create an optimized version of the resume.

<Resume>
%s
</Resume>

<JobDescription>
%s
</JobDescription>

Return a JSON object with the following structure:
- "beforeScore": An integer score (0-100) of the original resume.
- "afterScore": An integer score (0-100) of the new, optimized resume.
- "highlights": An array of objects, each with "keyword" and "reason" for the changes.
- "optimizedResume": The full, optimized resume with keys "name", "email", "phone", "summary", "skills" (a string), and arrays "experience" (id, role, company, startDate, endDate, responsibilities), "education" (id, institution, degree, date), "projects" (id, name, description, url), "certifications" (id, name, issuer, date) and "links" (id, label, url).`

const linkedInTemplate = `Analyze the user's career profile based on their resume and target role. Provide suggestions to optimize a LinkedIn profile. The LinkedIn URL (%s) is for context but you can't access it. Base your analysis on the provided resume.

Resume:
%s

Target Role: %s

Return a JSON object with the keys "score" (an integer 0-100 for how well the profile targets the role), "headlineSuggestion", "summarySuggestion", "experienceSuggestion", "skillsSuggestion", "educationSuggestion" and "certificationsSuggestion".`

const findJobsTemplate = `Based on the provided resume summary and search criteria, generate a realistic list of 5 job listings.

Resume Highlights:
Summary: %s
Skills: %s

Search Criteria:
Job Title: %s
Location: %s

For each job, provide a "title", "company", "location", a short "description", and a "matchScore" from 70-95. Return as a JSON array.`

const autoApplyTemplate = `Simulate an auto-apply job cycle for a user with the target role %q in %q. Generate a sequence of 5-7 log entries representing the process.

Return a JSON array of log objects. Each object should have "message" (string) and "status" ('Info', 'Success', or 'Failure').`
