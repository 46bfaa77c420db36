package assist

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/arin/career-copilot/internal/resume"
)

// ExperienceUpdate replaces the responsibilities of one experience entry.
type ExperienceUpdate struct {
	ID               string `json:"id"`
	Responsibilities string `json:"responsibilities"`
}

// Customization is a set of targeted resume edits for one job. Empty fields
// mean no change.
type Customization struct {
	Summary    string             `json:"summary,omitempty"`
	Experience []ExperienceUpdate `json:"experience,omitempty"`
	Skills     string             `json:"skills,omitempty"`
}

// Empty reports whether the customization changes nothing.
func (c Customization) Empty() bool {
	return c.Summary == "" && c.Skills == "" && len(c.Experience) == 0
}

// Apply returns a copy of r with the edits applied.
func (c Customization) Apply(r resume.Data) resume.Data {
	if c.Summary != "" {
		r.Summary = c.Summary
	}
	if c.Skills != "" {
		r.Skills = c.Skills
	}
	r.Experience = slices.Clone(r.Experience)
	for _, u := range c.Experience {
		for i := range r.Experience {
			if r.Experience[i].ID == u.ID {
				r.Experience[i].Responsibilities = u.Responsibilities
			}
		}
	}
	return r
}

// Highlight explains one change made by an optimization.
type Highlight struct {
	Keyword string `json:"keyword"`
	Reason  string `json:"reason"`
}

// Optimization is a rewritten resume with its scores before and after.
type Optimization struct {
	BeforeScore     int         `json:"beforeScore"`
	AfterScore      int         `json:"afterScore"`
	Highlights      []Highlight `json:"highlights"`
	OptimizedResume resume.Data `json:"optimizedResume"`
}

// LinkedInAnalysis holds per-section LinkedIn profile suggestions.
type LinkedInAnalysis struct {
	Score                    int    `json:"score"`
	HeadlineSuggestion       string `json:"headlineSuggestion"`
	SummarySuggestion        string `json:"summarySuggestion"`
	ExperienceSuggestion     string `json:"experienceSuggestion"`
	SkillsSuggestion         string `json:"skillsSuggestion"`
	EducationSuggestion      string `json:"educationSuggestion"`
	CertificationsSuggestion string `json:"certificationsSuggestion"`
}

// JobListing is one generated job search result.
type JobListing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	MatchScore  int    `json:"matchScore"`
}

// ApplyStatus is the outcome of one auto-apply log entry.
type ApplyStatus string

const (
	ApplyInfo    ApplyStatus = "Info"
	ApplySuccess ApplyStatus = "Success"
	ApplyFailure ApplyStatus = "Failure"
)

// ParseApplyStatus matches s case-insensitively and falls back to ApplyInfo.
func ParseApplyStatus(s string) ApplyStatus {
	for _, st := range []ApplyStatus{ApplySuccess, ApplyFailure} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st
		}
	}
	return ApplyInfo
}

// ApplyLogEntry is one step of a simulated auto-apply cycle.
type ApplyLogEntry struct {
	Message string      `json:"message"`
	Status  ApplyStatus `json:"status"`
}

// ApplyStats tallies auto-apply outcomes across cycles.
type ApplyStats struct {
	Sent    int
	Success int
	Failed  int
}

// Record counts e. Info entries are progress only.
func (s *ApplyStats) Record(e ApplyLogEntry) {
	switch e.Status {
	case ApplySuccess:
		s.Sent++
		s.Success++
	case ApplyFailure:
		s.Sent++
		s.Failed++
	}
}

// CustomizeResume suggests edits that fit r to jobDescription. Experience
// updates naming an entry r does not have are dropped.
func (c *Client) CustomizeResume(ctx context.Context, r resume.Data, jobDescription string) (*Customization, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("a job description is required")
	}
	raw, err := c.generate(ctx, c.prompts.CustomizeResume(r, jobDescription))
	if err != nil {
		return nil, err
	}

	var result Customization
	if err := decodeJSON(raw, &result); err != nil {
		return nil, err
	}
	result.Experience = slices.DeleteFunc(result.Experience, func(u ExperienceUpdate) bool {
		return !slices.ContainsFunc(r.Experience, func(e resume.Experience) bool { return e.ID != "" && e.ID == u.ID })
	})
	return &result, nil
}

// OptimizeResume rewrites r for jobDescription and scores both versions.
func (c *Client) OptimizeResume(ctx context.Context, r resume.Data, jobDescription string) (*Optimization, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("a job description is required")
	}
	raw, err := c.generate(ctx, c.prompts.OptimizeResume(r, jobDescription))
	if err != nil {
		return nil, err
	}

	var result Optimization
	if err := decodeJSON(raw, &result); err != nil {
		return nil, err
	}
	opt := result.OptimizedResume
	if opt.Name == "" && opt.Summary == "" && len(opt.Experience) == 0 {
		return nil, fmt.Errorf("AI returned no optimized resume")
	}
	result.BeforeScore = clampScore(result.BeforeScore)
	result.AfterScore = clampScore(result.AfterScore)
	if result.Highlights == nil {
		result.Highlights = []Highlight{}
	}
	return &result, nil
}

// LinkedInProfile reviews a LinkedIn profile for targetRole, based on r.
func (c *Client) LinkedInProfile(ctx context.Context, r resume.Data, profileURL, targetRole string) (*LinkedInAnalysis, error) {
	if strings.TrimSpace(targetRole) == "" {
		return nil, fmt.Errorf("a target role is required")
	}
	raw, err := c.generate(ctx, c.prompts.LinkedInProfile(r, profileURL, targetRole))
	if err != nil {
		return nil, err
	}

	var result LinkedInAnalysis
	if err := decodeJSON(raw, &result); err != nil {
		return nil, err
	}
	result.Score = clampScore(result.Score)
	return &result, nil
}

// FindJobs returns generated listings for title in location, best match
// first. Every listing gets an ID.
func (c *Client) FindJobs(ctx context.Context, r resume.Data, title, location string) ([]JobListing, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("a job title is required")
	}
	if strings.TrimSpace(location) == "" {
		location = "Remote"
	}
	raw, err := c.generate(ctx, c.prompts.FindJobs(r, title, location))
	if err != nil {
		return nil, err
	}

	var jobs []JobListing
	if err := decodeJSON(raw, &jobs); err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].ID = "job-" + uuid.NewString()
		jobs[i].MatchScore = clampScore(jobs[i].MatchScore)
	}
	slices.SortStableFunc(jobs, func(a, b JobListing) int { return cmp.Compare(b.MatchScore, a.MatchScore) })
	if jobs == nil {
		jobs = []JobListing{}
	}
	return jobs, nil
}

// AutoApplyCycle simulates one auto-apply run for title in location.
// Unknown statuses become ApplyInfo and empty messages are dropped.
func (c *Client) AutoApplyCycle(ctx context.Context, title, location string) ([]ApplyLogEntry, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("a job title is required")
	}
	if strings.TrimSpace(location) == "" {
		location = "Remote"
	}
	raw, err := c.generate(ctx, c.prompts.AutoApplyCycle(title, location))
	if err != nil {
		return nil, err
	}

	var entries []struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}
	if err := decodeJSON(raw, &entries); err != nil {
		return nil, err
	}
	out := make([]ApplyLogEntry, 0, len(entries))
	for _, e := range entries {
		if msg := strings.TrimSpace(e.Message); msg != "" {
			out = append(out, ApplyLogEntry{Message: msg, Status: ParseApplyStatus(e.Status)})
		}
	}
	return out, nil
}
