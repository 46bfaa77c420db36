// Package resume holds the candidate profile that every prompt is built from.
package resume

import (
	"fmt"
	"strings"
)

type Experience struct {
	ID               string `json:"id" yaml:"id"`
	Role             string `json:"role" yaml:"role"`
	Company          string `json:"company" yaml:"company"`
	StartDate        string `json:"startDate" yaml:"startDate"`
	EndDate          string `json:"endDate" yaml:"endDate"`
	Responsibilities string `json:"responsibilities" yaml:"responsibilities"`
}

type Education struct {
	ID          string `json:"id" yaml:"id"`
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Date        string `json:"date" yaml:"date"`
}

type Project struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

type Certification struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Issuer string `json:"issuer" yaml:"issuer"`
	Date   string `json:"date" yaml:"date"`
}

type Link struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Data is a candidate's resume. Raw is set instead of the structured fields
// when the resume came from a document that was only text-extracted.
type Data struct {
	Name           string          `json:"name" yaml:"name"`
	Email          string          `json:"email" yaml:"email"`
	Phone          string          `json:"phone" yaml:"phone"`
	Summary        string          `json:"summary" yaml:"summary"`
	Experience     []Experience    `json:"experience" yaml:"experience"`
	Education      []Education     `json:"education" yaml:"education"`
	Projects       []Project       `json:"projects" yaml:"projects"`
	Certifications []Certification `json:"certifications" yaml:"certifications"`
	Links          []Link          `json:"links" yaml:"links"`
	Skills         string          `json:"skills" yaml:"skills"`

	Raw string `json:"-" yaml:"-"`
}

// CurrentRole returns the most recent role, or "Professional".
func (d Data) CurrentRole() string {
	if len(d.Experience) > 0 && d.Experience[0].Role != "" {
		return d.Experience[0].Role
	}
	return "Professional"
}

// Text renders the resume in the plain layout used inside prompts.
func (d Data) Text() string {
	if d.Raw != "" {
		return strings.TrimSpace(d.Raw)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", d.Name)
	fmt.Fprintf(&b, "Contact: %s, %s\n", d.Email, d.Phone)

	links := make([]string, 0, len(d.Links))
	for _, l := range d.Links {
		links = append(links, l.Label+": "+l.URL)
	}
	fmt.Fprintf(&b, "Links: %s\n\n", strings.Join(links, " | "))

	fmt.Fprintf(&b, "Professional Summary:\n%s\n\n", d.Summary)
	fmt.Fprintf(&b, "Skills:\n%s\n\n", d.Skills)

	b.WriteString("Work Experience:\n")
	for _, e := range d.Experience {
		fmt.Fprintf(&b, "- Role: %s at %s (%s - %s)\n  Responsibilities:\n", e.Role, e.Company, e.StartDate, e.EndDate)
		for _, r := range strings.Split(e.Responsibilities, "\n") {
			if r = strings.TrimSpace(r); r != "" {
				fmt.Fprintf(&b, "    %s\n", r)
			}
		}
	}

	b.WriteString("\nEducation:\n")
	for _, e := range d.Education {
		fmt.Fprintf(&b, "- %s from %s (%s)\n", e.Degree, e.Institution, e.Date)
	}

	b.WriteString("\nProjects:\n")
	for _, p := range d.Projects {
		if p.URL != "" {
			fmt.Fprintf(&b, "- Project: %s (%s)\n", p.Name, p.URL)
		} else {
			fmt.Fprintf(&b, "- Project: %s\n", p.Name)
		}
		fmt.Fprintf(&b, "  Description: %s\n", p.Description)
	}

	b.WriteString("\nCertifications:\n")
	for _, c := range d.Certifications {
		fmt.Fprintf(&b, "- %s from %s (%s)\n", c.Name, c.Issuer, c.Date)
	}

	return strings.TrimSpace(b.String())
}
