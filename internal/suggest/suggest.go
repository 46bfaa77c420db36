// Package suggest turns the model's tagged free text into a structured
// interview suggestion, both while it streams and once it is complete.
package suggest

import (
	"regexp"
	"strings"
)

const (
	// FallbackAnswer replaces the answer when the final text has no closed
	// <ANSWER> block.
	FallbackAnswer = "Sorry, I could not structure the answer correctly."
	// ErrorAnswer replaces the answer when the stream fails.
	ErrorAnswer = "Error: Could not generate answer."
)

const (
	tagAnswer    = "ANSWER"
	tagKeyPoints = "KEYPOINTS"
	tagProTip    = "PROTIP"
)

// bullet matches a line-leading dash marker.
var bullet = regexp.MustCompile(`(?m)^[ \t]*-[ \t]+`)

// SuggestedAnswer is the structured form of one model reply.
type SuggestedAnswer struct {
	Answer    string   `json:"answer"`
	KeyPoints []string `json:"keyPoints"`
	ProTip    string   `json:"proTip"`
}

// Empty returns a suggestion with no content and a non-nil key point list.
func Empty() SuggestedAnswer {
	return SuggestedAnswer{KeyPoints: []string{}}
}

// Clone returns a copy that shares no memory with s.
func (s SuggestedAnswer) Clone() SuggestedAnswer {
	c := s
	c.KeyPoints = append([]string{}, s.KeyPoints...)
	return c
}

// Parse extracts all three blocks from complete text. It is a pure function
// of text: a missing answer block yields FallbackAnswer, missing key points an
// empty list, a missing pro tip an empty string.
func Parse(text string) SuggestedAnswer {
	out := Empty()

	if answer, ok := block(text, tagAnswer); ok {
		out.Answer = answer
	} else {
		out.Answer = FallbackAnswer
	}
	if points, ok := block(text, tagKeyPoints); ok {
		out.KeyPoints = splitBullets(points)
	}
	if tip, ok := block(text, tagProTip); ok {
		out.ProTip = tip
	}
	return out
}

// PartialAnswer returns the best current answer from text that may still be
// growing: the closed <ANSWER> block if there is one, otherwise whatever
// follows an open <ANSWER> tag. Before the tag appears it returns "".
func PartialAnswer(text string) string {
	if answer, ok := block(text, tagAnswer); ok {
		return answer
	}
	open := "<" + tagAnswer + ">"
	i := strings.Index(text, open)
	if i < 0 {
		return ""
	}
	rest := text[i+len(open):]
	// Hide a closing tag that has only partly arrived, e.g. "</ANS".
	closing := "</" + tagAnswer + ">"
	for k := len(closing) - 1; k > 0; k-- {
		if strings.HasSuffix(rest, closing[:k]) {
			rest = rest[:len(rest)-k]
			break
		}
	}
	return strings.TrimSpace(rest)
}

// block returns the trimmed text of the first closed <tag>...</tag> pair.
func block(text, tag string) (string, bool) {
	open, closing := "<"+tag+">", "</"+tag+">"
	i := strings.Index(text, open)
	if i < 0 {
		return "", false
	}
	start := i + len(open)
	j := strings.Index(text[start:], closing)
	if j < 0 {
		return "", false
	}
	return strings.TrimSpace(text[start : start+j]), true
}

func splitBullets(s string) []string {
	points := []string{}
	for _, p := range bullet.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			points = append(points, p)
		}
	}
	return points
}
