// Package sections isolates the Experience and Skills spans of a plain-text resume.
//
// Extraction is a string-position heuristic over a closed header vocabulary. Resumes
// whose headers fall outside Headers can be mis-segmented; that is a known accuracy
// bound of the approach.
package sections

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyResume is returned when a resume has no text to extract from.
var ErrEmptyResume = errors.New("resume text is empty")

var (
	skillsHeaderRe = regexp.MustCompile(`(?i)Skills\s*[:\n]`)
	skillSplitRe   = regexp.MustCompile(`[:,-]`)
)

const experienceKeyword = "experience"

// Sections holds the spans extracted from one resume.
type Sections struct {
	Experience string
	Skills     []string
}

// SkillsText joins the extracted skills with spaces.
func (s Sections) SkillsText() string {
	return strings.Join(s.Skills, " ")
}

// Extractor extracts both sections of a resume.
type Extractor struct{}

// Extract returns the experience span and the skills list of text.
func (Extractor) Extract(text string) (Sections, error) {
	if strings.TrimSpace(text) == "" {
		return Sections{}, ErrEmptyResume
	}
	return Sections{
		Experience: ExtractExperience(text),
		Skills:     ExtractSkills(text),
	}, nil
}

// ExtractExperience returns the text from the first case-insensitive "experience"
// up to the earliest following section header, or to the end of text. It returns
// an empty string when "experience" does not occur.
func ExtractExperience(text string) string {
	lower := asciiLower(text)
	start := strings.Index(lower, experienceKeyword)
	if start == -1 {
		return ""
	}

	end := len(text)
	for _, header := range Headers {
		idx := strings.Index(lower[start+1:], asciiLower(header))
		if idx == -1 {
			continue
		}
		end = min(end, start+1+idx)
	}

	return strings.TrimSpace(text[start:end])
}

// ExtractSkills returns the deduplicated skills listed after the first "Skills:"
// (or "Skills" followed by a newline) header, up to the next blank line.
func ExtractSkills(text string) []string {
	loc := skillsHeaderRe.FindStringIndex(text)
	if loc == nil {
		return []string{}
	}

	span := text[loc[1]:]
	if end := strings.Index(span, "\n\n"); end != -1 {
		span = span[:end]
	}
	span = strings.TrimSpace(span)

	seen := make(map[string]bool)
	skills := make([]string, 0)
	for _, line := range strings.Split(span, "\n") {
		for _, fragment := range skillSplitRe.Split(line, -1) {
			skill := strings.TrimSpace(fragment)
			if skill == "" || seen[skill] {
				continue
			}
			seen[skill] = true
			skills = append(skills, skill)
		}
	}
	return skills
}

// asciiLower lowercases ASCII letters only so byte offsets match the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
