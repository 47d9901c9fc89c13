package keyword

import (
	"regexp"
	"strconv"
	"strings"
)

// Certifications are matched case-sensitively; each name counts once.
var Certifications = []string{"PMP", "AWS Certified", "Scrum Master", "Six Sigma"}

// CommunicationVerbs are matched as whole words, case-insensitively.
var CommunicationVerbs = []string{"lead", "managed", "communicated", "presented", "negotiated"}

const (
	certificationPoints = 10
	communicationPoints = 5
	communicationCap    = 100
)

var (
	yearsRe         = regexp.MustCompile(`(?i)([0-9]+)\s+years?\b`)
	communicationRe = regexp.MustCompile(`(?i)\b(` + strings.Join(CommunicationVerbs, "|") + `)\b`)
)

// computeExperienceScore returns the first integer that directly precedes
// "year" or "years", or 0.
func computeExperienceScore(text string) float64 {
	match := yearsRe.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	years, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return years
}

// computeKeywordMatchScore is the TF-IDF cosine similarity scaled to 0-100.
func computeKeywordMatchScore(text, jobDescription string) float64 {
	return TFIDFSimilarity(text, jobDescription) * 100
}

// computeCertificationsScore awards points per certification name present.
func computeCertificationsScore(text string) float64 {
	count := 0
	for _, cert := range Certifications {
		if strings.Contains(text, cert) {
			count++
		}
	}
	return float64(count * certificationPoints)
}

// computeCommunicationScore awards points per communication verb occurrence, capped.
func computeCommunicationScore(text string) float64 {
	matches := communicationRe.FindAllStringIndex(text, -1)
	return float64(min(len(matches)*communicationPoints, communicationCap))
}

// computeProjectRelevanceScore is half of the keyword match score. It re-runs the
// similarity rather than reusing it, so the two components stay linearly dependent.
func computeProjectRelevanceScore(text, jobDescription string) float64 {
	return computeKeywordMatchScore(text, jobDescription) * 0.5
}
