// Package alignment measures whether shared keywords appear in similar
// surrounding-word contexts in the resume and the job description.
package alignment

import (
	"strings"

	"github.com/jonathan/resume-ats-checker/internal/types"
)

const (
	// MaxKeywords bounds how many keywords are analyzed.
	MaxKeywords = 20
	// Window is the number of words kept on each side of an occurrence.
	Window = 5
	// WellContextualized is the score a keyword must exceed to count as well contextualized.
	WellContextualized = 0.6
	// resumeOnlyScore is used when a keyword appears in the resume but not the job text.
	resumeOnlyScore = 0.5
)

// Analyze scores the context of up to MaxKeywords keywords.
func Analyze(resume, job string, keywords []string) types.ContextProfile {
	resumeWords := strings.Fields(strings.ToLower(resume))
	jobWords := strings.Fields(strings.ToLower(job))

	if len(keywords) > MaxKeywords {
		keywords = keywords[:MaxKeywords]
	}

	var profile types.ContextProfile
	seen := make(map[string]bool, len(keywords))
	var sum float64
	for _, kw := range keywords {
		if seen[kw] {
			continue
		}
		seen[kw] = true

		rc := Contexts(resumeWords, kw)
		jc := Contexts(jobWords, kw)

		var score float64
		switch {
		case len(rc) > 0 && len(jc) > 0:
			score = Jaccard(rc, jc)
		case len(rc) > 0:
			score = resumeOnlyScore
		}

		profile.Scores = append(profile.Scores, types.KeywordContext{Keyword: kw, Score: score})
		sum += score
		if score > WellContextualized {
			profile.WellContextualizedCount++
		}
	}

	if n := len(profile.Scores); n > 0 {
		profile.AverageContextMatch = sum / float64(n)
	}
	return profile
}

// Contexts returns the window of words around every word that contains keyword.
// A multi-word keyword never matches a single word.
func Contexts(words []string, keyword string) [][]string {
	var out [][]string
	for i, w := range words {
		if !strings.Contains(w, keyword) {
			continue
		}
		start := max(0, i-Window)
		end := min(len(words), i+Window+1)
		out = append(out, words[start:end])
	}
	return out
}

// Jaccard returns the Jaccard similarity of the word sets of two context lists.
func Jaccard(a, b [][]string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func wordSet(contexts [][]string) map[string]bool {
	set := make(map[string]bool)
	for _, c := range contexts {
		for _, w := range c {
			set[w] = true
		}
	}
	return set
}
