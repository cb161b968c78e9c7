package skills

import (
	"math"
	"strings"
)

// Coverage describes how resume skills cover the skills a job asks for.
type Coverage struct {
	Exact   []string
	Partial []string
	Missing []string
	// Percentages rounded to two decimals.
	ExactCoverage float64
	TotalCoverage float64
	// MatchScore is the total coverage fraction times 100, truncated.
	MatchScore int
}

// AnalyzeCoverage compares resume skills with job skills. Job skills that are a
// substring of a resume skill (or the reverse) or share a family count as partial.
func AnalyzeCoverage(resumeSkills, jobSkills []string) Coverage {
	resume := lowerSet(resumeSkills)
	job := lowerSet(jobSkills)

	inResume := make(map[string]bool, len(resume))
	for _, s := range resume {
		inResume[s] = true
	}

	var c Coverage
	for _, s := range job {
		if inResume[s] {
			c.Exact = append(c.Exact, s)
		}
	}
	for _, s := range job {
		if inResume[s] {
			continue
		}
		if relatedToAny(s, resume) {
			c.Partial = append(c.Partial, s)
		} else {
			c.Missing = append(c.Missing, s)
		}
	}

	if total := len(job); total > 0 {
		exact := float64(len(c.Exact)) / float64(total)
		all := float64(len(c.Exact)+len(c.Partial)) / float64(total)
		c.ExactCoverage = round2(exact * 100)
		c.TotalCoverage = round2(all * 100)
		c.MatchScore = int(all * 100)
	}
	return c
}

func relatedToAny(skill string, candidates []string) bool {
	for _, r := range candidates {
		if strings.Contains(r, skill) || strings.Contains(skill, r) || Related(skill, r) {
			return true
		}
	}
	return false
}

func lowerSet(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		s := strings.ToLower(it)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
