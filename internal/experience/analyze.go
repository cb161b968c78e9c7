// Package experience scores the quality of a resume's experience narrative from
// action-verb usage and quantifiable metrics.
package experience

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-ats-checker/internal/types"
)

// Verb categories.
const (
	Leadership    = "leadership"
	Achievement   = "achievement"
	Improvement   = "improvement"
	Creation      = "creation"
	Collaboration = "collaboration"
)

type verbCategory struct {
	name     string
	patterns []*regexp.Regexp
}

func verbs(name string, words ...string) verbCategory {
	c := verbCategory{name: name}
	for _, w := range words {
		c.patterns = append(c.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return c
}

// "coordinated" is both a leadership and a collaboration verb and counts for each.
var actionVerbs = []verbCategory{
	verbs(Leadership, "led", "managed", "directed", "supervised", "coordinated", "headed", "spearheaded", "orchestrated"),
	verbs(Achievement, "achieved", "accomplished", "delivered", "exceeded", "surpassed", "completed", "attained"),
	verbs(Improvement, "improved", "enhanced", "optimized", "increased", "reduced", "streamlined", "accelerated", "maximized"),
	verbs(Creation, "created", "developed", "designed", "built", "implemented", "established", "launched", "pioneered"),
	verbs(Collaboration, "collaborated", "partnered", "coordinated", "facilitated", "contributed", "supported"),
}

var metricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+%`),
	regexp.MustCompile(`(?i)\$\d+[kmb]?`),
	regexp.MustCompile(`(?i)\d+[kmb]\+?`),
	regexp.MustCompile(`(?i)\d+x`),
	regexp.MustCompile(`(?i)\d+\s*(years?|months?|weeks?)`),
	regexp.MustCompile(`(?i)\d+\s*(users?|customers?|clients?|people|employees|team members?)`),
}

const (
	pointsPerVerb    = 5
	pointsPerMetric  = 10
	leadershipBonus  = 20
	achievementBonus = 15
	maxStrength      = 100
)

// Analyze counts action verbs and metrics in resume text and derives a 0-100 strength score.
func Analyze(resume string) types.ExperienceProfile {
	lower := strings.ToLower(resume)

	counts := make(map[string]int, len(actionVerbs))
	total := 0
	for _, c := range actionVerbs {
		for _, p := range c.patterns {
			n := len(p.FindAllStringIndex(lower, -1))
			counts[c.name] += n
			total += n
		}
	}

	metrics := CountMetrics(resume)

	score := total*pointsPerVerb + metrics*pointsPerMetric
	if counts[Leadership] > 0 {
		score += leadershipBonus
	}
	if counts[Achievement] > 0 {
		score += achievementBonus
	}
	if score > maxStrength {
		score = maxStrength
	}

	return types.ExperienceProfile{
		ActionVerbCount:         total,
		MetricCount:             metrics,
		LeadershipIndicators:    counts[Leadership],
		AchievementIndicators:   counts[Achievement],
		ImprovementIndicators:   counts[Improvement],
		CreationIndicators:      counts[Creation],
		CollaborationIndicators: counts[Collaboration],
		StrengthScore:           score,
		HasQuantifiableResults:  metrics > 0,
	}
}

// CountMetrics counts quantifiable-metric occurrences. Each pattern is counted
// independently, so "$5k" counts as both money and a scaled number.
func CountMetrics(text string) int {
	n := 0
	for _, p := range metricPatterns {
		n += len(p.FindAllStringIndex(text, -1))
	}
	return n
}
