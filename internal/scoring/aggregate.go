// Package scoring combines the analysis signals into the final 0-100 ATS score.
package scoring

import (
	"math"

	"github.com/jonathan/resume-ats-checker/internal/types"
)

// Component weights. They sum to 1.
const (
	WeightKeywordMatch      = 0.25
	WeightContentSimilarity = 0.25
	WeightSkillsCoverage    = 0.20
	WeightExperienceQuality = 0.15
	WeightContextAlignment  = 0.10
	WeightSectionStructure  = 0.05
)

// Adjustments applied after weighting.
const (
	ShortResumeChars   = 500
	ShortResumePenalty = 10
	MissingSectionCost = 5
)

// Signals are the inputs to the aggregator.
type Signals struct {
	// KeywordMatchRate and ContentSimilarity are fractions in [0,1].
	KeywordMatchRate  float64
	ContentSimilarity float64
	// SkillsTotalCoverage is a percentage in [0,100].
	SkillsTotalCoverage float64
	ExperienceStrength  int
	MetricCount         int
	ActionVerbCount     int
	// ContextAverage is a fraction in [0,1].
	ContextAverage float64
	Sections       types.SectionFlags
	// ResumeLength is the character count of the raw resume.
	ResumeLength int
}

// Result is the aggregated score.
type Result struct {
	Score int
	// Base is the weighted sum before adjustments, in [0,100].
	Base      float64
	Breakdown types.ScoreBreakdown
}

type component struct {
	weight float64
	score  float64
	out    *types.ComponentScore
}

// Aggregate computes the weighted score, applies bonuses and penalties, clamps
// to [0,100] and truncates to an integer.
func Aggregate(s Signals) Result {
	var res Result
	components := []component{
		{WeightKeywordMatch, s.KeywordMatchRate, &res.Breakdown.KeywordMatch},
		{WeightContentSimilarity, s.ContentSimilarity, &res.Breakdown.ContentSimilarity},
		{WeightSkillsCoverage, s.SkillsTotalCoverage / 100, &res.Breakdown.SkillsCoverage},
		{WeightExperienceQuality, float64(s.ExperienceStrength) / 100, &res.Breakdown.ExperienceQuality},
		{WeightContextAlignment, s.ContextAverage, &res.Breakdown.ContextAlignment},
		{WeightSectionStructure, s.Sections.Completeness(), &res.Breakdown.SectionStructure},
	}

	var sum float64
	for _, c := range components {
		norm := clamp(c.score, 0, 1)
		sum += norm * c.weight
		*c.out = types.ComponentScore{
			WeightPercent: int(math.Round(c.weight * 100)),
			Score:         round2(norm * 100),
			Contribution:  round2(norm * c.weight * 100),
		}
	}
	res.Base = sum * 100

	score := res.Base + Adjustment(s)
	res.Score = int(clamp(score, 0, 100))
	return res
}

// Adjustment returns the flat bonuses and penalties for s.
func Adjustment(s Signals) float64 {
	var adj float64
	switch {
	case s.MetricCount >= 5:
		adj += 3
	case s.MetricCount >= 3:
		adj += 2
	}
	if s.ActionVerbCount >= 15 {
		adj += 2
	}
	if s.ResumeLength < ShortResumeChars {
		adj -= ShortResumePenalty
	}
	if !s.Sections.Experience {
		adj -= MissingSectionCost
	}
	if !s.Sections.Skills {
		adj -= MissingSectionCost
	}
	return adj
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
