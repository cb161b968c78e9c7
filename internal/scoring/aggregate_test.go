package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-ats-checker/internal/types"
)

var allSections = types.SectionFlags{Skills: true, Experience: true, Education: true, Achievements: true, Projects: true}

func TestAggregate_WeightedSum(t *testing.T) {
	res := Aggregate(Signals{
		KeywordMatchRate:    0.5,
		ContentSimilarity:   0.4,
		SkillsTotalCoverage: 60,
		ExperienceStrength:  80,
		ContextAverage:      0.3,
		Sections:            types.SectionFlags{Skills: true, Experience: true},
		ResumeLength:        1200,
	})

	// 12.5 + 10 + 12 + 12 + 3 + 2
	assert.InDelta(t, 51.5, res.Base, 1e-9)
	assert.Equal(t, 51, res.Score)

	assert.Equal(t, types.ComponentScore{WeightPercent: 25, Score: 50, Contribution: 12.5}, res.Breakdown.KeywordMatch)
	assert.Equal(t, types.ComponentScore{WeightPercent: 25, Score: 40, Contribution: 10}, res.Breakdown.ContentSimilarity)
	assert.Equal(t, types.ComponentScore{WeightPercent: 20, Score: 60, Contribution: 12}, res.Breakdown.SkillsCoverage)
	assert.Equal(t, types.ComponentScore{WeightPercent: 15, Score: 80, Contribution: 12}, res.Breakdown.ExperienceQuality)
	assert.Equal(t, types.ComponentScore{WeightPercent: 10, Score: 30, Contribution: 3}, res.Breakdown.ContextAlignment)
	assert.Equal(t, types.ComponentScore{WeightPercent: 5, Score: 40, Contribution: 2}, res.Breakdown.SectionStructure)
}

func TestAdjustment(t *testing.T) {
	long := 800
	tests := []struct {
		name string
		s    Signals
		want float64
	}{
		{"none", Signals{Sections: allSections, ResumeLength: long}, 0},
		{"three metrics", Signals{MetricCount: 3, Sections: allSections, ResumeLength: long}, 2},
		{"five metrics", Signals{MetricCount: 5, Sections: allSections, ResumeLength: long}, 3},
		{"many verbs", Signals{ActionVerbCount: 15, Sections: allSections, ResumeLength: long}, 2},
		{"short resume", Signals{Sections: allSections, ResumeLength: 499}, -10},
		{"missing experience and skills", Signals{ResumeLength: long}, -10},
		{"everything", Signals{MetricCount: 9, ActionVerbCount: 20, ResumeLength: 10}, -15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Adjustment(tt.s), 1e-9)
		})
	}
}

func TestAggregate_Clamps(t *testing.T) {
	high := Aggregate(Signals{
		KeywordMatchRate: 1, ContentSimilarity: 1, SkillsTotalCoverage: 100, ExperienceStrength: 100,
		ContextAverage: 1, Sections: allSections, MetricCount: 10, ActionVerbCount: 30, ResumeLength: 2000,
	})
	assert.Equal(t, 100, high.Score)

	low := Aggregate(Signals{ResumeLength: 10})
	assert.Equal(t, 0, low.Score)

	weird := Aggregate(Signals{KeywordMatchRate: 7, ContentSimilarity: math.NaN(), SkillsTotalCoverage: -40, Sections: allSections, ResumeLength: 900})
	assert.Equal(t, 30, weird.Score)
	assert.Equal(t, float64(100), weird.Breakdown.KeywordMatch.Score)
	assert.Zero(t, weird.Breakdown.ContentSimilarity.Score)
}

func TestAggregate_MetricsMonotonic(t *testing.T) {
	base := Signals{KeywordMatchRate: 0.4, ContentSimilarity: 0.2, SkillsTotalCoverage: 50, ContextAverage: 0.3,
		Sections: allSections, ResumeLength: 900}

	prev := -1
	for metrics := 0; metrics <= 12; metrics++ {
		s := base
		s.MetricCount = metrics
		s.ExperienceStrength = min(100, metrics*10)
		score := Aggregate(s).Score
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}

func TestAggregate_ShortResumeScoresLower(t *testing.T) {
	s := Signals{KeywordMatchRate: 0.6, ContentSimilarity: 0.5, SkillsTotalCoverage: 70, ExperienceStrength: 60,
		ContextAverage: 0.5, Sections: allSections, ResumeLength: 1500}
	short := s
	short.ResumeLength = 300

	assert.Equal(t, Aggregate(s).Score-10, Aggregate(short).Score)
}
