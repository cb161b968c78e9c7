package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func toLower(s string) string { return strings.ToLower(s) }

func TestAnalyzeCoverage(t *testing.T) {
	tests := []struct {
		name         string
		resume       []string
		job          []string
		wantExact    []string
		wantPartial  []string
		wantMissing  []string
		wantExactPct float64
		wantTotalPct float64
		wantScore    int
	}{
		{
			name:         "exact, family and substring matches",
			resume:       []string{"Python", "Docker", "machine learning"},
			job:          []string{"python", "django", "kubernetes", "learning", "figma"},
			wantExact:    []string{"python"},
			wantPartial:  []string{"django", "kubernetes", "learning"},
			wantMissing:  []string{"figma"},
			wantExactPct: 20,
			wantTotalPct: 80,
			wantScore:    80,
		},
		{
			name:         "thirds round to two decimals",
			resume:       []string{"go"},
			job:          []string{"go", "rust", "swift"},
			wantExact:    []string{"go"},
			wantMissing:  []string{"rust", "swift"},
			wantExactPct: 33.33,
			wantTotalPct: 33.33,
			wantScore:    33,
		},
		{
			name:   "no job skills",
			resume: []string{"python"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeCoverage(tt.resume, tt.job)
			assert.Equal(t, tt.wantExact, got.Exact)
			assert.Equal(t, tt.wantPartial, got.Partial)
			assert.Equal(t, tt.wantMissing, got.Missing)
			assert.InDelta(t, tt.wantExactPct, got.ExactCoverage, 1e-9)
			assert.InDelta(t, tt.wantTotalPct, got.TotalCoverage, 1e-9)
			assert.Equal(t, tt.wantScore, got.MatchScore)
		})
	}
}

func TestAnalyzeCoverage_MissingKeepsJobOrder(t *testing.T) {
	got := AnalyzeCoverage(nil, []string{"terraform", "ansible", "jenkins"})
	assert.Equal(t, []string{"terraform", "ansible", "jenkins"}, got.Missing)
	assert.Zero(t, got.TotalCoverage)
}
