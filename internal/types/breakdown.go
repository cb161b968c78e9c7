package types

// ComponentScore is one row of the score breakdown.
type ComponentScore struct {
	WeightPercent int     `json:"weight_percent"`
	Score         float64 `json:"score"`
	Contribution  float64 `json:"contribution"`
}

// ScoreBreakdown reports each weighted component of the final score.
type ScoreBreakdown struct {
	KeywordMatch      ComponentScore `json:"keyword_match"`
	ContentSimilarity ComponentScore `json:"content_similarity"`
	SkillsCoverage    ComponentScore `json:"skills_coverage"`
	ExperienceQuality ComponentScore `json:"experience_quality"`
	ContextAlignment  ComponentScore `json:"context_alignment"`
	SectionStructure  ComponentScore `json:"section_structure"`
}

// AnalyzeRequest is the boundary request for one analysis.
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" mapstructure:"resume_text" validate:"required,min=50"`
	JobDescription string `json:"job_description" mapstructure:"job_description" validate:"required,min=20"`
}
