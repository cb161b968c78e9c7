// Package types provides type definitions for the data exchanged by the ATS analysis engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// AnalysisResult is the terminal aggregate of one resume/job-description analysis.
type AnalysisResult struct {
	AnalysisID string `json:"analysis_id"`

	// Core metrics
	ATSScore               int      `json:"ats_score"`
	KeywordMatchRate       float64  `json:"keyword_match_rate"`
	SemanticSimilarity     *float64 `json:"semantic_similarity"`
	TFIDFSimilarity        float64  `json:"tfidf_similarity"`
	ContentSimilarityScore float64  `json:"content_similarity_score"`

	// Keywords
	MatchedKeywords     []string `json:"matched_keywords"`
	MissingKeywords     []string `json:"missing_keywords"`
	TotalJobKeywords    int      `json:"total_job_keywords"`
	TotalResumeKeywords int      `json:"total_resume_keywords"`

	SkillsAnalysis     SkillsAnalysis     `json:"skills_analysis"`
	ExperienceAnalysis ExperienceAnalysis `json:"experience_analysis"`
	ContextAnalysis    ContextAnalysis    `json:"context_analysis"`

	// Structure
	SectionAnalysis            SectionFlags `json:"section_analysis"`
	SectionCompletenessPercent float64      `json:"section_completeness_percent"`

	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	Suggestions    []string       `json:"suggestions"`
	SkillGaps      []string       `json:"skill_gaps"`
	Strategies     Strategies     `json:"strategies"`

	// Metadata
	AnalysisTimestamp    time.Time `json:"analysis_timestamp"`
	ResumeLength         int       `json:"resume_length"`
	JobDescriptionLength int       `json:"job_description_length"`
}

// SkillsAnalysis is the skill coverage summary surfaced to callers.
type SkillsAnalysis struct {
	ExactMatches         []string `json:"exact_matches"`
	PartialMatches       []string `json:"partial_matches"`
	MissingSkills        []string `json:"missing_skills"`
	ExactCoveragePercent float64  `json:"exact_coverage_percent"`
	TotalCoveragePercent float64  `json:"total_coverage_percent"`
	SkillMatchScore      int      `json:"skill_match_score"`
}

// ExperienceAnalysis is the experience profile surfaced to callers.
type ExperienceAnalysis struct {
	ActionVerbCount          int  `json:"action_verb_count"`
	QuantifiableAchievements int  `json:"quantifiable_achievements"`
	LeadershipIndicators     int  `json:"leadership_indicators"`
	AchievementIndicators    int  `json:"achievement_indicators"`
	ImprovementIndicators    int  `json:"improvement_indicators"`
	CreationIndicators       int  `json:"creation_indicators"`
	CollaborationIndicators  int  `json:"collaboration_indicators"`
	ExperienceStrengthScore  int  `json:"experience_strength_score"`
	HasMeasurableImpact      bool `json:"has_measurable_impact"`
}

// ContextAnalysis is the context profile surfaced to callers, as percentages.
type ContextAnalysis struct {
	AverageContextMatch     float64          `json:"average_context_match"`
	WellContextualizedCount int              `json:"well_contextualized_count"`
	KeywordScores           []KeywordContext `json:"keyword_scores"`
}

// Strategies records which strategy of each fallback chain produced the result.
type Strategies struct {
	Keywords   string `json:"keywords"`
	Similarity string `json:"similarity"`
}
