// Package engine orchestrates one resume/job-description analysis across the
// keyword, skill, similarity, experience, context and section analyzers.
package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/alignment"
	"github.com/jonathan/resume-ats-checker/internal/experience"
	"github.com/jonathan/resume-ats-checker/internal/keywords"
	"github.com/jonathan/resume-ats-checker/internal/logger"
	"github.com/jonathan/resume-ats-checker/internal/parsing"
	"github.com/jonathan/resume-ats-checker/internal/resources"
	"github.com/jonathan/resume-ats-checker/internal/scoring"
	"github.com/jonathan/resume-ats-checker/internal/sections"
	"github.com/jonathan/resume-ats-checker/internal/similarity"
	"github.com/jonathan/resume-ats-checker/internal/skills"
	"github.com/jonathan/resume-ats-checker/internal/suggestions"
	"github.com/jonathan/resume-ats-checker/internal/types"
)

// Limits bounds the sizes of the result lists.
type Limits struct {
	KeywordTopN   int
	Matched       int
	Missing       int
	ExactSkills   int
	PartialSkills int
	MissingSkills int
}

// DefaultLimits returns the standard list bounds.
func DefaultLimits() Limits {
	return Limits{
		KeywordTopN:   100,
		Matched:       25,
		Missing:       20,
		ExactSkills:   15,
		PartialSkills: 10,
		MissingSkills: 15,
	}
}

// Engine runs analyses. It is safe for concurrent use; the only shared state
// is the resource registry.
type Engine struct {
	keywords   *keywords.Extractor
	skills     *skills.Extractor
	similarity *similarity.Estimator
	limits     Limits
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimits overrides the result list bounds.
func WithLimits(l Limits) Option {
	return func(e *Engine) { e.limits = l }
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator sets the analysis ID source.
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// WithKeywordExtractor replaces the keyword strategy chain.
func WithKeywordExtractor(x *keywords.Extractor) Option {
	return func(e *Engine) { e.keywords = x }
}

// New creates an engine whose analyzers draw heavyweight resources from reg.
func New(reg *resources.Registry, log *zap.Logger, opts ...Option) *Engine {
	log = logger.OrNop(log)
	e := &Engine{
		keywords:   keywords.NewDefaultExtractor(log, reg),
		skills:     &skills.Extractor{Resources: reg, Logger: log},
		similarity: similarity.NewEstimator(reg, log),
		limits:     DefaultLimits(),
		logger:     log,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewRegistry returns a registry with the tagger and vectorizer loaders
// installed. The embedder is registered by the caller when configured.
func NewRegistry(log *zap.Logger) *resources.Registry {
	reg := resources.NewRegistry(log)
	reg.Register(resources.KindTagger, keywords.TaggerLoader)
	reg.Register(resources.KindVectorizer, similarity.VectorizerLoader)
	return reg
}

// Analyze scores resume against job. Both texts must be non-empty; length
// minimums are enforced by ValidateRequest at the boundary.
func (e *Engine) Analyze(ctx context.Context, resume, job string) (res *types.AnalysisResult, err error) {
	if strings.TrimSpace(resume) == "" {
		return nil, &InputError{Field: "resume_text", Message: MsgResumeTooShort}
	}
	if strings.TrimSpace(job) == "" {
		return nil, &InputError{Field: "job_description", Message: MsgJobTooShort}
	}

	stage := "normalize"
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("analysis panicked", zap.String("stage", stage), zap.Any("panic", r))
			res, err = nil, &ComputationError{Stage: stage, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	started := e.now()
	resumeNorm := parsing.NormalizeText(resume)
	jobNorm := parsing.NormalizeText(job)

	stage = "keywords"
	resumeKW, err := e.keywords.Extract(ctx, resumeNorm, e.limits.KeywordTopN)
	if err != nil {
		return nil, &ComputationError{Stage: stage, Cause: err}
	}
	jobKW, err := e.keywords.Extract(ctx, jobNorm, e.limits.KeywordTopN)
	if err != nil {
		return nil, &ComputationError{Stage: stage, Cause: err}
	}
	match := keywords.Match(resumeKW.Keywords, jobKW.Keywords)

	stage = "similarity"
	semantic := e.similarity.Semantic(ctx, resumeNorm, jobNorm)
	tfidf := e.similarity.TFIDF(ctx, resumeNorm, jobNorm)
	content := tfidf
	if semantic.Value > 0 {
		content = semantic.Value
	}

	stage = "skills"
	coverage := skills.AnalyzeCoverage(e.skills.Extract(ctx, resume), e.skills.Extract(ctx, job))

	stage = "experience"
	exp := experience.Analyze(resume)

	stage = "context"
	ctxProfile := alignment.Analyze(resume, job, jobKW.Keywords)

	stage = "sections"
	flags := sections.Detect(resume)

	stage = "scoring"
	agg := scoring.Aggregate(scoring.Signals{
		KeywordMatchRate:    match.Rate,
		ContentSimilarity:   content,
		SkillsTotalCoverage: coverage.TotalCoverage,
		ExperienceStrength:  exp.StrengthScore,
		MetricCount:         exp.MetricCount,
		ActionVerbCount:     exp.ActionVerbCount,
		ContextAverage:      ctxProfile.AverageContextMatch,
		Sections:            flags,
		ResumeLength:        parsing.Length(resume),
	})

	stage = "suggestions"
	tips := suggestions.Generate(suggestions.Input{
		Score:           agg.Score,
		MissingKeywords: match.Missing,
		Sections:        flags,
		MatchRate:       match.Rate,
		Experience:      &exp,
		Skills:          &suggestions.SkillsSummary{TotalCoverage: coverage.TotalCoverage, MissingSkills: coverage.Missing},
		Context:         &ctxProfile,
	})

	res = &types.AnalysisResult{
		AnalysisID:             e.newID(),
		ATSScore:               agg.Score,
		KeywordMatchRate:       round2(match.Rate * 100),
		TFIDFSimilarity:        round2(tfidf * 100),
		ContentSimilarityScore: round2(content * 100),
		MatchedKeywords:        limit(match.Matched, e.limits.Matched),
		MissingKeywords:        limit(match.Missing, e.limits.Missing),
		TotalJobKeywords:       len(jobKW.Keywords),
		TotalResumeKeywords:    len(resumeKW.Keywords),
		SkillsAnalysis: types.SkillsAnalysis{
			ExactMatches:         limit(coverage.Exact, e.limits.ExactSkills),
			PartialMatches:       limit(coverage.Partial, e.limits.PartialSkills),
			MissingSkills:        limit(coverage.Missing, e.limits.MissingSkills),
			ExactCoveragePercent: coverage.ExactCoverage,
			TotalCoveragePercent: coverage.TotalCoverage,
			SkillMatchScore:      coverage.MatchScore,
		},
		ExperienceAnalysis: types.ExperienceAnalysis{
			ActionVerbCount:          exp.ActionVerbCount,
			QuantifiableAchievements: exp.MetricCount,
			LeadershipIndicators:     exp.LeadershipIndicators,
			AchievementIndicators:    exp.AchievementIndicators,
			ImprovementIndicators:    exp.ImprovementIndicators,
			CreationIndicators:       exp.CreationIndicators,
			CollaborationIndicators:  exp.CollaborationIndicators,
			ExperienceStrengthScore:  exp.StrengthScore,
			HasMeasurableImpact:      exp.HasQuantifiableResults,
		},
		ContextAnalysis: types.ContextAnalysis{
			AverageContextMatch:     round2(ctxProfile.AverageContextMatch * 100),
			WellContextualizedCount: ctxProfile.WellContextualizedCount,
			KeywordScores:           contextPercents(ctxProfile.Scores),
		},
		SectionAnalysis:            flags,
		SectionCompletenessPercent: round2(flags.Completeness() * 100),
		ScoreBreakdown:             agg.Breakdown,
		Suggestions:                tips,
		SkillGaps:                  limit(coverage.Missing, e.limits.MissingSkills),
		Strategies: types.Strategies{
			Keywords:   strategyName(resumeKW.Strategy, jobKW.Strategy),
			Similarity: semantic.Strategy,
		},
		AnalysisTimestamp:    started,
		ResumeLength:         parsing.Length(resume),
		JobDescriptionLength: parsing.Length(job),
	}
	if semantic.Value > 0 {
		v := round2(semantic.Value * 100)
		res.SemanticSimilarity = &v
	}

	e.logger.Info("analysis complete",
		zap.String("analysis_id", res.AnalysisID),
		zap.Int("ats_score", res.ATSScore),
		zap.Float64("keyword_match_rate", res.KeywordMatchRate),
		zap.String("keyword_strategy", res.Strategies.Keywords),
		zap.String("similarity_strategy", res.Strategies.Similarity),
		zap.Duration("elapsed", e.now().Sub(started)))
	return res, nil
}

func strategyName(resume, job string) string {
	if resume == job {
		return resume
	}
	return resume + "," + job
}

// limit returns at most n items and never nil, so lists serialize as [].
func limit(items []string, n int) []string {
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// contextPercents converts context scores to rounded percentages, never nil.
func contextPercents(scores []types.KeywordContext) []types.KeywordContext {
	out := make([]types.KeywordContext, len(scores))
	for i, s := range scores {
		out[i] = types.KeywordContext{Keyword: s.Keyword, Score: round2(s.Score * 100)}
	}
	return out
}
