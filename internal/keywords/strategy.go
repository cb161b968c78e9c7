// Package keywords extracts ranked keywords from a document and matches the
// keywords of a resume against those of a job description.
package keywords

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/lexicon"
	"github.com/jonathan/resume-ats-checker/internal/logger"
	"github.com/jonathan/resume-ats-checker/internal/parsing"
	"github.com/jonathan/resume-ats-checker/internal/resources"
)

// Strategy names.
const (
	StrategyTagger    = "tagger"
	StrategyFrequency = "frequency"
)

// Strategy extracts the topN most frequent keywords of a text.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, text string, topN int) ([]string, error)
}

// Result is the output of an extraction along with the strategy that produced it.
type Result struct {
	Keywords []string
	Strategy string
}

// ErrNoStrategy is returned when every strategy in a chain failed.
var ErrNoStrategy = errors.New("no keyword strategy succeeded")

// Extractor runs strategies in order and returns the first success.
type Extractor struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewExtractor creates an extractor over the given strategies.
func NewExtractor(log *zap.Logger, strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies, logger: logger.OrNop(log)}
}

// NewDefaultExtractor tries the tagger from the registry, then word frequency.
func NewDefaultExtractor(log *zap.Logger, reg *resources.Registry) *Extractor {
	return NewExtractor(log, &TaggerStrategy{Resources: reg}, FrequencyStrategy{})
}

// Extract returns the topN keywords of text.
func (e *Extractor) Extract(ctx context.Context, text string, topN int) (Result, error) {
	var errs []error
	for _, s := range e.strategies {
		kws, err := s.Extract(ctx, text, topN)
		if err != nil {
			e.logger.Warn("keyword strategy failed, falling back",
				zap.String("strategy", s.Name()),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		e.logger.Debug("keywords extracted",
			zap.String("strategy", s.Name()),
			zap.Int("count", len(kws)))
		return Result{Keywords: kws, Strategy: s.Name()}, nil
	}
	return Result{}, errors.Join(append([]error{ErrNoStrategy}, errs...)...)
}

// TaggerStrategy collects nouns, proper nouns and adjectives plus multi-word
// noun phrases using the tagger resource.
type TaggerStrategy struct {
	Resources *resources.Registry
}

func (s *TaggerStrategy) Name() string { return StrategyTagger }

func (s *TaggerStrategy) Extract(ctx context.Context, text string, topN int) ([]string, error) {
	if s.Resources == nil {
		return nil, &resources.UnavailableError{Kind: resources.KindTagger, Cause: errors.New("no registry")}
	}
	tagger, err := resources.Get[*Tagger](ctx, s.Resources, resources.KindTagger)
	if err != nil {
		return nil, err
	}

	tokens := tagger.Tag(text)
	var terms []string
	for _, tok := range tokens {
		if (tok.POS == TagNoun || tok.POS == TagPropn || tok.POS == TagAdj) &&
			!tok.Stop && parsing.Length(tok.Text) > 2 {
			terms = append(terms, tok.Text)
		}
	}
	for _, chunk := range tagger.Chunks(tokens) {
		if len(strings.Fields(chunk)) > 1 {
			terms = append(terms, chunk)
		}
	}
	return parsing.TopN(terms, topN), nil
}

// FrequencyStrategy counts word runs of three or more characters, minus a
// short stopword list. It never fails.
type FrequencyStrategy struct{}

func (FrequencyStrategy) Name() string { return StrategyFrequency }

func (FrequencyStrategy) Extract(_ context.Context, text string, topN int) ([]string, error) {
	stop := lexicon.MustSet(lexicon.StopwordsFile, "fallback")
	var terms []string
	for _, w := range parsing.WordRuns(strings.ToLower(text), 3) {
		if !stop[w] {
			terms = append(terms, w)
		}
	}
	return parsing.TopN(terms, topN), nil
}

// TaggerLoader builds the model-backed tagger for the resource registry.
func TaggerLoader(context.Context) (any, error) {
	return NewTagger(WithModel(ProseModel{}))
}

// RuleTaggerLoader builds a tagger that uses the lexicons and suffix rules only.
func RuleTaggerLoader(context.Context) (any, error) {
	return NewTagger()
}
