package similarity

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/logger"
	"github.com/jonathan/resume-ats-checker/internal/resources"
)

// Strategy names.
const (
	StrategyEmbedding = "embedding"
	StrategyTFIDF     = "tfidf"
)

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// PairEmbedder embeds two texts in one call.
type PairEmbedder interface {
	EmbedPair(ctx context.Context, a, b string) ([]float32, []float32, error)
}

// Score is a similarity in [0,1] and the strategy that produced it.
type Score struct {
	Value    float64
	Strategy string
}

// Strategy computes a document similarity.
type Strategy interface {
	Name() string
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Estimator computes TF-IDF and semantic similarity using shared resources.
type Estimator struct {
	Resources *resources.Registry
	Logger    *zap.Logger

	strategies []Strategy
}

// NewEstimator creates an estimator whose semantic chain tries embeddings, then TF-IDF.
func NewEstimator(reg *resources.Registry, log *zap.Logger) *Estimator {
	e := &Estimator{Resources: reg, Logger: logger.OrNop(log)}
	e.strategies = []Strategy{&EmbeddingStrategy{Resources: reg}, &TFIDFStrategy{Resources: reg}}
	return e
}

// TFIDF returns the TF-IDF cosine of a and b, 0 on any failure.
func (e *Estimator) TFIDF(ctx context.Context, a, b string) float64 {
	v, _ := (&TFIDFStrategy{Resources: e.Resources}).Similarity(ctx, a, b)
	return v
}

// Semantic returns the first strategy result that succeeds. TF-IDF never fails,
// so a score is always produced.
func (e *Estimator) Semantic(ctx context.Context, a, b string) Score {
	for _, s := range e.strategies {
		v, err := s.Similarity(ctx, a, b)
		if err != nil {
			e.Logger.Warn("similarity strategy failed, falling back",
				zap.String("strategy", s.Name()),
				zap.Error(err))
			continue
		}
		e.Logger.Debug("similarity computed",
			zap.String("strategy", s.Name()),
			zap.Float64("score", v))
		return Score{Value: v, Strategy: s.Name()}
	}
	return Score{Strategy: StrategyTFIDF}
}

// TFIDFStrategy uses the vectorizer resource, or the default vectorizer when
// none is registered.
type TFIDFStrategy struct {
	Resources *resources.Registry
}

func (s *TFIDFStrategy) Name() string { return StrategyTFIDF }

func (s *TFIDFStrategy) Similarity(ctx context.Context, a, b string) (float64, error) {
	v, err := s.vectorizer(ctx)
	if err != nil {
		return 0, nil
	}
	return v.Similarity(a, b), nil
}

func (s *TFIDFStrategy) vectorizer(ctx context.Context) (*Vectorizer, error) {
	if s.Resources != nil {
		if v, err := resources.Get[*Vectorizer](ctx, s.Resources, resources.KindVectorizer); err == nil {
			return v, nil
		}
	}
	return NewVectorizer()
}

// VectorizerLoader builds the default vectorizer for the resource registry.
func VectorizerLoader(context.Context) (any, error) {
	return NewVectorizer()
}

// EmbeddingStrategy computes the cosine of dense embeddings, clamped to [0,1].
type EmbeddingStrategy struct {
	Resources *resources.Registry
}

func (s *EmbeddingStrategy) Name() string { return StrategyEmbedding }

func (s *EmbeddingStrategy) Similarity(ctx context.Context, a, b string) (float64, error) {
	if s.Resources == nil {
		return 0, &resources.UnavailableError{Kind: resources.KindEmbedder, Cause: errors.New("no registry")}
	}
	emb, err := resources.Get[Embedder](ctx, s.Resources, resources.KindEmbedder)
	if err != nil {
		return 0, err
	}

	va, vb, err := embedBoth(ctx, emb, a, b)
	if err != nil {
		return 0, fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(va) == 0 || len(va) != len(vb) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(va), len(vb))
	}
	return clamp01(cosine(va, vb)), nil
}

func embedBoth(ctx context.Context, emb Embedder, a, b string) ([]float32, []float32, error) {
	if pe, ok := emb.(PairEmbedder); ok {
		return pe.EmbedPair(ctx, a, b)
	}
	va, err := emb.Embed(ctx, a)
	if err != nil {
		return nil, nil, err
	}
	vb, err := emb.Embed(ctx, b)
	if err != nil {
		return nil, nil, err
	}
	return va, vb, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
