package similarity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-ats-checker/internal/resources"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

func registryWith(emb Embedder) *resources.Registry {
	reg := resources.NewRegistry(nil)
	reg.Register(resources.KindVectorizer, VectorizerLoader)
	if emb != nil {
		reg.Set(resources.KindEmbedder, emb)
	} else {
		reg.Register(resources.KindEmbedder, func(context.Context) (any, error) {
			return nil, errors.New("no api key")
		})
	}
	return reg
}

func TestEstimator_SemanticUsesEmbeddings(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"resume": {1, 0},
		"job":    {1, 1},
	}}
	e := NewEstimator(registryWith(emb), nil)

	got := e.Semantic(context.Background(), "resume", "job")
	assert.Equal(t, StrategyEmbedding, got.Strategy)
	assert.InDelta(t, 0.707107, got.Value, 1e-6)
}

func TestEstimator_SemanticClampsNegative(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {-1, 0},
	}}
	e := NewEstimator(registryWith(emb), nil)

	got := e.Semantic(context.Background(), "a", "b")
	assert.Equal(t, StrategyEmbedding, got.Strategy)
	assert.Zero(t, got.Value)
}

func TestEstimator_SemanticFallsBackToTFIDF(t *testing.T) {
	tests := []struct {
		name string
		emb  Embedder
	}{
		{name: "embedder unavailable"},
		{name: "embedding call fails", emb: &fakeEmbedder{err: errors.New("quota exceeded")}},
		{name: "dimension mismatch", emb: &fakeEmbedder{vectors: map[string][]float32{"go redis": {1}, "go kafka": {1, 2}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEstimator(registryWith(tt.emb), nil)

			got := e.Semantic(context.Background(), "go redis", "go kafka")
			assert.Equal(t, StrategyTFIDF, got.Strategy)
			assert.Equal(t, e.TFIDF(context.Background(), "go redis", "go kafka"), got.Value)
		})
	}
}

func TestEstimator_NilRegistry(t *testing.T) {
	e := NewEstimator(nil, nil)

	got := e.Semantic(context.Background(), "", "")
	assert.Equal(t, StrategyTFIDF, got.Strategy)
	assert.Zero(t, got.Value)
}
