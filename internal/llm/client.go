package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

// ErrEmptyEmbedding is returned when the provider answers without values.
var ErrEmptyEmbedding = errors.New("empty embedding in response")

type embedFunc func(ctx context.Context, text string) ([]float32, error)

// GeminiEmbedder embeds text with a Gemini embedding model.
type GeminiEmbedder struct {
	client *genai.Client
	config *Config
	embed  embedFunc
}

// NewGeminiEmbedder creates a new Gemini embedding client
func NewGeminiEmbedder(ctx context.Context, config *Config, apiKey string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.EmbeddingModel(config.Model)
	model.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiEmbedder{
		client: client,
		config: config,
		embed: func(ctx context.Context, text string) ([]float32, error) {
			resp, err := model.EmbedContent(ctx, genai.Text(text))
			if err != nil {
				return nil, err
			}
			if resp == nil || resp.Embedding == nil {
				return nil, ErrEmptyEmbedding
			}
			return resp.Embedding.Values, nil
		},
	}, nil
}

// Model returns the embedding model name
func (e *GeminiEmbedder) Model() string {
	return e.config.Model
}

// Embed returns the embedding of text
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if limit := e.config.MaxInputChars; limit > 0 {
		if r := []rune(text); len(r) > limit {
			text = string(r[:limit])
		}
	}
	vec, err := e.embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if len(vec) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return vec, nil
}

// EmbedPair embeds two texts concurrently
func (e *GeminiEmbedder) EmbedPair(ctx context.Context, a, b string) ([]float32, []float32, error) {
	var va, vb []float32
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		va, err = e.Embed(gctx, a)
		return err
	})
	g.Go(func() error {
		var err error
		vb, err = e.Embed(gctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return va, vb, nil
}

// Close releases resources held by the client
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
