// Package llm provides the embedding model configuration and the Gemini
// embedding client used for semantic similarity.
package llm

// Provider represents an embedding provider
type Provider string

// Provider constants define supported providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultEmbeddingModel is the Gemini text embedding model.
const DefaultEmbeddingModel = "text-embedding-004"

// Config holds the embedding configuration for the application
type Config struct {
	Provider Provider
	Model    string
	// MaxInputChars truncates documents before they are sent. Zero disables truncation.
	MaxInputChars int
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:      ProviderGemini,
		Model:         DefaultEmbeddingModel,
		MaxInputChars: 20000,
	}
}

// WithModel returns a copy of the config using model
func (c *Config) WithModel(model string) *Config {
	cp := *c
	cp.Model = model
	return &cp
}
