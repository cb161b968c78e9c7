// Package config loads service and CLI configuration with viper.
//
// Values come from, in increasing priority: built-in defaults, an optional
// YAML/JSON file, ATS_* environment variables, and any flags bound to the
// viper instance by the caller.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. ATS_SERVER_PORT.
const EnvPrefix = "ATS"

// DefaultConfigName is searched for in the working directory when no path is given.
const DefaultConfigName = "ats-checker"

// Config is the full configuration tree.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Engine     EngineConfig     `mapstructure:"engine"`
	Embeddings EmbeddingsConfig `mapstructure:"embeddings"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	RateLimit  RateLimitConfig  `mapstructure:"rate-limit"`
	Ingestion  IngestionConfig  `mapstructure:"ingestion"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
	MaxUploadBytes int64         `mapstructure:"max-upload-bytes"`
	CORSOrigin     string        `mapstructure:"cors-origin"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// EngineConfig tunes keyword extraction and the TF-IDF vectorizer.
type EngineConfig struct {
	KeywordTopN      int     `mapstructure:"keyword-top-n"`
	TFIDFMaxFeatures int     `mapstructure:"tfidf-max-features"`
	TFIDFMaxDF       float64 `mapstructure:"tfidf-max-df"`
	// POSModel tags with the statistical model; false keeps the lexicon rules only.
	POSModel bool `mapstructure:"pos-model"`
}

// EmbeddingsConfig enables the Gemini embedding strategy. Without an API key
// the engine falls back to TF-IDF.
type EmbeddingsConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	APIKey        string `mapstructure:"api-key"`
	Model         string `mapstructure:"model"`
	MaxInputChars int    `mapstructure:"max-input-chars"`
}

// CacheConfig controls the embedding cache. An empty RedisURL keeps it in memory.
type CacheConfig struct {
	RedisURL   string        `mapstructure:"redis-url"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max-entries"`
	Namespace  string        `mapstructure:"namespace"`
}

// DatabaseConfig enables analysis history when URL is set.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max-conns"`
}

// AuthConfig holds bearer token settings for the analysis routes.
type AuthConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration-hours"`
}

type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default-limit"`
	DefaultWindow   time.Duration `mapstructure:"default-window"`
	AnalyzeLimit    int           `mapstructure:"analyze-limit"`
	AnalyzeWindow   time.Duration `mapstructure:"analyze-window"`
	AnalyzeBurst    int           `mapstructure:"analyze-burst"`
	CleanupInterval time.Duration `mapstructure:"cleanup-interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// IngestionConfig controls job posting fetches.
type IngestionConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	UseBrowser   bool          `mapstructure:"use-browser"`
	MinTextChars int           `mapstructure:"min-text-chars"`
	UserAgent    string        `mapstructure:"user-agent"`
}

// legacyEnv maps keys to the unprefixed variables older deployments set.
var legacyEnv = map[string]string{
	"embeddings.api-key": "GEMINI_API_KEY",
	"database.url":       "DATABASE_URL",
	"auth.secret":        "JWT_SECRET",
	"cache.redis-url":    "REDIS_URL",
}

// SetDefaults registers every default on v so that environment overrides
// resolve for all keys.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read-timeout", 30*time.Second)
	v.SetDefault("server.write-timeout", 60*time.Second)
	v.SetDefault("server.max-upload-bytes", int64(5<<20))
	v.SetDefault("server.cors-origin", "*")

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("engine.keyword-top-n", 100)
	v.SetDefault("engine.tfidf-max-features", 1000)
	v.SetDefault("engine.tfidf-max-df", 0.95)
	v.SetDefault("engine.pos-model", true)

	v.SetDefault("embeddings.enabled", true)
	v.SetDefault("embeddings.api-key", "")
	v.SetDefault("embeddings.model", "text-embedding-004")
	v.SetDefault("embeddings.max-input-chars", 20000)

	v.SetDefault("cache.redis-url", "")
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.max-entries", 1000)
	v.SetDefault("cache.namespace", "ats")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max-conns", int32(10))

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.expiration-hours", 24)

	v.SetDefault("rate-limit.enabled", true)
	v.SetDefault("rate-limit.default-limit", 1000)
	v.SetDefault("rate-limit.default-window", time.Minute)
	v.SetDefault("rate-limit.analyze-limit", 60)
	v.SetDefault("rate-limit.analyze-window", time.Minute)
	v.SetDefault("rate-limit.analyze-burst", 10)
	v.SetDefault("rate-limit.cleanup-interval", 5*time.Minute)
	v.SetDefault("rate-limit.whitelist", []string{})
	v.SetDefault("rate-limit.blacklist", []string{})

	v.SetDefault("ingestion.timeout", 30*time.Second)
	v.SetDefault("ingestion.use-browser", false)
	v.SetDefault("ingestion.min-text-chars", 200)
	v.SetDefault("ingestion.user-agent", "Mozilla/5.0 (compatible; ResumeATSChecker/1.0)")
}

// Load reads configuration into a fresh viper instance.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith reads configuration into v, which may already carry bound flags.
// An empty path searches the working directory for DefaultConfigName and
// tolerates its absence.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: 'server.max-upload-bytes' must be positive")
	}
	if c.Engine.KeywordTopN < 1 {
		return fmt.Errorf("config error: 'engine.keyword-top-n' must be at least 1")
	}
	if c.Engine.TFIDFMaxFeatures < 1 {
		return fmt.Errorf("config error: 'engine.tfidf-max-features' must be at least 1")
	}
	if c.Engine.TFIDFMaxDF <= 0 || c.Engine.TFIDFMaxDF > 1 {
		return fmt.Errorf("config error: 'engine.tfidf-max-df' must be in (0, 1], got %g", c.Engine.TFIDFMaxDF)
	}
	if c.Embeddings.MaxInputChars < 0 {
		return fmt.Errorf("config error: 'embeddings.max-input-chars' must be non-negative")
	}
	if c.Cache.TTL < 0 || c.Cache.MaxEntries < 0 {
		return fmt.Errorf("config error: 'cache.ttl' and 'cache.max-entries' must be non-negative")
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("config error: 'auth.secret' is required when auth is enabled")
	}
	if c.Auth.ExpirationHours < 1 {
		return fmt.Errorf("config error: 'auth.expiration-hours' must be at least 1 hour, got %d", c.Auth.ExpirationHours)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit < 0 || c.RateLimit.AnalyzeLimit < 0 {
			return fmt.Errorf("config error: rate limits must be non-negative")
		}
		if c.RateLimit.DefaultWindow <= 0 || c.RateLimit.AnalyzeWindow <= 0 {
			return fmt.Errorf("config error: rate limit windows must be positive")
		}
	}
	if c.Ingestion.MinTextChars < 0 {
		return fmt.Errorf("config error: 'ingestion.min-text-chars' must be non-negative")
	}
	return nil
}

// EmbeddingsActive reports whether the embedding strategy can be registered.
func (c *Config) EmbeddingsActive() bool {
	return c.Embeddings.Enabled && c.Embeddings.APIKey != ""
}
