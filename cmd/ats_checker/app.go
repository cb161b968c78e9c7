package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/config"
	"github.com/jonathan/resume-ats-checker/internal/db"
	"github.com/jonathan/resume-ats-checker/internal/engine"
	"github.com/jonathan/resume-ats-checker/internal/fetch"
	"github.com/jonathan/resume-ats-checker/internal/ingestion"
	"github.com/jonathan/resume-ats-checker/internal/keywords"
	"github.com/jonathan/resume-ats-checker/internal/llm"
	"github.com/jonathan/resume-ats-checker/internal/logger"
	"github.com/jonathan/resume-ats-checker/internal/resources"
	"github.com/jonathan/resume-ats-checker/internal/similarity"
)

// app holds the dependencies shared by the subcommands.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	engine *engine.Engine
	store  *db.DB

	redisOnce sync.Once
	redis     *redis.Client

	mu         sync.Mutex
	closers    []io.Closer
	embedCache *similarity.CachedEmbedder
}

// loadConfig reads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWith(newViper(), cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp loads configuration and builds the engine. The database is
// connected only when withStore is set and database.url is configured.
func newApp(ctx context.Context, withStore bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}
	a.engine = a.buildEngine()

	if withStore && cfg.Database.URL != "" {
		store, err := db.Connect(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.store = store
	}
	return a, nil
}

func (a *app) buildEngine() *engine.Engine {
	reg := engine.NewRegistry(a.log)
	if !a.cfg.Engine.POSModel {
		reg.Register(resources.KindTagger, keywords.RuleTaggerLoader)
	}
	reg.Register(resources.KindVectorizer, func(context.Context) (any, error) {
		vec, err := similarity.NewVectorizer()
		if err != nil {
			return nil, err
		}
		vec.MaxFeatures = a.cfg.Engine.TFIDFMaxFeatures
		vec.MaxDF = a.cfg.Engine.TFIDFMaxDF
		return vec, nil
	})

	if a.cfg.EmbeddingsActive() {
		reg.Register(resources.KindEmbedder, a.loadEmbedder)
	} else {
		a.log.Debug("embeddings disabled, semantic similarity falls back to tf-idf")
	}

	limits := engine.DefaultLimits()
	limits.KeywordTopN = a.cfg.Engine.KeywordTopN
	return engine.New(reg, a.log, engine.WithLimits(limits))
}

// loadEmbedder creates the Gemini embedder behind the embedding cache.
func (a *app) loadEmbedder(ctx context.Context) (any, error) {
	llmCfg := llm.DefaultConfig().WithModel(a.cfg.Embeddings.Model)
	llmCfg.MaxInputChars = a.cfg.Embeddings.MaxInputChars

	emb, err := llm.NewGeminiEmbedder(context.WithoutCancel(ctx), llmCfg, a.cfg.Embeddings.APIKey)
	if err != nil {
		return nil, err
	}
	a.addCloser(emb)

	cached := similarity.NewCachedEmbedder(emb, similarity.CacheOptions{
		Namespace:  a.cfg.Cache.Namespace + ":" + emb.Model(),
		TTL:        a.cfg.Cache.TTL,
		MaxEntries: a.cfg.Cache.MaxEntries,
		Redis:      a.redisClient(ctx),
	}, a.log)
	a.mu.Lock()
	a.embedCache = cached
	a.mu.Unlock()
	a.log.Info("embedding model ready", zap.String("model", emb.Model()))
	return similarity.Embedder(cached), nil
}

// redisClient connects to Redis on first use. Nil means no L2 cache.
func (a *app) redisClient(ctx context.Context) *redis.Client {
	a.redisOnce.Do(func() {
		a.redis = similarity.ConnectRedis(context.WithoutCancel(ctx), a.cfg.Cache.RedisURL, a.log)
		if a.redis != nil {
			a.addCloser(a.redis)
		}
	})
	return a.redis
}

// ingestURL downloads a job posting with the configured fetch settings.
func (a *app) ingestURL(ctx context.Context, rawURL string) (string, *ingestion.Metadata, error) {
	opts := ingestion.URLOptions{
		Fetch: &fetch.Options{
			Timeout:   a.cfg.Ingestion.Timeout,
			UserAgent: a.cfg.Ingestion.UserAgent,
		},
		UseBrowser:   a.cfg.Ingestion.UseBrowser,
		MinTextChars: a.cfg.Ingestion.MinTextChars,
		Logger:       a.log,
	}
	if pc := fetch.NewRedisPageCache(a.redisClient(ctx), a.cfg.Cache.TTL, a.log); pc != nil {
		opts.Cache = pc
	}
	return ingestion.IngestFromURL(ctx, rawURL, opts)
}

func (a *app) addCloser(c io.Closer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, c)
}

// close releases the database, clients and logger.
func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	cached := a.embedCache
	a.mu.Unlock()
	if cached != nil {
		hits, misses := cached.Stats()
		a.log.Debug("embedding cache", zap.Int64("hits", hits), zap.Int64("misses", misses))
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			a.log.Debug("close failed", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
