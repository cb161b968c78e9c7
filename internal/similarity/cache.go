package similarity

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ats-checker/internal/logger"
)

// CacheOptions configures a CachedEmbedder.
type CacheOptions struct {
	// Namespace is mixed into every key, typically the embedding model name.
	Namespace  string
	TTL        time.Duration
	MaxEntries int
	// Redis is the optional L2 tier. Nil keeps the cache in memory only.
	Redis *redis.Client
}

// CachedEmbedder caches embeddings in memory (L1) and optionally in Redis (L2).
type CachedEmbedder struct {
	inner  Embedder
	opts   CacheOptions
	l1     sync.Map // key -> *cacheEntry
	size   atomic.Int64
	hits   atomic.Int64
	misses atomic.Int64
	logger *zap.Logger
}

type cacheEntry struct {
	vec       []float32
	expiresAt time.Time
}

// NewCachedEmbedder wraps inner with a two-tier cache.
func NewCachedEmbedder(inner Embedder, opts CacheOptions, log *zap.Logger) *CachedEmbedder {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &CachedEmbedder{inner: inner, opts: opts, logger: logger.OrNop(log)}
}

// ConnectRedis parses redisURL and pings the server. It returns nil when the
// URL is empty, invalid or unreachable so callers run with L1 only.
func ConnectRedis(ctx context.Context, redisURL string, log *zap.Logger) *redis.Client {
	log = logger.OrNop(log)
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("cache: invalid redis URL, L2 disabled", zap.Error(err))
		return nil
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("cache: redis unreachable, L2 disabled", zap.Error(err))
		_ = rdb.Close()
		return nil
	}
	log.Info("cache: L2 redis connected", zap.String("addr", opts.Addr))
	return rdb
}

// Key builds the deterministic cache key for text.
func (c *CachedEmbedder) Key(text string) string {
	hash := sha256.Sum256([]byte(c.opts.Namespace + "|" + text))
	return fmt.Sprintf("emb:%x", hash[:12])
}

// Embed returns the cached embedding of text or computes and stores it.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.Key(text)
	if vec, ok := c.get(ctx, key); ok {
		c.hits.Add(1)
		return vec, nil
	}
	c.misses.Add(1)

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, vec)
	return vec, nil
}

// EmbedPair embeds a and b concurrently.
func (c *CachedEmbedder) EmbedPair(ctx context.Context, a, b string) ([]float32, []float32, error) {
	var va, vb []float32
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		va, err = c.Embed(gctx, a)
		return err
	})
	g.Go(func() error {
		var err error
		vb, err = c.Embed(gctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return va, vb, nil
}

// Stats returns the hit and miss counters.
func (c *CachedEmbedder) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *CachedEmbedder) get(ctx context.Context, key string) ([]float32, bool) {
	if val, ok := c.l1.Load(key); ok {
		entry := val.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			return entry.vec, true
		}
		c.delete(key)
	}

	if c.opts.Redis == nil {
		return nil, false
	}
	data, err := c.opts.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, false
	}
	c.storeL1(key, vec)
	return vec, true
}

func (c *CachedEmbedder) set(ctx context.Context, key string, vec []float32) {
	c.storeL1(key, vec)
	if c.opts.Redis == nil {
		return
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := c.opts.Redis.Set(ctx, key, data, c.opts.TTL).Err(); err != nil {
		c.logger.Debug("cache: L2 set failed", zap.Error(err))
	}
}

func (c *CachedEmbedder) storeL1(key string, vec []float32) {
	if c.opts.MaxEntries > 0 && c.size.Load() >= int64(c.opts.MaxEntries) {
		c.evictExpired()
		if c.size.Load() >= int64(c.opts.MaxEntries) {
			return
		}
	}
	if _, loaded := c.l1.Swap(key, &cacheEntry{vec: vec, expiresAt: time.Now().Add(c.opts.TTL)}); !loaded {
		c.size.Add(1)
	}
}

func (c *CachedEmbedder) delete(key string) {
	if _, loaded := c.l1.LoadAndDelete(key); loaded {
		c.size.Add(-1)
	}
}

func (c *CachedEmbedder) evictExpired() {
	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if entry, ok := val.(*cacheEntry); ok && now.After(entry.expiresAt) {
			c.delete(key.(string))
		}
		return true
	})
}
