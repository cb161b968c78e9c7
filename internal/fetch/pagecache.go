package fetch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/logger"
)

// DefaultPageTTL is how long extracted job posting text is cached.
const DefaultPageTTL = 24 * time.Hour

// PageCache stores extracted posting text by URL.
type PageCache interface {
	Get(ctx context.Context, url string) (string, bool)
	Put(ctx context.Context, url, text string)
}

// RedisPageCache is a PageCache in redis. Redis errors are logged and
// treated as misses.
type RedisPageCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisPageCache returns nil when client is nil, so callers can pass the
// result straight through.
func NewRedisPageCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisPageCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &RedisPageCache{client: client, ttl: ttl, logger: logger.OrNop(log)}
}

// PageKey builds the redis key for a URL.
func PageKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("jd:%x", sum[:12])
}

func (c *RedisPageCache) Get(ctx context.Context, url string) (string, bool) {
	text, err := c.client.Get(ctx, PageKey(url)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("page cache get failed", zap.String("url", url), zap.Error(err))
		}
		return "", false
	}
	return text, true
}

func (c *RedisPageCache) Put(ctx context.Context, url, text string) {
	if err := c.client.Set(ctx, PageKey(url), text, c.ttl).Err(); err != nil {
		c.logger.Debug("page cache set failed", zap.String("url", url), zap.Error(err))
	}
}
