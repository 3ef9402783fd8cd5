package jobsource

import (
	"context"
	"log"
	"time"

	"joblens/internal/domain/job"
	"joblens/internal/infrastructure/cache"
)

// CachedSource layers a short-lived Redis cache over another Source. The job
// board rate-limits aggressively, so repeated identical queries within the TTL
// are served from cache. Cache failures fall straight through to the inner
// source.
type CachedSource struct {
	inner  Source
	redis  *cache.Redis
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedSource(inner Source, redis *cache.Redis, ttl time.Duration, logger *log.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedSource{inner: inner, redis: redis, ttl: ttl, logger: logger}
}

func (c *CachedSource) FetchCandidates(ctx context.Context, q Query) ([]job.Document, error) {
	key := cache.ListingKey(q.Search, q.Category, q.Company, q.Limit)

	var cached []job.Document
	if hit, err := c.redis.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	docs, err := c.inner.FetchCandidates(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := c.redis.SetJSON(ctx, key, docs, c.ttl); err != nil && c.logger != nil {
		c.logger.Printf("[JobSource] listing cache write failed: %v", err)
	}
	return docs, nil
}

func (c *CachedSource) FetchByExternalID(ctx context.Context, externalID string) (job.Document, bool, error) {
	return c.inner.FetchByExternalID(ctx, externalID)
}

var _ Source = (*CachedSource)(nil)
