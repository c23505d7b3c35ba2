package data

import (
	"context"
	"log"
	"time"

	"budget-control/internal/model"
)

// CachedSource memoizes another SeriesSource. Misses and errors are not cached.
type CachedSource struct {
	next  SeriesSource
	cache *Cache[string, model.TimeSeries]
}

func NewCachedSource(next SeriesSource, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, cache: NewCache[string, model.TimeSeries](ttl)}
}

func (s *CachedSource) FetchSeries(ctx context.Context, key string) (model.TimeSeries, error) {
	if ts, ok := s.cache.Get(key); ok {
		log.Printf("[SeriesCache] hit key=%s points=%d", key, ts.Len())
		return ts, nil
	}
	ts, err := s.next.FetchSeries(ctx, key)
	if err != nil {
		return model.TimeSeries{}, err
	}
	s.cache.Set(key, ts)
	return ts, nil
}

// Invalidate drops a key, e.g. after the underlying series was rewritten.
func (s *CachedSource) Invalidate(key string) {
	s.cache.Delete(key)
}

func (s *CachedSource) Close() {
	s.cache.Stop()
}
