package fx

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RateCache stores quoted rates for a bounded TTL. Satisfied by the redis
// cache adapter.
type RateCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedProvider decorates a QuoteProvider with a TTL cache. Caching is a
// swappable strategy on the provider side only; it never touches rates
// already fixed into persisted facts.
type CachedProvider struct {
	inner  QuoteProvider
	cache  RateCache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedProvider creates a new CachedProvider.
func NewCachedProvider(inner QuoteProvider, cache RateCache, ttl time.Duration, logger zerolog.Logger) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetRate returns the cached rate for the pair if fresh, otherwise asks the
// inner provider and caches the result. Cache failures degrade to a direct
// provider call.
func (p *CachedProvider) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := cacheKey(from, to)

	if cached, err := p.cache.Get(ctx, key); err == nil && cached != "" {
		rate, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			return rate, nil
		}

		p.logger.Warn().
			Str("key", key).
			Str("value", cached).
			Msg("discarding unparseable cached rate")
	}

	rate, err := p.inner.GetRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	if err := p.cache.Set(ctx, key, rate.String(), p.ttl); err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("failed to cache rate")
	}

	return rate, nil
}

func cacheKey(from, to string) string {
	return fmt.Sprintf("fx:%s:%s", from, to)
}
