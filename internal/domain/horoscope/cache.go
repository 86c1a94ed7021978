package horoscope

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	apperrors "github.com/lunara/astro-api/pkg/errors"
)

// Store is the key-value slot behind the cache policy. Implementations may
// also expire entries on their own (Valkey TTL); the envelope timestamp is
// the authoritative freshness check either way.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

const (
	dailyCacheKey    = "horoscope:daily"
	insightsCacheKey = "horoscope:insights"

	// envelopeVersion guards against stale formats after payload changes.
	envelopeVersion = 1
)

// envelope wraps a cached payload with its capture timestamp. Freshness is
// purely `now - capturedAt < TTL`; there is no event-based invalidation.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	CapturedAt int64           `json:"timestamp"`
	Version    int             `json:"version"`
}

// CacheConfig carries the two independent freshness budgets. The split
// (shallow daily content refreshes faster than the enriched insights) is
// intentional and both values are configurable.
type CacheConfig struct {
	DailyTTL    time.Duration
	InsightsTTL time.Duration
}

// CachedService puts the time-boxed cache and degradation policy in front of
// the orchestrator. Its availability contract: DailyTransits and
// TransitInsights always return something plausible, live, cached or static,
// except for user-actionable enrichment limits which surface unchanged.
type CachedService struct {
	inner  Service
	store  Store
	cfg    CacheConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewCachedService wraps the orchestrator with the cache policy.
func NewCachedService(inner Service, store Store, cfg CacheConfig, logger *slog.Logger) *CachedService {
	if cfg.DailyTTL <= 0 {
		cfg.DailyTTL = 6 * time.Hour
	}
	if cfg.InsightsTTL <= 0 {
		cfg.InsightsTTL = 12 * time.Hour
	}
	return &CachedService{
		inner:  inner,
		store:  store,
		cfg:    cfg,
		logger: logger.With("component", "horoscope.cache"),
		now:    time.Now,
	}
}

// DailyTransits serves from cache within the daily TTL and falls back to the
// static payload when the orchestrator cannot produce a fresh one.
func (c *CachedService) DailyTransits(ctx context.Context) (DailyTransits, error) {
	var cached DailyTransits
	if c.lookup(ctx, dailyCacheKey, c.cfg.DailyTTL, &cached) {
		return cached, nil
	}

	fresh, err := c.inner.DailyTransits(ctx)
	if err != nil {
		c.logger.Error("daily transit synthesis failed, serving static fallback", "error", err)
		return FallbackDailyTransits(), nil
	}
	c.persist(ctx, dailyCacheKey, c.cfg.DailyTTL, fresh)
	return fresh, nil
}

// TransitInsights serves from cache within the insights TTL. Rate-limit and
// quota errors surface to the caller (they carry user guidance); any other
// failure degrades to the static fallback.
func (c *CachedService) TransitInsights(ctx context.Context) (TransitInsights, error) {
	var cached TransitInsights
	if c.lookup(ctx, insightsCacheKey, c.cfg.InsightsTTL, &cached) {
		return cached, nil
	}

	fresh, err := c.inner.TransitInsights(ctx)
	if err != nil {
		if apperrors.IsCode(err, "rate_limited") || apperrors.IsCode(err, "quota_exhausted") {
			return TransitInsights{}, err
		}
		c.logger.Error("transit insight synthesis failed, serving static fallback", "error", err)
		return FallbackTransitInsights(c.now()), nil
	}
	c.persist(ctx, insightsCacheKey, c.cfg.InsightsTTL, fresh)
	return fresh, nil
}

// lookup reads and validates a cache entry. Corruption of any kind (store
// error, bad envelope, bad payload, wrong version) counts as a miss and must
// never break the request path.
func (c *CachedService) lookup(ctx context.Context, key string, ttl time.Duration, out any) bool {
	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed, treating as miss", "key", key, "error", err)
		return false
	}
	if !found {
		return false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn("cache entry corrupted, treating as miss", "key", key, "error", err)
		return false
	}
	if env.Version != envelopeVersion {
		return false
	}
	age := c.now().UnixMilli() - env.CapturedAt
	if age < 0 || age >= ttl.Milliseconds() {
		return false
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.logger.Warn("cache payload corrupted, treating as miss", "key", key, "error", err)
		return false
	}
	return true
}

// persist overwrites the feature's slot with a fully-formed payload. A
// failed write is logged and ignored: caching is an optimization, never a
// correctness requirement.
func (c *CachedService) persist(ctx context.Context, key string, ttl time.Duration, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("cache payload marshal failed", "key", key, "error", err)
		return
	}
	env, err := json.Marshal(envelope{
		Data:       data,
		CapturedAt: c.now().UnixMilli(),
		Version:    envelopeVersion,
	})
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, env, ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

var _ Service = (*CachedService)(nil)
