package horoscope

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lunara/astro-api/internal/astro"
	apperrors "github.com/lunara/astro-api/pkg/errors"
)

type fakeStore struct {
	entries map[string][]byte
	getErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string][]byte)}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	payload, ok := s.entries[key]
	return payload, ok, nil
}

func (s *fakeStore) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	s.entries[key] = payload
	return nil
}

type countingService struct {
	daily    DailyTransits
	insights TransitInsights
	err      error

	dailyCalls    int
	insightsCalls int
}

func (s *countingService) DailyTransits(context.Context) (DailyTransits, error) {
	s.dailyCalls++
	if s.err != nil {
		return DailyTransits{}, s.err
	}
	return s.daily, nil
}

func (s *countingService) TransitInsights(context.Context) (TransitInsights, error) {
	s.insightsCalls++
	if s.err != nil {
		return TransitInsights{}, s.err
	}
	return s.insights, nil
}

func newCached(inner Service, store Store, at time.Time) *CachedService {
	cached := NewCachedService(inner, store, CacheConfig{}, discardLogger())
	cached.now = fixedClock(at)
	return cached
}

func TestCachedDailyRoundTrip(t *testing.T) {
	start := time.Date(2025, time.August, 30, 8, 0, 0, 0, time.UTC)
	inner := &countingService{daily: DailyTransits{Date: "2025-08-30", Sun: SunToday{Sign: astro.Virgo, Message: "m"}}}
	store := newFakeStore()
	cached := newCached(inner, store, start)

	first, err := cached.DailyTransits(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, inner.dailyCalls)

	second, err := cached.DailyTransits(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, inner.dailyCalls, "cache hit must not invoke the orchestrator")
	require.Equal(t, first, second)
}

func TestCachedDailyTTLBoundary(t *testing.T) {
	start := time.Date(2025, time.August, 30, 8, 0, 0, 0, time.UTC)
	inner := &countingService{daily: DailyTransits{Date: "2025-08-30"}}
	store := newFakeStore()
	cached := newCached(inner, store, start)

	_, err := cached.DailyTransits(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, inner.dailyCalls)

	ttl := 6 * time.Hour

	cached.now = fixedClock(start.Add(ttl - time.Millisecond))
	_, err = cached.DailyTransits(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, inner.dailyCalls, "TTL-1ms must still hit")

	cached.now = fixedClock(start.Add(ttl))
	_, err = cached.DailyTransits(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, inner.dailyCalls, "exactly TTL must refetch")

	cached.now = fixedClock(start.Add(ttl).Add(ttl + time.Millisecond))
	_, err = cached.DailyTransits(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, inner.dailyCalls, "TTL+1ms must refetch")
}

func TestCachedCorruptedEntryIsMiss(t *testing.T) {
	start := time.Date(2025, time.August, 30, 8, 0, 0, 0, time.UTC)
	inner := &countingService{daily: DailyTransits{Date: "2025-08-30"}}
	store := newFakeStore()
	store.entries[dailyCacheKey] = []byte("{not json at all")
	cached := newCached(inner, store, start)

	payload, err := cached.DailyTransits(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2025-08-30", payload.Date)
	require.Equal(t, 1, inner.dailyCalls)
}

func TestCachedDailyTotalFailureServesFallback(t *testing.T) {
	start := time.Date(2025, time.August, 30, 8, 0, 0, 0, time.UTC)
	inner := &countingService{err: errors.New("boom")}
	cached := newCached(inner, newFakeStore(), start)

	payload, err := cached.DailyTransits(context.Background())
	require.NoError(t, err, "daily feature has no error state")
	require.Equal(t, astro.Scorpio, payload.Sun.Sign)
	require.Equal(t, astro.Pisces, payload.Moon.Sign)
	require.NotEmpty(t, payload.Advices)
}

func TestCachedInsightsFallbackAndPassThrough(t *testing.T) {
	start := time.Date(2025, time.August, 30, 8, 0, 0, 0, time.UTC)

	inner := &countingService{err: apperrors.Wrap("enrichment_unavailable", "down", nil)}
	cached := newCached(inner, newFakeStore(), start)
	insights, err := cached.TransitInsights(context.Background())
	require.NoError(t, err)
	require.Len(t, insights.Transits, 5, "unavailable enrichment degrades to static transits")
	require.Equal(t, astro.Scorpio, insights.Daily.Sun.Sign)
	require.NotEmpty(t, insights.Daily.Moon.Message)

	inner = &countingService{err: apperrors.Wrap("rate_limited", "wait", nil)}
	cached = newCached(inner, newFakeStore(), start)
	_, err = cached.TransitInsights(context.Background())
	require.True(t, apperrors.IsCode(err, "rate_limited"), "user-actionable limits surface unchanged")

	inner = &countingService{err: apperrors.Wrap("quota_exhausted", "pay", nil)}
	cached = newCached(inner, newFakeStore(), start)
	_, err = cached.TransitInsights(context.Background())
	require.True(t, apperrors.IsCode(err, "quota_exhausted"))
}

func TestCachedStoreErrorIsMiss(t *testing.T) {
	start := time.Date(2025, time.August, 30, 8, 0, 0, 0, time.UTC)
	inner := &countingService{daily: DailyTransits{Date: "2025-08-30"}}
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	cached := newCached(inner, store, start)

	payload, err := cached.DailyTransits(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2025-08-30", payload.Date)
}

func TestFailedSynthesisDoesNotCache(t *testing.T) {
	start := time.Date(2025, time.August, 30, 8, 0, 0, 0, time.UTC)
	inner := &countingService{err: errors.New("boom")}
	store := newFakeStore()
	cached := newCached(inner, store, start)

	_, err := cached.DailyTransits(context.Background())
	require.NoError(t, err)
	require.Empty(t, store.entries, "fallback payloads must not be persisted")
}
