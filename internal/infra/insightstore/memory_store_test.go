package insightstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	_, found, err := store.Get(context.Background(), "horoscope:daily")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set(context.Background(), "horoscope:daily", []byte(`{"a":1}`), 0))

	payload, found, err := store.Get(context.Background(), "horoscope:daily")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte(`{"a":1}`), payload)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2025, 11, 22, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(context.Background(), "k", []byte("v"), 6*time.Hour))

	current = current.Add(6*time.Hour - time.Millisecond)
	_, found, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, found)

	current = current.Add(2 * time.Millisecond)
	_, found, err = store.Get(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	store := NewMemoryStore()
	original := []byte("payload")
	require.NoError(t, store.Set(context.Background(), "k", original, 0))
	original[0] = 'x'

	payload, found, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("payload"), payload)
}
