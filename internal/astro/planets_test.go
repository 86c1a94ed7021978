package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestElementPartition(t *testing.T) {
	counts := make(map[Element]int)
	for i := 0; i < 12; i++ {
		counts[ElementOf(Sign(i))]++
	}
	require.Len(t, counts, 4)
	for element, count := range counts {
		require.Equal(t, 3, count, "element %s", element)
	}
}

func TestFastPlanetSignSweepsAllSigns(t *testing.T) {
	for _, planet := range []Planet{Mercury, Venus, Mars} {
		seen := make(map[Sign]struct{})
		for day := 0; day < 600; day++ {
			sign, err := FastPlanetSign(planet, day)
			require.NoError(t, err)
			seen[sign] = struct{}{}
		}
		require.Len(t, seen, 12, "planet %s", planet)
	}
}

func TestFastPlanetSignRejectsSlowBodies(t *testing.T) {
	_, err := FastPlanetSign(Jupiter, 100)
	require.ErrorIs(t, err, ErrSlowPlanet)
	_, err = FastPlanetSign(Saturn, 100)
	require.ErrorIs(t, err, ErrSlowPlanet)
}

func TestTransitWindows(t *testing.T) {
	now := time.Date(2025, time.August, 30, 10, 0, 0, 0, time.UTC)
	windows := TransitWindows(now, DefaultSlowPlanetWindows())
	require.Len(t, windows, 5)

	for _, w := range windows {
		require.Equal(t, ElementOf(w.Sign), w.Element)
		start, err := time.Parse(dateLayout, w.StartDate)
		require.NoError(t, err)
		end, err := time.Parse(dateLayout, w.EndDate)
		require.NoError(t, err)
		require.False(t, end.Before(start), "planet %s", w.Planet)
		require.NotEmpty(t, w.LifeArea)
		require.NotEmpty(t, w.Degree)
	}

	require.Equal(t, "Mercúrio", windows[0].Planet)
	require.Equal(t, "Júpiter", windows[3].Planet)
	require.True(t, windows[3].Retrograde)
	require.Equal(t, "Saturno", windows[4].Planet)
	require.Equal(t, Pisces, windows[4].Sign)
}

func TestSlowPlanetWindowStale(t *testing.T) {
	w := SlowPlanetWindow{
		ValidFrom:  time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	require.False(t, w.Stale(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, w.Stale(time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, w.Stale(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
