package horoscope

import (
	"time"

	"github.com/lunara/astro-api/internal/astro"
)

// SunToday is the Sun portion of the daily payload.
type SunToday struct {
	Sign    astro.Sign `json:"sign"`
	Message string     `json:"message"`
}

// MoonToday is the Moon portion of the daily payload.
type MoonToday struct {
	Sign    astro.Sign  `json:"sign"`
	Phase   astro.Phase `json:"phase"`
	Message string      `json:"message"`
}

// DailyTransits is the deterministic "today's energy" payload. It is created
// fresh per request and invalidated purely by elapsed wall-clock time.
type DailyTransits struct {
	Date         string    `json:"date"`
	Sun          SunToday  `json:"sun"`
	Moon         MoonToday `json:"moon"`
	DailyEnergy  string    `json:"dailyEnergy"`
	Advices      []string  `json:"advices"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

// Daily pairs the day's luminary states with their narratives inside the
// insights payload.
type Daily struct {
	Sun  SunToday  `json:"sun"`
	Moon MoonToday `json:"moon"`
}

// TransitInsights is the enriched payload: the day's Sun and Moon snapshot
// plus the fixed transit list with AI-provided narrative merged in.
type TransitInsights struct {
	Date     time.Time             `json:"date"`
	Daily    Daily                 `json:"daily"`
	Transits []astro.TransitWindow `json:"transits"`
}

// Config wires runtime settings for the horoscope domain.
type Config struct {
	Model       string
	Temperature float32
	Prompt      string
	SlowPlanets []astro.SlowPlanetWindow
}
