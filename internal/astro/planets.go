package astro

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Planet identifies a transit-relevant body.
type Planet int

const (
	Mercury Planet = iota
	Venus
	Mars
	Jupiter
	Saturn
)

var planetInfo = [5]struct {
	name  string
	label string
	icon  string
}{
	{"Mercury", "Mercúrio", "☿️"},
	{"Venus", "Vênus", "♀️"},
	{"Mars", "Marte", "♂️"},
	{"Jupiter", "Júpiter", "♃"},
	{"Saturn", "Saturno", "♄"},
}

func (p Planet) String() string {
	if p < 0 || int(p) >= len(planetInfo) {
		return fmt.Sprintf("Planet(%d)", int(p))
	}
	return planetInfo[p].name
}

// Label returns the display name used in user-facing content.
func (p Planet) Label() string { return planetInfo[p].label }

// Icon returns the astrological glyph for the planet.
func (p Planet) Icon() string { return planetInfo[p].icon }

// ParsePlanet resolves a planet from its English name.
func ParsePlanet(name string) (Planet, bool) {
	for i, info := range planetInfo {
		if strings.EqualFold(info.name, strings.TrimSpace(name)) {
			return Planet(i), true
		}
	}
	return 0, false
}

// ErrSlowPlanet reports an attempt to compute a slow body whose position is
// static configuration, not a formula.
var ErrSlowPlanet = errors.New("slow planet positions are configured, not computed")

// fastPeriodDivisors make each fast body sweep the 12 signs within a
// plausible synodic period. Crude periodic approximations, nothing more.
var fastPeriodDivisors = map[Planet]int{
	Mercury: 30,
	Venus:   25,
	Mars:    45,
}

// FastPlanetSign maps a day of year to the approximate sign of a fast-moving
// body (Mercury, Venus, Mars). Jupiter and Saturn fail with ErrSlowPlanet.
func FastPlanetSign(p Planet, dayOfYear int) (Sign, error) {
	divisor, ok := fastPeriodDivisors[p]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSlowPlanet, p)
	}
	if dayOfYear < 0 {
		dayOfYear = 0
	}
	return Sign((dayOfYear / divisor) % 12), nil
}

// SlowPlanetWindow is a hand-maintained transit entry for a slow body, valid
// only inside its window. Maintainers refresh these out-of-band; consumers
// must check Stale before trusting them.
type SlowPlanetWindow struct {
	Planet          Planet
	Sign            Sign
	Retrograde      bool
	Degree          int
	StartOffsetDays int
	EndOffsetDays   int
	LifeArea        string
	ValidFrom       time.Time
	ValidUntil      time.Time
	Version         string
}

// Stale reports whether the entry's validity window has lapsed at now.
func (w SlowPlanetWindow) Stale(now time.Time) bool {
	return now.Before(w.ValidFrom) || now.After(w.ValidUntil)
}

// DefaultSlowPlanetWindows is the current epoch snapshot for Jupiter and
// Saturn. Refresh the positions and bump the version when the window lapses.
func DefaultSlowPlanetWindows() []SlowPlanetWindow {
	return []SlowPlanetWindow{
		{
			Planet:          Jupiter,
			Sign:            Gemini,
			Retrograde:      true,
			Degree:          18,
			StartOffsetDays: -60,
			EndOffsetDays:   90,
			LifeArea:        lifeAreaSelfKnowledge,
			ValidFrom:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			ValidUntil:      time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
			Version:         "2025-06",
		},
		{
			Planet:          Saturn,
			Sign:            Pisces,
			Retrograde:      false,
			Degree:          2,
			StartOffsetDays: -90,
			EndOffsetDays:   120,
			LifeArea:        lifeAreaSpirituality,
			ValidFrom:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			ValidUntil:      time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
			Version:         "2025-06",
		},
	}
}

// Life-area tags ride along each transit so the UI can group guidance.
const (
	lifeAreaCommunication = "comunicacao"
	lifeAreaRelationships = "relacionamentos"
	lifeAreaCareer        = "carreira"
	lifeAreaSelfKnowledge = "autoconhecimento"
	lifeAreaSpirituality  = "espiritualidade"
)

// TransitWindow is one currently-active planetary position plus the
// narrative fields filled in later by enrichment.
type TransitWindow struct {
	Planet     string  `json:"planet"`
	Icon       string  `json:"icon"`
	Sign       Sign    `json:"sign"`
	Retrograde bool    `json:"retrograde,omitempty"`
	Degree     string  `json:"degree"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Element    Element `json:"element"`
	LifeArea   string  `json:"lifeArea"`
	Message    string  `json:"message,omitempty"`
	Advice     string  `json:"advice,omitempty"`
}

const dateLayout = "2006-01-02"

// TransitWindows assembles the fixed five-entry transit list for now: three
// computed fast bodies plus the configured slow ones. Elements derive from
// the sign; start always precedes end.
func TransitWindows(now time.Time, slow []SlowPlanetWindow) []TransitWindow {
	dayOfYear := now.YearDay()

	fast := []struct {
		planet        Planet
		degreeFactor  int
		endOffsetDays int
		lifeArea      string
	}{
		{Mercury, 3, 20, lifeAreaCommunication},
		{Venus, 2, 25, lifeAreaRelationships},
		{Mars, 1, 45, lifeAreaCareer},
	}

	windows := make([]TransitWindow, 0, len(fast)+len(slow))
	for _, f := range fast {
		sign, err := FastPlanetSign(f.planet, dayOfYear)
		if err != nil {
			continue
		}
		windows = append(windows, TransitWindow{
			Planet:    f.planet.Label(),
			Icon:      f.planet.Icon(),
			Sign:      sign,
			Degree:    fmt.Sprintf("%d°", (dayOfYear*f.degreeFactor)%30),
			StartDate: now.Format(dateLayout),
			EndDate:   now.AddDate(0, 0, f.endOffsetDays).Format(dateLayout),
			Element:   ElementOf(sign),
			LifeArea:  f.lifeArea,
		})
	}

	for _, s := range slow {
		windows = append(windows, TransitWindow{
			Planet:     s.Planet.Label(),
			Icon:       s.Planet.Icon(),
			Sign:       s.Sign,
			Retrograde: s.Retrograde,
			Degree:     fmt.Sprintf("%d°", s.Degree),
			StartDate:  now.AddDate(0, 0, s.StartOffsetDays).Format(dateLayout),
			EndDate:    now.AddDate(0, 0, s.EndOffsetDays).Format(dateLayout),
			Element:    ElementOf(s.Sign),
			LifeArea:   s.LifeArea,
		})
	}
	return windows
}
