package astro

import (
	"math"
	"time"
)

// Phase is one of the eight conventional lunar phases.
type Phase string

const (
	NewMoon        Phase = "New"
	WaxingCrescent Phase = "Waxing Crescent"
	FirstQuarter   Phase = "First Quarter"
	WaxingGibbous  Phase = "Waxing Gibbous"
	FullMoon       Phase = "Full"
	WaningGibbous  Phase = "Waning Gibbous"
	LastQuarter    Phase = "Last Quarter"
	WaningCrescent Phase = "Waning Crescent"
)

const (
	// synodicMonthDays drives the phase cycle as seen from Earth.
	synodicMonthDays = 29.53
	// siderealCycleDays drives the moon-sign cycle. The two cycles are
	// independent and deliberately not reconciled to true lunar mechanics.
	siderealCycleDays = 27.3

	millisPerDay = 1000 * 60 * 60 * 24
)

// knownNewMoon anchors the phase cycle to the new moon of 2000-01-06.
var knownNewMoon = time.Date(2000, time.January, 6, 0, 0, 0, 0, time.UTC)

// LunarState is the Moon's approximate sign, phase and degree at a moment.
type LunarState struct {
	Sign         Sign    `json:"sign"`
	Phase        Phase   `json:"phase"`
	DegreeInSign float64 `json:"degreeInSign"`
}

// LunarStateAt derives the lunar state for t. Total and pure: the same
// timestamp always yields the same state.
func LunarStateAt(t time.Time) LunarState {
	daysSinceEpoch := math.Floor(float64(t.UnixMilli()) / millisPerDay)

	signPos := positiveMod(daysSinceEpoch, siderealCycleDays) / (siderealCycleDays / 12)
	signIndex := int(math.Floor(signPos)) % 12

	degree := positiveMod(daysSinceEpoch, siderealCycleDays/12) * 13
	if degree >= 30 {
		degree = math.Mod(degree, 30)
	}

	return LunarState{
		Sign:         Sign(signIndex),
		Phase:        phaseAt(t),
		DegreeInSign: degree,
	}
}

func phaseAt(t time.Time) Phase {
	daysSinceNew := float64(t.UnixMilli()-knownNewMoon.UnixMilli()) / millisPerDay
	fraction := positiveMod(daysSinceNew, synodicMonthDays) / synodicMonthDays

	switch {
	case fraction < 0.03 || fraction > 0.97:
		return NewMoon
	case fraction < 0.22:
		return WaxingCrescent
	case fraction < 0.28:
		return FirstQuarter
	case fraction < 0.47:
		return WaxingGibbous
	case fraction < 0.53:
		return FullMoon
	case fraction < 0.72:
		return WaningGibbous
	case fraction < 0.78:
		return LastQuarter
	default:
		return WaningCrescent
	}
}

func positiveMod(value, modulus float64) float64 {
	m := math.Mod(value, modulus)
	if m < 0 {
		m += modulus
	}
	return m
}
