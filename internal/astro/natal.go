package astro

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTime reports a birth time outside the HH:MM contract.
var ErrInvalidTime = errors.New("invalid birth time")

// Placement positions one body inside a chart.
type Placement struct {
	Sign   Sign    `json:"sign"`
	Degree float64 `json:"degree"`
	House  int     `json:"house,omitempty"`
}

// HouseCusp is one of the 12 house boundaries of a precise chart.
type HouseCusp struct {
	Sign   Sign    `json:"sign"`
	Degree float64 `json:"degree"`
}

// Aspect is an angular relationship between two bodies.
type Aspect struct {
	First  string  `json:"first"`
	Second string  `json:"second"`
	Type   string  `json:"type"`
	Angle  float64 `json:"angle,omitempty"`
}

// Chart is a natal chart. IsApproximation distinguishes the coarse local
// computation from precise provider output; every consumer must branch on it
// rather than assume precision.
type Chart struct {
	Sun       Placement   `json:"sun"`
	Moon      Placement   `json:"moon"`
	Ascendant Placement   `json:"ascendant"`
	Mercury   *Placement  `json:"mercury,omitempty"`
	Venus     *Placement  `json:"venus,omitempty"`
	Mars      *Placement  `json:"mars,omitempty"`
	Jupiter   *Placement  `json:"jupiter,omitempty"`
	Saturn    *Placement  `json:"saturn,omitempty"`
	Uranus    *Placement  `json:"uranus,omitempty"`
	Neptune   *Placement  `json:"neptune,omitempty"`
	Pluto     *Placement  `json:"pluto,omitempty"`
	Houses    []HouseCusp `json:"houses,omitempty"`
	Aspects   []Aspect    `json:"aspects,omitempty"`

	CalculatedAt    time.Time `json:"calculatedAt"`
	IsApproximation bool      `json:"isApproximation"`
}

// ApproximateChart derives a coarse natal chart from birth date, an HH:MM
// birth time and the birth latitude. It always succeeds for well-formed
// input and is always flagged as an approximation.
//
// The ascendant mapping is a stand-in for the real latitude-dependent house
// cusp calculation: 120-minute buckets through the day, shifted by one sign
// per 30 degrees of absolute latitude.
func ApproximateChart(birthDate time.Time, birthTime string, latitude float64) (Chart, error) {
	hours, minutes, err := parseClock(birthTime)
	if err != nil {
		return Chart{}, err
	}

	sunSign, err := SunSignFor(birthDate.Month(), birthDate.Day())
	if err != nil {
		return Chart{}, err
	}

	birthMoment := time.Date(
		birthDate.Year(), birthDate.Month(), birthDate.Day(),
		hours, minutes, 0, 0, time.UTC,
	)
	moonSign := LunarStateAt(birthMoment).Sign

	totalMinutes := hours*60 + minutes
	ascIndex := (totalMinutes/120 + int(math.Floor(math.Abs(latitude)/30))) % 12

	month := int(birthDate.Month())
	return Chart{
		Sun:             Placement{Sign: sunSign, House: 1},
		Moon:            Placement{Sign: moonSign, House: ((month + 4) % 12) + 1},
		Ascendant:       Placement{Sign: Sign(ascIndex)},
		CalculatedAt:    time.Now().UTC(),
		IsApproximation: true,
	}, nil
}

func parseClock(value string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return hours, minutes, nil
}
