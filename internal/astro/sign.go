// Package astro holds the deterministic astronomy approximations behind the
// product: calendar-boundary sun signs, cyclic moon sign/phase, synthetic
// fast-planet motion and the natal chart fallback. None of this is
// ephemeris-grade and it must never be presented as such; the formulas are
// tuned to produce plausible daily content, not accurate sky positions.
package astro

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Sign is one of the 12 tropical zodiac signs, in their cyclic order.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// MarshalJSON serializes the sign by name so payloads stay readable.
func (s Sign) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts sign names case-insensitively.
func (s *Sign) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := ParseSign(name)
	if !ok {
		return fmt.Errorf("unknown zodiac sign %q", name)
	}
	*s = parsed
	return nil
}

// ParseSign resolves a sign from its English name.
func ParseSign(name string) (Sign, bool) {
	trimmed := strings.TrimSpace(name)
	for i, candidate := range signNames {
		if strings.EqualFold(candidate, trimmed) {
			return Sign(i), true
		}
	}
	return 0, false
}

// Element is the classical element a sign belongs to.
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

// ElementOf maps each sign to its element. The 12 signs partition evenly
// into four groups of three.
func ElementOf(s Sign) Element {
	switch s {
	case Aries, Leo, Sagittarius:
		return Fire
	case Taurus, Virgo, Capricorn:
		return Earth
	case Gemini, Libra, Aquarius:
		return Air
	default:
		return Water
	}
}
