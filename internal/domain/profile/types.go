package profile

import (
	"encoding/json"
	"time"
)

// Profile is the single per-user record holding birth data and the latest
// computed chart. There is no history: updates overwrite in place.
type Profile struct {
	UserID         int64           `json:"userId"`
	BirthDate      *time.Time      `json:"birthDate,omitempty"`
	BirthTime      string          `json:"birthTime,omitempty"`
	BirthLatitude  *float64        `json:"birthLatitude,omitempty"`
	BirthLongitude *float64        `json:"birthLongitude,omitempty"`
	SunSign        string          `json:"sunSign,omitempty"`
	MoonSign       string          `json:"moonSign,omitempty"`
	AscendantSign  string          `json:"ascendantSign,omitempty"`
	AstroData      json.RawMessage `json:"astroData,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// HasBirthData reports whether the record is complete enough for chart
// generation. Latitude and longitude are optional; date and time are not.
func (p Profile) HasBirthData() bool {
	return p.BirthDate != nil && p.BirthTime != ""
}

// ChartUpdate carries the computed signs and serialized chart written back
// after generation.
type ChartUpdate struct {
	SunSign       string
	MoonSign      string
	AscendantSign string
	AstroData     json.RawMessage
}
