package astro

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate reports a (month, day) pair outside the calendar range.
var ErrInvalidDate = errors.New("invalid calendar date")

// sunBoundaries records the fixed calendar window of each sign. These are
// flat day-of-month cutoffs, not astronomical cusps; a date exactly on the
// start boundary already belongs to the new sign.
var sunBoundaries = []struct {
	sign       Sign
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}{
	{Capricorn, time.December, 22, time.January, 19},
	{Aquarius, time.January, 20, time.February, 18},
	{Pisces, time.February, 19, time.March, 20},
	{Aries, time.March, 21, time.April, 19},
	{Taurus, time.April, 20, time.May, 20},
	{Gemini, time.May, 21, time.June, 20},
	{Cancer, time.June, 21, time.July, 22},
	{Leo, time.July, 23, time.August, 22},
	{Virgo, time.August, 23, time.September, 22},
	{Libra, time.September, 23, time.October, 22},
	{Scorpio, time.October, 23, time.November, 21},
	{Sagittarius, time.November, 22, time.December, 21},
}

// SunSignFor maps a year-agnostic (month, day) pair to the tropical sun sign.
// Every valid date resolves to exactly one sign; out-of-range input is a
// caller contract violation reported as ErrInvalidDate.
func SunSignFor(month time.Month, day int) (Sign, error) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return 0, fmt.Errorf("%w: month=%d day=%d", ErrInvalidDate, month, day)
	}
	for _, b := range sunBoundaries {
		if (month == b.startMonth && day >= b.startDay) || (month == b.endMonth && day <= b.endDay) {
			return b.sign, nil
		}
	}
	// Unreachable for valid input: each month appears as a start and an end.
	return 0, fmt.Errorf("%w: month=%d day=%d", ErrInvalidDate, month, day)
}

// SunState is the Sun's approximate position for a given moment, including
// the calendar validity window of the active sign.
type SunState struct {
	Sign      Sign      `json:"sign"`
	Degree    int       `json:"degree"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// SunStateAt resolves the active sun sign for t plus its degree and window.
// Degree advances with the day of month, wrapped to [0,30).
func SunStateAt(t time.Time) SunState {
	month, day := t.Month(), t.Day()
	for _, b := range sunBoundaries {
		if (month == b.startMonth && day >= b.startDay) || (month == b.endMonth && day <= b.endDay) {
			degree := day
			if b.sign == Capricorn {
				degree = day + 8
			}
			// Capricorn spans the year boundary. Anchor the window around t
			// so StartDate never lands after EndDate.
			startYear, endYear := t.Year(), t.Year()
			if b.startMonth > b.endMonth {
				if month == b.endMonth {
					startYear--
				} else {
					endYear++
				}
			}
			return SunState{
				Sign:      b.sign,
				Degree:    degree % 30,
				StartDate: time.Date(startYear, b.startMonth, b.startDay, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(endYear, b.endMonth, b.endDay, 0, 0, 0, 0, time.UTC),
			}
		}
	}
	return SunState{Sign: Sagittarius}
}
