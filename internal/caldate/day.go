// Package caldate provides a calendar-day value type distinct from an
// instant. A Day has no time component and no zone; it is only ever
// compared to other Days. The conversion from an instant to a Day goes
// through a Localizer carrying an explicit *time.Location, so day-level
// filtering is a testable function rather than a platform default.
package caldate

import (
	"fmt"
	"time"
)

// Day is a pure calendar day.
type Day struct {
	Year  int
	Month time.Month
	Dom   int
}

// NewDay builds a Day, normalizing out-of-range components the way
// time.Date does.
func NewDay(year int, month time.Month, dom int) Day {
	t := time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)
	return Day{Year: t.Year(), Month: t.Month(), Dom: t.Day()}
}

// ParseDay parses a Day from ISO "2006-01-02" form.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return Day{Year: t.Year(), Month: t.Month(), Dom: t.Day()}, nil
}

// String renders the Day in ISO "2006-01-02" form.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Dom)
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Dom == 0
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Dom < other.Dom
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return other.Before(d)
}

// Equal reports whether two Days name the same calendar day.
func (d Day) Equal(other Day) bool {
	return d == other
}

// Compare returns -1, 0, or 1 ordering d against other.
func (d Day) Compare(other Day) int {
	switch {
	case d.Before(other):
		return -1
	case d.After(other):
		return 1
	default:
		return 0
	}
}

// In returns the instant at local midnight of d in loc.
func (d Day) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Dom, 0, 0, 0, 0, loc)
}

// AddDays advances d by n calendar days (n may be negative).
func (d Day) AddDays(n int) Day {
	return NewDay(d.Year, d.Month, d.Dom+n)
}

// AddWeeks advances d by n*7 calendar days.
func (d Day) AddWeeks(n int) Day {
	return d.AddDays(n * 7)
}

// AddMonths advances d by n calendar months under the clamp policy: the
// day-of-month is kept when the target month has it, otherwise the result
// is the last day of the target month. Jan 31 + 1 month = Feb 28 (or 29).
func (d Day) AddMonths(n int) Day {
	year := d.Year
	month := int(d.Month) + n
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}
	dom := d.Dom
	if last := daysIn(year, time.Month(month)); dom > last {
		dom = last
	}
	return Day{Year: year, Month: time.Month(month), Dom: dom}
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Localizer converts instants to calendar days in one fixed zone. The zone
// is the viewer's, not the instant's: the backend stores instants in a
// fixed zone while all day-level filtering is local-calendar-day based.
type Localizer struct {
	loc *time.Location
}

// NewLocalizer creates a Localizer for loc. A nil loc falls back to UTC so
// the conversion stays deterministic; callers wanting the system zone pass
// time.Local explicitly.
func NewLocalizer(loc *time.Location) Localizer {
	if loc == nil {
		loc = time.UTC
	}
	return Localizer{loc: loc}
}

// Location returns the zone the Localizer converts into.
func (l Localizer) Location() *time.Location {
	return l.loc
}

// DayOf returns the calendar day t falls on in the Localizer's zone.
func (l Localizer) DayOf(t time.Time) Day {
	local := t.In(l.loc)
	return Day{Year: local.Year(), Month: local.Month(), Dom: local.Day()}
}
