package daily

import (
	"fmt"
	"strconv"
	"time"
)

const (
	minYear = 1
	maxYear = 9999

	// DateLayout is the canonical text form of a DateKey.
	DateLayout = "2006-01-02"
)

// DateKey is a calendar date without time of day.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDateKey returns a validated date.
func NewDateKey(year int, month time.Month, day int) (DateKey, error) {
	d := DateKey{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return DateKey{}, err
	}
	return d, nil
}

// DateKeyFromTime returns the calendar date of t in t's location.
func DateKeyFromTime(t time.Time) DateKey {
	year, month, day := t.Date()
	return DateKey{Year: year, Month: month, Day: day}
}

// ParseDateKey parses date in the YYYY-MM-DD form.
func ParseDateKey(s string) (DateKey, error) {
	if len(s) != len(DateLayout) || s[4] != '-' || s[7] != '-' {
		return DateKey{}, InvalidDateError{Value: s}
	}

	var parts [3]int
	for i, p := range [3]string{s[:4], s[5:7], s[8:]} {
		for _, c := range p {
			if c < '0' || c > '9' {
				return DateKey{}, InvalidDateError{Value: s}
			}
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return DateKey{}, InvalidDateError{Value: s}
		}
		parts[i] = v
	}

	d := DateKey{Year: parts[0], Month: time.Month(parts[1]), Day: parts[2]}
	if err := d.Validate(); err != nil {
		return DateKey{}, InvalidDateError{Year: d.Year, Month: d.Month, Day: d.Day, Value: s}
	}
	return d, nil
}

// Validate verifies that date exists in the calendar.
func (d DateKey) Validate() error {
	if d.Year < minYear || d.Year > maxYear || d.Month < time.January || d.Month > time.December ||
		d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
		return InvalidDateError{Year: d.Year, Month: d.Month, Day: d.Day}
	}
	return nil
}

// String returns the canonical YYYY-MM-DD form.
func (d DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight of the date in loc.
func (d DateKey) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n days after d (before, if n is negative).
func (d DateKey) AddDays(n int) DateKey {
	return DateKeyFromTime(d.Time(time.UTC).AddDate(0, 0, n))
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
