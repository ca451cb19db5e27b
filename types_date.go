package stocksum

import (
	"fmt"
	"time"
)

// DateFormat is the format used for user-supplied and ledger dates.
const DateFormat = "02/01/2006" // DD/MM/YYYY

// SeriesDateFormat is the short format used in the portfolio snapshot series.
const SeriesDateFormat = "02/01/06" // DD/MM/YY

// Date represents a calendar date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// ParseDate parses a date in DD/MM/YYYY format.
//
// Parsing is strict: the input must round-trip to the exact same string,
// so "1/2/2023" or "2023-02-01" are rejected with ErrInvalidDateFormat.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil || t.Format(DateFormat) != s {
		return Date{}, fmt.Errorf("%w: %q is not a valid DD/MM/YYYY date", ErrInvalidDateFormat, s)
	}
	return NewDate(t.Date()), nil
}

// MustParseDate parses a date in DD/MM/YYYY format and panics on error.
// Intended for tests and static initialization.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// parseSeriesDate parses the short DD/MM/YY date used in the snapshot series.
func parseSeriesDate(s string) (Date, error) {
	t, err := time.Parse(SeriesDateFormat, s)
	if err != nil || t.Format(SeriesDateFormat) != s {
		return Date{}, fmt.Errorf("%w: %q is not a valid DD/MM/YY date", ErrInvalidDateFormat, s)
	}
	return NewDate(t.Date()), nil
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in DD/MM/YYYY.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Series formats the date in the short DD/MM/YY form used in the snapshot log.
func (d Date) Series() string { return d.time().Format(SeriesDateFormat) }

// IsZero reports whether the date is the zero value.
//
// The zero date is meaningful on its own: market-data lookups interpret it
// as "latest" rather than a historical point in time.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument. See [time.Format].
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }
