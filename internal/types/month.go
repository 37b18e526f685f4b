// Package types implements special value types shared across the core.
package types

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Month is a month in a specific year.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs, in UTC.
func MonthOf(t time.Time) Month {
	year, month, _ := t.UTC().Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" or "YYYY-MM-DD" string and returns the
// Month it falls in. The day, when present, is ignored.
func ParseMonth(s string) (Month, error) {
	match, err := regexp.MatchString(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`, s)
	if err != nil {
		return Month{}, err
	}

	pattern := "2006-01"
	if match {
		pattern = "2006-01-02"
	}

	t, err := time.Parse(pattern, s)
	if err != nil {
		return Month{}, err
	}
	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return time.Time(m).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Everything but the year and month of the parsed value is ignored.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	parsed, err := ParseMonth(value)
	if err != nil {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return err
		}
		parsed = MonthOf(t)
	}

	*m = parsed
	return nil
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// First returns the first instant of the month.
func (m Month) First() time.Time {
	return time.Time(m)
}

// Next returns the first instant of the following month.
func (m Month) Next() time.Time {
	return time.Time(m).AddDate(0, 1, 0)
}

// Len returns the number of days in the month.
func (m Month) Len() int {
	return m.Next().AddDate(0, 0, -1).Day()
}

// Day returns midnight UTC of the given day of the month. Days past the
// end of the month are clamped to its last day, so day 31 in February
// 2024 yields February 29th, never a date in March.
func (m Month) Day(day int) time.Time {
	if last := m.Len(); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	t := time.Time(m)
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC)
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}
