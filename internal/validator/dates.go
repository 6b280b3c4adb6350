package validator

import (
	"fmt"
	"strings"
	"time"
)

// isoLayout renders instants the way verifier apps display them.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate accepts full dates, RFC 3339 date-times, and the partial
// year-month and year-only dates DCCs use for unknown birth days. Values
// without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// AddDays shifts t by n days. Rules may carry fractional values.
func AddDays(t time.Time, n float64) time.Time {
	return t.Add(time.Duration(n * float64(24*time.Hour)))
}

// AddHours shifts t by n hours.
func AddHours(t time.Time, n float64) time.Time {
	return t.Add(time.Duration(n * float64(time.Hour)))
}

// StartOfDay is 00:00:00.000 UTC of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay is 23:59:59.999 UTC of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Millisecond)
}

// IsAtLeastYearsOld compares whole years between birth and asOf. asOf is
// truncated to midnight and birth to midnight plus one millisecond, so a
// birthday on the day of the check does not count yet.
func IsAtLeastYearsOld(birth, asOf time.Time, years int) bool {
	now := StartOfDay(asOf)
	dob := StartOfDay(birth).Add(time.Millisecond)
	age := time.Unix(0, 0).UTC().Add(now.Sub(dob)).Year() - 1970
	return age >= years
}

// holderOver50 is false when the birth date cannot be read.
func holderOver50(dateOfBirth string, asOf time.Time) bool {
	birth, err := ParseDate(dateOfBirth)
	if err != nil {
		return false
	}
	return IsAtLeastYearsOld(birth, asOf, 50)
}

func iso(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
