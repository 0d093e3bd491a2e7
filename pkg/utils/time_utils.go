package utils

import (
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// Dates are kept as midnight UTC so comparisons never depend on the server zone.

func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func FormatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func FormatDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := FormatDate(*d)
	return &s
}

// DateOf keeps the calendar day of t as seen in t's own location.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Today is the current calendar day in loc.
func Today(now time.Time, loc *time.Location) datatypes.Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

func AddDays(d datatypes.Date, days int) datatypes.Date {
	return DateOf(time.Time(d).AddDate(0, 0, days))
}

func DateBefore(a, b datatypes.Date) bool {
	return time.Time(DateOf(time.Time(a))).Before(time.Time(DateOf(time.Time(b))))
}

func DateAfter(a, b datatypes.Date) bool {
	return DateBefore(b, a)
}

// LoadLocation falls back to UTC when the zone database lacks name.
func LoadLocation(name string) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}
