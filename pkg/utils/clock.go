package utils

import (
	"time"

	"gorm.io/datatypes"
)

// Clock answers "now" and "today" in the business timezone.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

func NewClock(loc *time.Location) Clock {
	return Clock{now: time.Now, loc: loc}
}

// FixedClock always reports t.
func FixedClock(t time.Time, loc *time.Location) Clock {
	return Clock{now: func() time.Time { return t }, loc: loc}
}

func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c Clock) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func (c Clock) Today() datatypes.Date {
	return Today(c.Now(), c.Location())
}
