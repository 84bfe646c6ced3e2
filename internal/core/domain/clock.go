package domain

import "time"

// Clock is the single source of "now" for everything that derives from today.
type Clock interface {
	Now() time.Time
	Today() DateKey
}

type SystemClock struct {
	Location *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Location: loc}
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

func (c SystemClock) Today() DateKey {
	return DateKeyOf(c.Now())
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func NewFixedClock(day DateKey) FixedClock {
	return FixedClock{At: day.Time().Add(12 * time.Hour)}
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func (c FixedClock) Today() DateKey {
	return DateKeyOf(c.At)
}
