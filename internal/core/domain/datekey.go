package domain

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrFutureDate  = errors.New("date is in the future")
)

const (
	DateLayout = "2006-01-02"
	msPerDay   = 24 * 60 * 60 * 1000
)

// DateKey is a local calendar day in canonical YYYY-MM-DD form.
// Lexicographic order of DateKeys equals chronological order.
type DateKey string

func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Format(DateLayout))
}

func (d DateKey) String() string {
	return string(d)
}

func (d DateKey) Valid() bool {
	if len(d) != len(DateLayout) {
		return false
	}
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == string(d)
}

// Time returns local midnight of the day. Malformed keys give the zero time.
func (d DateKey) Time() time.Time {
	t, err := time.ParseInLocation(DateLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d DateKey) AddDays(n int) DateKey {
	t := d.Time()
	return DateKeyOf(time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location()))
}

func (d DateKey) Before(other DateKey) bool {
	return d < other
}

func (d DateKey) After(other DateKey) bool {
	return d > other
}

// DayDifference returns the signed number of whole days from `from` to `to`.
func DayDifference(from, to DateKey) int {
	delta := to.Time().Sub(from.Time()).Milliseconds()
	return int(math.Round(float64(delta) / msPerDay))
}

// DaysBetween lists every day from start to end inclusive.
func DaysBetween(start, end DateKey) []DateKey {
	if end.Before(start) {
		return nil
	}
	days := make([]DateKey, 0, DayDifference(start, end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
