package model

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for planner day keys.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, held as UTC midnight.
type Date struct {
	t time.Time
}

// NewDate builds a date from its calendar parts. Out of range parts are
// normalized the way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a yyyy-mm-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected yyyy-mm-dd", s)
	}
	return Date{t: t}, nil
}

// DateIn returns the calendar date of t as observed in loc.
func DateIn(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return NewDate(t.Year(), t.Month(), t.Day())
}

// UTCDate truncates t to the UTC calendar date it falls on.
func UTCDate(t time.Time) Date {
	return DateIn(t, time.UTC)
}

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Time returns UTC midnight of the date.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the whole number of days from o to d, negative when d is earlier.
func (d Date) DaysSince(o Date) int {
	return int(d.t.Sub(o.t).Hours() / 24)
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func (d Date) ISOWeekday() int {
	wd := int(d.t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
