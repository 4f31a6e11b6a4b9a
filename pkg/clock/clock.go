// Package clock abstracts time so calendar-day logic (streaks, daily task
// rotation) can be tested against a fixed date.
package clock

import "time"

// DateLayout is the ISO calendar date format used for every persisted date.
const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

var _ Clock = RealClock{}

// Fixed always returns the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

// Today formats the calendar date of c.Now() in loc.
// A nil loc means the clock's own location.
func Today(c Clock, loc *time.Location) string {
	now := c.Now()
	if loc != nil {
		now = now.In(loc)
	}
	return now.Format(DateLayout)
}

// Yesterday formats the calendar date before Today.
func Yesterday(c Clock, loc *time.Location) string {
	now := c.Now()
	if loc != nil {
		now = now.In(loc)
	}
	return now.AddDate(0, 0, -1).Format(DateLayout)
}
