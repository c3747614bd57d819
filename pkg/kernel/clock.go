package kernel

import "time"

// Clock supplies "now" for posting-date defaults and date-window filters.
// Injected so tests can pin time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock used outside tests.
var SystemClock Clock = ClockFunc(time.Now)
