package engine

import "time"

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the local wall clock truncated to a fixed granularity.
type SystemClock struct {
	// Granularity defaults to one second.
	Granularity time.Duration
}

// Now returns the local time truncated to the clock granularity.
func (c SystemClock) Now() time.Time {
	granularity := c.Granularity
	if granularity <= 0 {
		granularity = time.Second
	}

	return time.Now().Truncate(granularity)
}

// minuteOf returns the start of the calendar minute containing t.
func minuteOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}
