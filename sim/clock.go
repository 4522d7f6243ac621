package sim

import "time"

// Clock is a manual time source. Sleep advances Now without blocking,
// so a Device driven by it runs at full speed while still seeing the
// configured settle times.
type Clock struct {
	T     time.Time
	Slept time.Duration
}

func NewClock() *Clock {
	return &Clock{T: time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	return c.T
}

func (c *Clock) Sleep(d time.Duration) {
	c.T = c.T.Add(d)
	c.Slept += d
}
