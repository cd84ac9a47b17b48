package animation

import "time"

// Clock is a pausable monotonic elapsed-time source shared by all mixers.
type Clock struct {
	now     func() time.Time
	started time.Time     // wall time of the last Start
	banked  time.Duration // elapsed time accumulated before the last Start
	running bool
}

// NewClock creates a stopped clock reading the system monotonic clock.
func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource creates a stopped clock reading now.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Start resumes the clock. Starting a running clock has no effect.
func (c *Clock) Start() {
	if c.running {
		return
	}
	c.started = c.now()
	c.running = true
}

// Stop pauses the clock, freezing Elapsed until the next Start.
func (c *Clock) Stop() {
	if !c.running {
		return
	}
	c.banked += c.now().Sub(c.started)
	c.running = false
}

// Running reports whether the clock is advancing.
func (c *Clock) Running() bool {
	return c.running
}

// Elapsed returns the running time in seconds, excluding paused intervals.
func (c *Clock) Elapsed() float64 {
	d := c.banked
	if c.running {
		d += c.now().Sub(c.started)
	}
	return d.Seconds()
}
