package clock

import "time"

// Resolution is the finest time step the game records
const Resolution = time.Millisecond

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time truncated to Resolution, so that
// timestamps survive a snapshot round trip unchanged
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(Resolution)
}
