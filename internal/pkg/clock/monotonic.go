package clock

import "time"

// Monotonic measures elapsed time against an origin captured once.
type Monotonic struct {
	clock  Clocker
	origin time.Time
}

// NewMonotonic captures the origin from c. A nil c uses the system clock.
func NewMonotonic(c Clocker) *Monotonic {
	if c == nil {
		c = New()
	}

	return &Monotonic{
		clock:  c,
		origin: c.Now(),
	}
}

// Now returns the current instant of the underlying clock.
func (m *Monotonic) Now() time.Time {
	return m.clock.Now()
}

// Origin returns the instant captured at construction.
func (m *Monotonic) Origin() time.Time {
	return m.origin
}

// Elapsed returns the time since the origin. It is never negative.
func (m *Monotonic) Elapsed() time.Duration {
	return Since(m.origin, m.clock.Now())
}

// Since returns now-start, clamped at zero.
func Since(start, now time.Time) time.Duration {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}
