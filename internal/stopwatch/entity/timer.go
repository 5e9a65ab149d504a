package entity

import "time"

// MaxTimerAge is how long a started timer may stay unstopped before the
// sweep discards it.
const MaxTimerAge = 30 * time.Second

// Timer is one in-flight named stopwatch.
type Timer struct {
	Name  string
	Start time.Time
}

// Age returns how long the timer has been running at now.
func (t Timer) Age(now time.Time) time.Duration {
	d := now.Sub(t.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether the timer is old enough to be swept at now.
func (t Timer) Expired(now time.Time, maxAge time.Duration) bool {
	return now.Sub(t.Start) >= maxAge
}

// TimerView is the read-only shape of a live timer.
type TimerView struct {
	Name string
	Age  time.Duration
}
