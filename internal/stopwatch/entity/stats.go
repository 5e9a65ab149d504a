package entity

// Stats are cumulative registry counters since process start.
type Stats struct {
	// Started counts successful start operations.
	Started int64
	// Replaced counts starts that discarded a still-running timer of the same name.
	Replaced int64
	// Stopped counts stop operations that found their timer.
	Stopped int64
	// Missed counts stop operations whose timer was absent.
	Missed int64
	// Evicted counts timers removed by the staleness sweep.
	Evicted int64
	// Active is the number of live timers.
	Active int64
}
