package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/clock"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/entity"
	"go.uber.org/atomic"
)

// Registry holds running timers keyed by name.
//
// A single mutex guards the whole map. Start and Stop sweep stale entries
// and then apply their own change inside one critical section. Nothing runs
// in the background, so an expired timer lingers until the next Start or Stop.
type Registry struct {
	clock  clock.Clocker
	maxAge time.Duration

	mu     sync.Mutex
	timers map[string]time.Time

	started  atomic.Int64
	replaced atomic.Int64
	stopped  atomic.Int64
	missed   atomic.Int64
	evicted  atomic.Int64
	active   atomic.Int64
}

// NewRegistry builds an empty registry. A non-positive maxAge falls back to
// entity.MaxTimerAge.
func NewRegistry(c clock.Clocker, maxAge time.Duration) *Registry {
	if c == nil {
		c = clock.New()
	}
	if maxAge <= 0 {
		maxAge = entity.MaxTimerAge
	}

	return &Registry{
		clock:  c,
		maxAge: maxAge,
		timers: make(map[string]time.Time),
	}
}

// Start records now as the start instant of name, replacing any running
// timer with the same name.
func (r *Registry) Start(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.sweepLocked(now)

	if _, exists := r.timers[name]; exists {
		r.replaced.Inc()
	}
	r.timers[name] = now
	r.started.Inc()
	r.active.Store(int64(len(r.timers)))
}

// Stop removes name and returns how long it ran. ok is false when no such
// timer is running, including when it was just swept as stale.
func (r *Registry) Stop(name string) (elapsed time.Duration, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.sweepLocked(now)

	start, ok := r.timers[name]
	if !ok {
		r.missed.Inc()
		return 0, false
	}

	delete(r.timers, name)
	r.stopped.Inc()
	r.active.Store(int64(len(r.timers)))

	return clock.Since(start, now), true
}

// Sweep drops every timer whose age has reached the max age and returns how
// many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sweepLocked(r.clock.Now())
}

func (r *Registry) sweepLocked(now time.Time) int {
	n := 0
	for name, start := range r.timers {
		t := entity.Timer{Name: name, Start: start}
		if t.Expired(now, r.maxAge) {
			delete(r.timers, name)
			n++
		}
	}

	if n > 0 {
		r.evicted.Add(int64(n))
		r.active.Store(int64(len(r.timers)))
	}

	return n
}

// Len returns the number of live timers, stale ones included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.timers)
}

// Snapshot lists live timers ordered by name. It does not sweep.
func (r *Registry) Snapshot() []entity.TimerView {
	r.mu.Lock()
	now := r.clock.Now()
	views := lo.MapToSlice(r.timers, func(name string, start time.Time) entity.TimerView {
		return entity.TimerView{
			Name: name,
			Age:  entity.Timer{Name: name, Start: start}.Age(now),
		}
	})
	r.mu.Unlock()

	slices.SortFunc(views, func(a, b entity.TimerView) int {
		return strings.Compare(a.Name, b.Name)
	})

	return views
}

// Stats reads the counters without taking the lock.
func (r *Registry) Stats() entity.Stats {
	return entity.Stats{
		Started:  r.started.Load(),
		Replaced: r.replaced.Load(),
		Stopped:  r.stopped.Load(),
		Missed:   r.missed.Load(),
		Evicted:  r.evicted.Load(),
		Active:   r.active.Load(),
	}
}
