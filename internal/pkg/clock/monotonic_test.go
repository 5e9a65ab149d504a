package clock

import (
	"testing"
	"time"
)

type stepClock struct {
	now time.Time
}

func (s *stepClock) Now() time.Time {
	return s.now
}

func TestMonotonic_OriginFixed(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sc := &stepClock{now: base}

	m := NewMonotonic(sc)
	sc.now = base.Add(5 * time.Second)

	if got := m.Origin(); !got.Equal(base) {
		t.Fatalf("origin = %v, want %v", got, base)
	}
	if got := m.Elapsed(); got != 5*time.Second {
		t.Fatalf("elapsed = %v, want 5s", got)
	}
	if got := m.Now(); !got.Equal(sc.now) {
		t.Fatalf("now = %v, want %v", got, sc.now)
	}
}

func TestMonotonic_ElapsedNeverNegative(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sc := &stepClock{now: base}

	m := NewMonotonic(sc)
	sc.now = base.Add(-time.Minute)

	if got := m.Elapsed(); got != 0 {
		t.Fatalf("elapsed = %v, want 0", got)
	}
}

func TestMonotonic_SystemClockNonDecreasing(t *testing.T) {
	m := NewMonotonic(nil)

	first := m.Elapsed()
	if first > time.Second {
		t.Fatalf("first elapsed reading too large: %v", first)
	}

	prev := first
	for i := 0; i < 1000; i++ {
		cur := m.Elapsed()
		if cur < prev {
			t.Fatalf("elapsed went backwards: %v after %v", cur, prev)
		}
		prev = cur
	}
}

func TestSince(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  time.Duration
	}{
		{name: "forward", start: base, now: base.Add(time.Millisecond), want: time.Millisecond},
		{name: "equal", start: base, now: base, want: 0},
		{name: "backward", start: base, now: base.Add(-time.Millisecond), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Since(tt.start, tt.now); got != tt.want {
				t.Fatalf("Since() = %v, want %v", got, tt.want)
			}
		})
	}
}
