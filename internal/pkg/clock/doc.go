// Package clock provides a tiny time abstraction.
//
// Production code should depend on the Clocker interface instead of calling
// time.Now() directly, so a fake clock can be swapped in by tests.
//
// Monotonic pins an origin instant once at construction and reports how much
// time has passed since then. The origin is never recomputed.
package clock
