// Package goroutine runs long-lived tasks such as listeners and collects
// their errors for a single Wait at shutdown.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/gostopwatch/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 8

// ErrLimitReached is returned by Go when every slot is taken.
var ErrLimitReached = errors.New("goroutine limit reached")

// ErrClosed is returned by Go after Wait has been called.
var ErrClosed = errors.New("goroutine manager is closed")

// Manager runs named tasks with a bounded number of slots.
type Manager struct {
	mu   sync.Mutex
	errs []error
	wg   sync.WaitGroup
	sema chan struct{}

	stateMu sync.RWMutex
	closed  bool
}

func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		sema: make(chan struct{}, maxGoroutine),
	}
}

// Go starts f in its own goroutine. A task that panics is recorded as an
// error; f is skipped when ctx is already done.
func (g *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) error {
	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		return ErrClosed
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached", "task", name, "limit", cap(g.sema))
		return ErrLimitReached
	}

	g.wg.Go(func() {
		defer func() { <-g.sema }()
		defer func() {
			if rvr := recover(); rvr != nil {
				slog.ErrorContext(ctx, "panic occurred in goroutine", "task", name, "stack", stacktrace.InternalPaths(debug.Stack()))
				g.record(fmt.Errorf("%s: panic: %v", name, rvr))
			}
		}()

		if err := ctx.Err(); err != nil {
			slog.WarnContext(ctx, "goroutine canceled before start", "task", name, "because", err)
			return
		}

		if err := f(ctx); err != nil {
			g.record(fmt.Errorf("%s: %w", name, err))
		}
	})

	return nil
}

func (g *Manager) record(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

// Wait closes the manager to new tasks, blocks until running ones return and
// joins their errors.
func (g *Manager) Wait() error {
	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return errors.Join(g.errs...)
}
