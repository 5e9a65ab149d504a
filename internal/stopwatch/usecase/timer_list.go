package usecase

import (
	"context"

	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/entity"
)

// ListTimers returns the running timers ordered by name. Entries past the
// max age may still appear until the next start or stop sweeps them.
func (s *Usecase) ListTimers(ctx context.Context) []entity.TimerView {
	_, span := s.startSpan(ctx, "ListTimers")
	defer span.End()

	return s.repo.Snapshot()
}

// Stats returns the registry counters.
func (s *Usecase) Stats(context.Context) entity.Stats {
	return s.repo.Stats()
}
