package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gostopwatch/internal/pkg/goerror"
	"go.opentelemetry.io/otel/attribute"
)

type StopTimerInput struct {
	Name string
}

// StopTimer stops the named timer and returns its elapsed nanoseconds. A
// timer that was never started, was already stopped or was swept as stale
// yields a not-found error.
func (s *Usecase) StopTimer(ctx context.Context, in StopTimerInput) (int64, error) {
	ctx, span := s.startSpan(ctx, "StopTimer")
	defer span.End()

	span.SetAttributes(attribute.String("timer.name", in.Name))

	elapsed, ok := s.repo.Stop(in.Name)
	if !ok {
		slog.DebugContext(ctx, "timer not found", "name", in.Name)
		return 0, goerror.NewNotFound("timer not found")
	}

	span.SetAttributes(attribute.Int64("timer.elapsed_ns", elapsed.Nanoseconds()))
	slog.DebugContext(ctx, "timer stopped", "name", in.Name, "elapsed_ns", elapsed.Nanoseconds())

	return elapsed.Nanoseconds(), nil
}
