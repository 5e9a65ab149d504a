package inbound

import (
	"context"

	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/entity"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/usecase"
)

type uc interface {
	Now(ctx context.Context) int64
	StartTimer(ctx context.Context, in usecase.StartTimerInput) error
	StopTimer(ctx context.Context, in usecase.StopTimerInput) (int64, error)
	ListTimers(ctx context.Context) []entity.TimerView
	Stats(ctx context.Context) entity.Stats
}
