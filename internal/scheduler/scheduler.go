package scheduler

import (
	"context"
	"time"

	"github.com/tradewire/bookfeed/internal/domain/average"
	"github.com/tradewire/bookfeed/internal/domain/broadcast"
	"github.com/tradewire/bookfeed/pkg/interval"
	"github.com/tradewire/bookfeed/pkg/logger"
	"github.com/tradewire/bookfeed/pkg/util"
)

// Scheduler fires the per-minute average-price aggregation aligned to
// wall-clock minute boundaries. The first fire waits out the remainder of
// the current minute, then a fixed one-minute ticker takes over, so every
// window is a whole [boundary, boundary+1m) minute.
type Scheduler struct {
	averageUsecase average.Usecase
	publisher      broadcast.Publisher
	clock          util.Clock
	logger         logger.Interface
}

// NewScheduler creates a new scheduler.
func NewScheduler(averageUsecase average.Usecase, publisher broadcast.Publisher, clock util.Clock, logger logger.Interface) *Scheduler {
	return &Scheduler{
		averageUsecase: averageUsecase,
		publisher:      publisher,
		clock:          clock,
		logger:         logger,
	}
}

// Run blocks until ctx is cancelled, aggregating one window per minute.
// Windows advance logically from the first boundary so a late tick never
// shifts or shrinks the queried range.
func (s *Scheduler) Run(ctx context.Context) {
	now := s.clock.Now()
	boundary := interval.NextBoundary(now)

	s.logger.Info("aggregation scheduler started",
		logger.Field{Key: "first_fire", Value: boundary},
	)

	select {
	case <-s.clock.After(interval.BoundaryDelay(now)):
	case <-ctx.Done():
		return
	}

	// First window is the minute that just closed.
	windowStart := boundary.Add(-interval.Minute)
	s.aggregate(ctx, windowStart)

	ticker := s.clock.NewTicker(interval.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			windowStart = windowStart.Add(interval.Minute)
			s.aggregate(ctx, windowStart)
		case <-ctx.Done():
			return
		}
	}
}

// aggregate computes one window and emits per-symbol averages to each
// symbol's interest group. A failed window is logged and skipped; the next
// tick proceeds with the following window.
func (s *Scheduler) aggregate(ctx context.Context, windowStart time.Time) {
	windowEnd := windowStart.Add(interval.Minute)

	averages, err := s.averageUsecase.MinuteAverages(ctx, windowStart, windowEnd)
	if err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "window_start", Value: windowStart},
		)
		return
	}

	for _, symbolAverages := range averages {
		s.publisher.Emit(symbolAverages.Symbol, broadcast.EventAvgPricePerMinute, symbolAverages)
	}
}
