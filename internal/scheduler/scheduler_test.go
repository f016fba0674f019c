package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	domain "github.com/tradewire/bookfeed/internal/domain/average"
	averageMock "github.com/tradewire/bookfeed/internal/domain/average/mock"
	"github.com/tradewire/bookfeed/internal/domain/broadcast"
	broadcastMock "github.com/tradewire/bookfeed/internal/domain/broadcast/mock"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/execution"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
	loggerMock "github.com/tradewire/bookfeed/pkg/logger/mock"
	"github.com/tradewire/bookfeed/pkg/util"
	"go.uber.org/mock/gomock"
)

type fakeTicker struct {
	ch chan time.Time
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               {}

type fakeClock struct {
	mu         sync.Mutex
	now        time.Time
	afterDelay time.Duration
	after      chan time.Time
	ticker     *fakeTicker
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.afterDelay = d
	f.mu.Unlock()
	return f.after
}

func (f *fakeClock) NewTicker(d time.Duration) util.Ticker { return f.ticker }

func (f *fakeClock) delay() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.afterDelay
}

func TestScheduler_AlignsToMinuteBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	avgUc := averageMock.NewMockUsecase(ctrl)
	pub := broadcastMock.NewMockPublisher(ctrl)
	mockLogger := loggerMock.NewMockInterface(ctrl)
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	// Started mid-minute at 12:00:37; the first window must still be the
	// full minute [12:00:00, 12:01:00).
	start := time.Date(2024, 3, 1, 12, 0, 37, 0, time.UTC)
	clock := &fakeClock{
		now:    start,
		after:  make(chan time.Time),
		ticker: &fakeTicker{ch: make(chan time.Time)},
	}

	firstWindow := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	secondWindow := firstWindow.Add(time.Minute)

	fired := make(chan time.Time, 2)
	avgUc.EXPECT().
		MinuteAverages(gomock.Any(), firstWindow, firstWindow.Add(time.Minute)).
		DoAndReturn(func(ctx context.Context, from, to time.Time) ([]*domain.SymbolAverages, error) {
			fired <- from
			return []*domain.SymbolAverages{
				{
					Symbol: "AAPL",
					Asks: &execution.AverageBucket{
						Symbol: "AAPL", Side: order.SideAsk,
						IntervalStart: from, AveragePrice: decimal.NewFromFloat(187.5),
					},
				},
			}, nil
		})
	avgUc.EXPECT().
		MinuteAverages(gomock.Any(), secondWindow, secondWindow.Add(time.Minute)).
		DoAndReturn(func(ctx context.Context, from, to time.Time) ([]*domain.SymbolAverages, error) {
			fired <- from
			return nil, nil
		})

	pub.EXPECT().Emit("AAPL", broadcast.EventAvgPricePerMinute, gomock.Any()).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sched := NewScheduler(avgUc, pub, clock, mockLogger)
	go func() {
		defer close(done)
		sched.Run(ctx)
	}()

	// Release the boundary wait, then one ticker period.
	clock.after <- start.Add(23 * time.Second)
	assert.Equal(t, firstWindow, <-fired)
	assert.Equal(t, 23*time.Second, clock.delay())

	clock.ticker.ch <- start.Add(83 * time.Second)
	assert.Equal(t, secondWindow, <-fired)

	cancel()
	<-done
}

func TestScheduler_SkipsFailedWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	avgUc := averageMock.NewMockUsecase(ctrl)
	pub := broadcastMock.NewMockPublisher(ctrl)
	mockLogger := loggerMock.NewMockInterface(ctrl)
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	start := time.Date(2024, 3, 1, 12, 0, 59, 0, time.UTC)
	clock := &fakeClock{
		now:    start,
		after:  make(chan time.Time),
		ticker: &fakeTicker{ch: make(chan time.Time)},
	}

	firstWindow := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	secondWindow := firstWindow.Add(time.Minute)

	fired := make(chan time.Time, 2)
	avgUc.EXPECT().
		MinuteAverages(gomock.Any(), firstWindow, firstWindow.Add(time.Minute)).
		DoAndReturn(func(ctx context.Context, from, to time.Time) ([]*domain.SymbolAverages, error) {
			fired <- from
			return nil, errors.New("query timeout")
		})
	mockLogger.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	// The window after the failure advances logically, it does not repeat.
	avgUc.EXPECT().
		MinuteAverages(gomock.Any(), secondWindow, secondWindow.Add(time.Minute)).
		DoAndReturn(func(ctx context.Context, from, to time.Time) ([]*domain.SymbolAverages, error) {
			fired <- from
			return nil, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sched := NewScheduler(avgUc, pub, clock, mockLogger)
	go func() {
		defer close(done)
		sched.Run(ctx)
	}()

	clock.after <- start.Add(time.Second)
	assert.Equal(t, firstWindow, <-fired)

	clock.ticker.ch <- start.Add(61 * time.Second)
	assert.Equal(t, secondWindow, <-fired)

	cancel()
	<-done
}
