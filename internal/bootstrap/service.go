package bootstrap

import (
	"github.com/tradewire/bookfeed/internal/broadcast"
	"github.com/tradewire/bookfeed/internal/scheduler"
	"github.com/tradewire/bookfeed/internal/sequencer"
	"github.com/tradewire/bookfeed/internal/ws"
)

// Service holds the live distribution pipeline: the hub fans deltas out, the
// broadcaster builds them, the sequencer serializes per-symbol dispatch, and
// the scheduler drives the minute aggregation.
type Service struct {
	Hub         *ws.Hub
	Broadcaster *broadcast.Broadcaster
	Sequencer   *sequencer.Sequencer
	Scheduler   *scheduler.Scheduler
}

// registerService registers the service graph.
func (b *Bootstrap) registerService() {
	b.Service.Hub = ws.NewHub(b.Usecase.BookUsecase, b.Config.SupportedSymbols(), b.Logger)
	b.Service.Broadcaster = broadcast.NewBroadcaster(b.Repository.OrderRepository, b.Service.Hub, b.Logger)
	b.Service.Sequencer = sequencer.NewSequencer(
		b.Config.SupportedSymbols(),
		b.Config.App.QueueSize,
		b.Service.Broadcaster,
		b.Logger,
	)
	b.Service.Scheduler = scheduler.NewScheduler(b.Usecase.AverageUsecase, b.Service.Hub, b.Clock, b.Logger)
}
