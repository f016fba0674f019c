package broadcast

import (
	"context"
	"sort"

	"github.com/tradewire/bookfeed/internal/domain/broadcast"
	v1 "github.com/tradewire/bookfeed/internal/domain/ingest/v1"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
	"github.com/tradewire/bookfeed/pkg/logger"
)

// Broadcaster consumes sequenced events and publishes deltas to the symbol's
// interest group. It runs inside the per-symbol worker, so for one symbol the
// store reads and emits happen strictly in event order.
type Broadcaster struct {
	orderRepository order.OrderRepository
	publisher       broadcast.Publisher
	logger          logger.Interface
}

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster(orderRepository order.OrderRepository, publisher broadcast.Publisher, logger logger.Interface) *Broadcaster {
	return &Broadcaster{
		orderRepository: orderRepository,
		publisher:       publisher,
		logger:          logger,
	}
}

// Handle dispatches one sequenced event. Store failures are logged and the
// event is dropped; the next event for the symbol proceeds.
func (b *Broadcaster) Handle(ctx context.Context, event v1.Event) {
	switch event.Type {
	case v1.EventNewOrder:
		b.publisher.Emit(event.Symbol, broadcast.EventNewOrder, event.Order)

	case v1.EventExecutions:
		delta, err := b.buildDelta(ctx, event)
		if err != nil {
			b.logger.ErrorContext(ctx, err, logger.Field{Key: "symbol", Value: event.Symbol})
			return
		}
		b.publisher.Emit(event.Symbol, broadcast.EventUpdates, delta)
	}
}

// buildDelta re-reads every touched price level and assembles the updates
// payload. Each distinct (side, price) is read once no matter how many
// executions hit it; a level read back at quantity 0 is kept in the payload
// carrying the secnum of the execution that emptied it.
func (b *Broadcaster) buildDelta(ctx context.Context, event v1.Event) (*order.OrderBook, error) {
	type levelKey struct {
		side  order.Side
		price string
	}

	seen := make(map[levelKey]bool, len(event.Executions))
	delta := &order.OrderBook{
		Symbol: event.Symbol,
		Asks:   []order.PriceLevel{},
		Bids:   []order.PriceLevel{},
	}

	for _, ref := range event.Executions {
		key := levelKey{side: ref.Side, price: ref.Price.String()}
		if seen[key] {
			continue
		}
		seen[key] = true

		level, err := b.orderRepository.PriceLevelAt(ctx, event.Symbol, ref.Side, ref.Price)
		if err != nil {
			return nil, err
		}
		if level.Quantity == 0 {
			level.Secnum = ref.Secnum
		}

		switch ref.Side {
		case order.SideAsk:
			delta.Asks = append(delta.Asks, *level)
		case order.SideBid:
			delta.Bids = append(delta.Bids, *level)
		}
	}

	sort.Slice(delta.Asks, func(i, j int) bool {
		return delta.Asks[i].Price.LessThan(delta.Asks[j].Price)
	})
	sort.Slice(delta.Bids, func(i, j int) bool {
		return delta.Bids[i].Price.GreaterThan(delta.Bids[j].Price)
	})

	return delta, nil
}
