package sequencer

import (
	"context"
	"sync"

	"github.com/tradewire/bookfeed/internal/domain/ingest"
	v1 "github.com/tradewire/bookfeed/internal/domain/ingest/v1"
	"github.com/tradewire/bookfeed/pkg/errors"
	"github.com/tradewire/bookfeed/pkg/logger"
)

// Sequencer owns one queue and one worker goroutine per supported symbol.
// The single worker per symbol is the only mutual-exclusion mechanism:
// events for a symbol are handled strictly in submission order, while
// distinct symbols proceed fully in parallel.
type Sequencer struct {
	handler ingest.Handler
	logger  logger.Interface

	queues map[string]chan v1.Event
	quit   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewSequencer creates a sequencer for the given symbol set and starts one
// worker per symbol.
func NewSequencer(symbols map[string]struct{}, queueSize int, handler ingest.Handler, logger logger.Interface) *Sequencer {
	s := &Sequencer{
		handler: handler,
		logger:  logger,
		queues:  make(map[string]chan v1.Event, len(symbols)),
		quit:    make(chan struct{}),
	}

	for symbol := range symbols {
		queue := make(chan v1.Event, queueSize)
		s.queues[symbol] = queue
		s.wg.Add(1)
		go s.work(symbol, queue)
	}

	return s
}

// Submit validates the event, splits multi-symbol execution batches, and
// enqueues each sub-event on its symbol's queue. Every sub-event is
// validated and resolved before any of them is enqueued, so a rejected
// batch never hands a partial batch to the workers. Submit blocks while a
// target queue is full; it returns once every sub-event is accepted.
func (s *Sequencer) Submit(ctx context.Context, event v1.Event) error {
	subs := SplitBySymbol(event)
	queues := make([]chan v1.Event, len(subs))
	for i, sub := range subs {
		if err := sub.Validate(); err != nil {
			return err
		}

		queue, ok := s.queues[sub.Symbol]
		if !ok {
			return errors.NewDomainError(errors.UnknownSymbol, "unsupported symbol "+sub.Symbol).
				WithSeverity(errors.SeverityLow)
		}
		queues[i] = queue
	}

	select {
	case <-s.quit:
		return errors.NewDomainError(errors.GeneralInternalServerError, "sequencer stopped")
	default:
	}

	for i, sub := range subs {
		select {
		case queues[i] <- sub:
		case <-s.quit:
			return errors.NewDomainError(errors.GeneralInternalServerError, "sequencer stopped")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Stop signals the workers, lets them drain whatever is already queued, and
// waits for in-flight dispatch to finish. Safe to call more than once.
func (s *Sequencer) Stop() {
	s.once.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}

func (s *Sequencer) work(symbol string, queue chan v1.Event) {
	defer s.wg.Done()
	for {
		select {
		case event := <-queue:
			s.handler.Handle(context.Background(), event)
		case <-s.quit:
			for {
				select {
				case event := <-queue:
					s.handler.Handle(context.Background(), event)
				default:
					s.logger.Debug("symbol queue drained", logger.Field{Key: "symbol", Value: symbol})
					return
				}
			}
		}
	}
}
