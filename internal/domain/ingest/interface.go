package ingest

import (
	"context"

	v1 "github.com/tradewire/bookfeed/internal/domain/ingest/v1"
)

// Sequencer accepts ingested events and guarantees per-symbol in-order
// dispatch to its handler, with full concurrency across distinct symbols.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Sequencer interface {
	// Submit validates the event, splits multi-symbol execution batches,
	// and enqueues. Returns MalformedEvent or UnknownSymbol errors;
	// accepted events are dispatched asynchronously.
	Submit(ctx context.Context, event v1.Event) error
	// Stop drains the queues and waits for in-flight dispatch to finish.
	Stop()
}

// Handler consumes sequenced events. For a given symbol, Handle is never
// invoked concurrently and calls arrive in submission order.
type Handler interface {
	Handle(ctx context.Context, event v1.Event)
}
