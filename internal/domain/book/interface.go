package book

import (
	"context"

	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
)

// Usecase builds point-in-time snapshots and reconciles drifted client
// entries against authoritative store state.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	// BuildSnapshot returns the full current book for symbol, covering
	// only orders with remaining quantity.
	BuildSnapshot(ctx context.Context, symbol string) (*order.OrderBook, error)
	// Reconcile validates the ask and/or bid candidate independently.
	// Either candidate may be nil.
	Reconcile(ctx context.Context, ask, bid *Candidate) (*Correction, error)
}
