package average

import (
	"context"
	"time"

	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/execution"
)

// SymbolAverages groups one interval's ask and bid volume-weighted averages
// for a symbol. A side with no trades in the interval is omitted.
type SymbolAverages struct {
	Symbol string                   `json:"symbol"`
	Asks   *execution.AverageBucket `json:"asks,omitempty"`
	Bids   *execution.AverageBucket `json:"bids,omitempty"`
}

// Usecase computes per-minute volume-weighted average prices.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	// MinuteAverages returns one entry per symbol that traded in
	// [from, to), sorted by symbol.
	MinuteAverages(ctx context.Context, from, to time.Time) ([]*SymbolAverages, error)
}
