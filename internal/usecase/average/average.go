package average

import (
	"context"
	"sort"
	"time"

	domain "github.com/tradewire/bookfeed/internal/domain/average"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/execution"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
	"github.com/tradewire/bookfeed/pkg/errors"
	"github.com/tradewire/bookfeed/pkg/logger"
)

// Usecase computes per-minute volume-weighted average prices from the
// execution store.
type Usecase struct {
	executionRepository execution.ExecutionRepository
	logger              logger.Interface
}

// NewUsecase creates a new average usecase.
func NewUsecase(executionRepository execution.ExecutionRepository, logger logger.Interface) *Usecase {
	return &Usecase{executionRepository: executionRepository, logger: logger}
}

// MinuteAverages queries the store for [from, to) and groups the per-side
// rows into one entry per symbol, sorted by symbol. Symbols with no trades
// in the window are absent.
func (u *Usecase) MinuteAverages(ctx context.Context, from, to time.Time) ([]*domain.SymbolAverages, error) {
	rows, err := u.executionRepository.VolumeWeightedAverages(ctx, from, to)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	bySymbol := make(map[string]*domain.SymbolAverages)
	for _, row := range rows {
		entry, ok := bySymbol[row.Symbol]
		if !ok {
			entry = &domain.SymbolAverages{Symbol: row.Symbol}
			bySymbol[row.Symbol] = entry
		}

		bucket := &execution.AverageBucket{
			Symbol:        row.Symbol,
			Side:          row.Side,
			IntervalStart: from,
			AveragePrice:  row.AvgPrice,
		}
		switch row.Side {
		case order.SideAsk:
			entry.Asks = bucket
		case order.SideBid:
			entry.Bids = bucket
		}
	}

	averages := make([]*domain.SymbolAverages, 0, len(bySymbol))
	for _, entry := range bySymbol {
		averages = append(averages, entry)
	}
	sort.Slice(averages, func(i, j int) bool {
		return averages[i].Symbol < averages[j].Symbol
	})

	return averages, nil
}
