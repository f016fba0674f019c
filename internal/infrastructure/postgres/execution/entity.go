package execution

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
)

// SideAverage is one row of the volume-weighted average query: the average
// trade price for one symbol and side over a queried window.
type SideAverage struct {
	Symbol   string          `json:"symbol"`
	Side     order.Side      `json:"side"`
	AvgPrice decimal.Decimal `json:"avg_price"`
}

// AverageBucket is the per-minute volume-weighted average price for one
// symbol and side, keyed by the wall-clock minute the trades fell into.
type AverageBucket struct {
	Symbol        string          `json:"symbol"`
	Side          order.Side      `json:"side"`
	IntervalStart time.Time       `json:"interval_start"`
	AveragePrice  decimal.Decimal `json:"average_price"`
}
