package order

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderRepository is the read-only store adapter over persisted orders.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type OrderRepository interface {
	// OpenOrderBook returns the price-aggregated book for symbol, covering
	// only orders with quantity_left > 0.
	OpenOrderBook(ctx context.Context, symbol string) (*OrderBook, error)
	// GetBySecnum returns the order identified by secnum, or nil if the
	// store has no such order.
	GetBySecnum(ctx context.Context, secnum uint64) (*Order, error)
	// PriceLevelAt returns the aggregate open level at (symbol, side,
	// price). A level with no open orders is returned at quantity 0, not
	// as an error.
	PriceLevelAt(ctx context.Context, symbol string, side Side, price decimal.Decimal) (*PriceLevel, error)
}
