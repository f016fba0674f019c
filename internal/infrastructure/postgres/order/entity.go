package order

import (
	"github.com/shopspring/decimal"
)

// Side identifies which half of the book an order belongs to.
type Side string

const (
	// SideAsk is the sell side of the book.
	SideAsk Side = "ask"
	// SideBid is the buy side of the book.
	SideBid Side = "bid"
)

// Valid reports whether the side is one of the two known values.
func (s Side) Valid() bool {
	return s == SideAsk || s == SideBid
}

// Order represents a single persisted order. Secnum is assigned upstream;
// this service only observes store state and never mutates it.
type Order struct {
	Secnum       uint64          `json:"secnum"`
	Symbol       string          `json:"symbol"`
	Side         Side            `json:"side"`
	Price        decimal.Decimal `json:"price"`
	Quantity     uint64          `json:"quantity"`
	QuantityLeft uint64          `json:"quantity_left"`
}

// PriceLevel is the aggregate open quantity at one price for one side of one
// symbol. Secnum identifies the lowest-secnum open order at the level; a
// level reported at quantity 0 carries the secnum of the execution that
// emptied it, so subscribers can evict the entry.
type PriceLevel struct {
	Symbol   string          `json:"symbol"`
	Side     Side            `json:"side"`
	Price    decimal.Decimal `json:"price"`
	Quantity uint64          `json:"quantity"`
	Secnum   uint64          `json:"secnum"`
}

// OrderBook is the price-aggregated view of one symbol's open orders.
// Bids are ordered descending by price and asks ascending (best price
// first); the same convention applies to snapshot and delta payloads.
type OrderBook struct {
	Symbol string       `json:"symbol"`
	Asks   []PriceLevel `json:"asks"`
	Bids   []PriceLevel `json:"bids"`
}
