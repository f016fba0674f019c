package v1

import (
	"github.com/shopspring/decimal"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
	"github.com/tradewire/bookfeed/pkg/errors"
)

// EventType discriminates the tagged event variant consumed by the
// per-symbol queues.
type EventType string

const (
	// EventNewOrder carries one newly ingested order.
	EventNewOrder EventType = "new_order"
	// EventExecutions carries one single-symbol execution batch.
	EventExecutions EventType = "executions"
)

// ExecutionRef names one order touched by an execution batch. The side and
// price tag which book level the execution affects; the current remaining
// quantity is re-read from the store when the event is processed.
type ExecutionRef struct {
	Secnum uint64          `json:"secnum"`
	Symbol string          `json:"symbol"`
	Side   order.Side      `json:"side"`
	Price  decimal.Decimal `json:"price"`
}

// Event is the tagged variant dispatched through the sequencer. Exactly one
// of Order / Executions is set depending on Type. After splitting, an
// executions event spans exactly one symbol.
type Event struct {
	Type       EventType
	Symbol     string
	Order      *order.Order
	Executions []ExecutionRef
}

// NewOrderEvent wraps an ingested order.
func NewOrderEvent(o *order.Order) Event {
	return Event{
		Type:   EventNewOrder,
		Symbol: o.Symbol,
		Order:  o,
	}
}

// ExecutionsEvent wraps a batch of execution refs. The batch may still span
// multiple symbols; the sequencer splits it before enqueueing.
func ExecutionsEvent(symbol string, refs []ExecutionRef) Event {
	return Event{
		Type:       EventExecutions,
		Symbol:     symbol,
		Executions: refs,
	}
}

// Validate rejects malformed events at the ingestion boundary so they never
// enter the sequencer.
func (e Event) Validate() error {
	switch e.Type {
	case EventNewOrder:
		o := e.Order
		if o == nil {
			return errors.NewDomainError(errors.MalformedEvent, "new order event without order")
		}
		if o.Secnum == 0 {
			return errors.NewDomainError(errors.MalformedEvent, "order missing secnum")
		}
		if o.Symbol == "" {
			return errors.NewDomainError(errors.MalformedEvent, "order missing symbol")
		}
		if !o.Side.Valid() {
			return errors.NewDomainError(errors.MalformedEvent, "order side must be ask or bid")
		}
		if !o.Price.IsPositive() {
			return errors.NewDomainError(errors.MalformedEvent, "order price must be positive")
		}
		if o.Quantity == 0 {
			return errors.NewDomainError(errors.MalformedEvent, "order quantity must be positive")
		}
		if o.QuantityLeft > o.Quantity {
			return errors.NewDomainError(errors.MalformedEvent, "order quantity_left exceeds quantity")
		}
		return nil

	case EventExecutions:
		if len(e.Executions) == 0 {
			return errors.NewDomainError(errors.MalformedEvent, "empty execution batch")
		}
		for _, ref := range e.Executions {
			if ref.Secnum == 0 {
				return errors.NewDomainError(errors.MalformedEvent, "execution ref missing secnum")
			}
			if !ref.Side.Valid() {
				return errors.NewDomainError(errors.MalformedEvent, "execution ref side must be ask or bid")
			}
			if ref.Symbol != e.Symbol {
				return errors.NewDomainError(errors.MalformedEvent, "mixed-symbol execution batch not split")
			}
		}
		return nil

	default:
		return errors.NewDomainError(errors.MalformedEvent, "unknown event type")
	}
}

// RawOrderEvent is the wire shape consumed from the order-events topic.
type RawOrderEvent struct {
	EventType  string            `json:"event_type"` // "new_order", "executions"
	Symbol     string            `json:"symbol"`
	Secnum     uint64            `json:"secnum,omitempty"`
	Side       order.Side        `json:"side,omitempty"`
	Price      decimal.Decimal   `json:"price,omitempty"`
	Quantity   uint64            `json:"quantity,omitempty"`
	Executions []RawExecutionRef `json:"executions,omitempty"`
}

// RawExecutionRef is one execution entry of a raw event. Symbol defaults to
// the enclosing event's symbol when omitted.
type RawExecutionRef struct {
	Secnum uint64          `json:"secnum"`
	Symbol string          `json:"symbol,omitempty"`
	Side   order.Side      `json:"side"`
	Price  decimal.Decimal `json:"price"`
}

// ToEvent converts the raw wire event into the sequencer's tagged variant.
func (r *RawOrderEvent) ToEvent() (Event, error) {
	switch r.EventType {
	case "new_order":
		return NewOrderEvent(&order.Order{
			Secnum:       r.Secnum,
			Symbol:       r.Symbol,
			Side:         r.Side,
			Price:        r.Price,
			Quantity:     r.Quantity,
			QuantityLeft: r.Quantity,
		}), nil

	case "executions":
		refs := make([]ExecutionRef, len(r.Executions))
		for i, raw := range r.Executions {
			symbol := raw.Symbol
			if symbol == "" {
				symbol = r.Symbol
			}
			refs[i] = ExecutionRef{
				Secnum: raw.Secnum,
				Symbol: symbol,
				Side:   raw.Side,
				Price:  raw.Price,
			}
		}
		return ExecutionsEvent(r.Symbol, refs), nil

	default:
		return Event{}, errors.NewDomainError(errors.MalformedEvent, "unknown raw event type "+r.EventType)
	}
}
