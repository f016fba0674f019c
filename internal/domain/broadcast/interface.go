package broadcast

// Event names on the subscriber boundary.
const (
	// EventNewOrder announces one ingested order to a symbol group.
	EventNewOrder = "newOrder"
	// EventUpdates carries the price levels touched by one execution
	// batch, including quantity-0 entries for consumed levels.
	EventUpdates = "updates"
	// EventAvgPricePerMinute carries the per-minute VWAP aggregate.
	EventAvgPricePerMinute = "avgPricePerMinute"
	// EventOrderBook carries a full snapshot to one joining connection.
	EventOrderBook = "orderBook"
	// EventCorrection answers one reconciliation request.
	EventCorrection = "correction"
)

// Publisher fans a payload out to every subscriber of a symbol's interest
// group. Implementations must not block the caller on slow consumers.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Publisher interface {
	Emit(symbol string, event string, payload any)
}
