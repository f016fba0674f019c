package sequencer

import (
	v1 "github.com/tradewire/bookfeed/internal/domain/ingest/v1"
)

// SplitBySymbol partitions a multi-symbol execution batch into one event per
// symbol. The partition is stable: within each sub-batch the refs keep their
// original relative order, and sub-batches are emitted in order of each
// symbol's first appearance. Events that already span a single symbol pass
// through untouched.
func SplitBySymbol(event v1.Event) []v1.Event {
	if event.Type != v1.EventExecutions {
		return []v1.Event{event}
	}

	single := true
	for _, ref := range event.Executions {
		if ref.Symbol != event.Symbol {
			single = false
			break
		}
	}
	if single {
		return []v1.Event{event}
	}

	var symbols []string
	groups := make(map[string][]v1.ExecutionRef)
	for _, ref := range event.Executions {
		if _, seen := groups[ref.Symbol]; !seen {
			symbols = append(symbols, ref.Symbol)
		}
		groups[ref.Symbol] = append(groups[ref.Symbol], ref)
	}

	events := make([]v1.Event, 0, len(symbols))
	for _, symbol := range symbols {
		events = append(events, v1.ExecutionsEvent(symbol, groups[symbol]))
	}
	return events
}
