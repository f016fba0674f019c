package sequencer

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/tradewire/bookfeed/internal/domain/ingest/v1"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
	"github.com/tradewire/bookfeed/pkg/errors"
	loggerMock "github.com/tradewire/bookfeed/pkg/logger/mock"
	"go.uber.org/mock/gomock"
)

type recordingHandler struct {
	mu       sync.Mutex
	bySymbol map[string][]v1.Event
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{bySymbol: make(map[string][]v1.Event)}
}

func (h *recordingHandler) Handle(_ context.Context, event v1.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bySymbol[event.Symbol] = append(h.bySymbol[event.Symbol], event)
}

func (h *recordingHandler) handled(symbol string) []v1.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bySymbol[symbol]
}

func testSymbols() map[string]struct{} {
	return map[string]struct{}{
		"AAPL": {},
		"MSFT": {},
	}
}

func newOrder(secnum uint64, symbol string) *order.Order {
	return &order.Order{
		Secnum:       secnum,
		Symbol:       symbol,
		Side:         order.SideBid,
		Price:        decimal.NewFromInt(100),
		Quantity:     10,
		QuantityLeft: 10,
	}
}

func TestSequencer_PerSymbolOrdering(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockLogger := loggerMock.NewMockInterface(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	handler := newRecordingHandler()
	seq := NewSequencer(testSymbols(), 16, handler, mockLogger)

	ctx := context.Background()
	for i := uint64(1); i <= 50; i++ {
		assert.NoError(t, seq.Submit(ctx, v1.NewOrderEvent(newOrder(i, "AAPL"))))
		assert.NoError(t, seq.Submit(ctx, v1.NewOrderEvent(newOrder(i+100, "MSFT"))))
	}
	seq.Stop()

	aapl := handler.handled("AAPL")
	assert.Equal(t, 50, len(aapl))
	for i, event := range aapl {
		assert.Equal(t, uint64(i+1), event.Order.Secnum)
	}

	msft := handler.handled("MSFT")
	assert.Equal(t, 50, len(msft))
	for i, event := range msft {
		assert.Equal(t, uint64(i+101), event.Order.Secnum)
	}
}

func TestSequencer_SplitsMixedBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockLogger := loggerMock.NewMockInterface(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	handler := newRecordingHandler()
	seq := NewSequencer(testSymbols(), 16, handler, mockLogger)

	ref := func(secnum uint64, symbol string) v1.ExecutionRef {
		return v1.ExecutionRef{Secnum: secnum, Symbol: symbol, Side: order.SideAsk, Price: decimal.NewFromInt(100)}
	}
	err := seq.Submit(context.Background(), v1.ExecutionsEvent("AAPL", []v1.ExecutionRef{
		ref(1, "AAPL"),
		ref(2, "MSFT"),
		ref(3, "AAPL"),
	}))
	assert.NoError(t, err)
	seq.Stop()

	aapl := handler.handled("AAPL")
	assert.Equal(t, 1, len(aapl))
	assert.Equal(t, 2, len(aapl[0].Executions))

	msft := handler.handled("MSFT")
	assert.Equal(t, 1, len(msft))
	assert.Equal(t, uint64(2), msft[0].Executions[0].Secnum)
}

func TestSequencer_RejectedBatchEnqueuesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockLogger := loggerMock.NewMockInterface(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	handler := newRecordingHandler()
	seq := NewSequencer(testSymbols(), 16, handler, mockLogger)

	// The AAPL leg is valid on its own; the MSFT leg is missing its secnum.
	err := seq.Submit(context.Background(), v1.ExecutionsEvent("AAPL", []v1.ExecutionRef{
		{Secnum: 1, Symbol: "AAPL", Side: order.SideAsk, Price: decimal.NewFromInt(100)},
		{Symbol: "MSFT", Side: order.SideAsk, Price: decimal.NewFromInt(410)},
	}))
	assert.True(t, errors.IsCode(err, errors.MalformedEvent))
	seq.Stop()

	assert.Empty(t, handler.handled("AAPL"))
	assert.Empty(t, handler.handled("MSFT"))
}

func TestSequencer_Rejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockLogger := loggerMock.NewMockInterface(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	handler := newRecordingHandler()
	seq := NewSequencer(testSymbols(), 16, handler, mockLogger)
	defer seq.Stop()

	ctx := context.Background()

	err := seq.Submit(ctx, v1.NewOrderEvent(&order.Order{Symbol: "AAPL"}))
	assert.True(t, errors.IsCode(err, errors.MalformedEvent))

	err = seq.Submit(ctx, v1.NewOrderEvent(newOrder(1, "TSLA")))
	assert.True(t, errors.IsCode(err, errors.UnknownSymbol))

	err = seq.Submit(ctx, v1.Event{Type: "unknown"})
	assert.True(t, errors.IsCode(err, errors.MalformedEvent))
}

func TestSequencer_SubmitAfterStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockLogger := loggerMock.NewMockInterface(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	handler := newRecordingHandler()
	seq := NewSequencer(testSymbols(), 16, handler, mockLogger)
	seq.Stop()

	err := seq.Submit(context.Background(), v1.NewOrderEvent(newOrder(1, "AAPL")))
	assert.Error(t, err)
	assert.Empty(t, handler.handled("AAPL"))
}
