package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tradewire/bookfeed/internal/domain/book"
	bookMock "github.com/tradewire/bookfeed/internal/domain/book/mock"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
	loggerMock "github.com/tradewire/bookfeed/pkg/logger/mock"
	"go.uber.org/mock/gomock"
)

func testClient(id string, buffer int) *Client {
	return &Client{
		send: make(chan []byte, buffer),
		id:   id,
	}
}

func receive(t *testing.T, client *Client) Envelope {
	t.Helper()
	select {
	case frame := <-client.send:
		var env Envelope
		assert.NoError(t, json.Unmarshal(frame, &env))
		return env
	default:
		t.Fatal("expected a frame on the client send buffer")
		return Envelope{}
	}
}

func newTestHub(t *testing.T) (*Hub, *bookMock.MockUsecase, *loggerMock.MockInterface) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	bookUc := bookMock.NewMockUsecase(ctrl)
	mockLogger := loggerMock.NewMockInterface(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	symbols := map[string]struct{}{"AAPL": {}, "MSFT": {}}
	return NewHub(bookUc, symbols, mockLogger), bookUc, mockLogger
}

func TestHub_JoinSendsSnapshot(t *testing.T) {
	hub, bookUc, _ := newTestHub(t)

	client := testClient("c1", 4)
	hub.Add(client)

	bookUc.EXPECT().
		BuildSnapshot(gomock.Any(), "AAPL").
		Return(&order.OrderBook{
			Symbol: "AAPL",
			Asks:   []order.PriceLevel{{Symbol: "AAPL", Side: order.SideAsk, Price: decimal.NewFromInt(101), Quantity: 10, Secnum: 1}},
			Bids:   []order.PriceLevel{},
		}, nil)

	hub.Join(context.Background(), client, "AAPL")

	assert.Equal(t, 1, hub.Members("AAPL"))
	env := receive(t, client)
	assert.Equal(t, "orderBook", env.Event)
	assert.Equal(t, "AAPL", env.Symbol)
}

func TestHub_JoinUnknownSymbolIgnored(t *testing.T) {
	hub, _, _ := newTestHub(t)

	client := testClient("c1", 4)
	hub.Add(client)

	hub.Join(context.Background(), client, "TSLA")

	assert.Equal(t, 0, hub.Members("TSLA"))
	assert.Empty(t, client.send)
}

func TestHub_JoinSnapshotFailureKeepsMembership(t *testing.T) {
	hub, bookUc, mockLogger := newTestHub(t)

	client := testClient("c1", 4)
	hub.Add(client)

	bookUc.EXPECT().
		BuildSnapshot(gomock.Any(), "AAPL").
		Return(nil, errors.New("query timeout"))
	mockLogger.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	hub.Join(context.Background(), client, "AAPL")

	// The room was entered before the snapshot query, so deltas still flow.
	assert.Equal(t, 1, hub.Members("AAPL"))
	assert.Empty(t, client.send)
}

func TestHub_EmitReachesRoomMembersOnly(t *testing.T) {
	hub, bookUc, _ := newTestHub(t)

	member := testClient("member", 4)
	outsider := testClient("outsider", 4)
	hub.Add(member)
	hub.Add(outsider)

	bookUc.EXPECT().
		BuildSnapshot(gomock.Any(), "AAPL").
		Return(&order.OrderBook{Symbol: "AAPL", Asks: []order.PriceLevel{}, Bids: []order.PriceLevel{}}, nil)
	hub.Join(context.Background(), member, "AAPL")
	receive(t, member) // drain snapshot

	hub.Emit("AAPL", "updates", &order.OrderBook{Symbol: "AAPL"})

	env := receive(t, member)
	assert.Equal(t, "updates", env.Event)
	assert.Empty(t, outsider.send)
}

func TestHub_LeaveStopsDelivery(t *testing.T) {
	hub, bookUc, _ := newTestHub(t)

	client := testClient("c1", 4)
	hub.Add(client)

	bookUc.EXPECT().
		BuildSnapshot(gomock.Any(), "AAPL").
		Return(&order.OrderBook{Symbol: "AAPL", Asks: []order.PriceLevel{}, Bids: []order.PriceLevel{}}, nil)
	hub.Join(context.Background(), client, "AAPL")
	receive(t, client)

	hub.Leave(client, "AAPL")
	hub.Emit("AAPL", "updates", &order.OrderBook{Symbol: "AAPL"})

	assert.Equal(t, 0, hub.Members("AAPL"))
	assert.Empty(t, client.send)
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub, bookUc, mockLogger := newTestHub(t)
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any()).Times(1)

	client := testClient("slow", 1)
	hub.Add(client)

	bookUc.EXPECT().
		BuildSnapshot(gomock.Any(), "AAPL").
		Return(&order.OrderBook{Symbol: "AAPL", Asks: []order.PriceLevel{}, Bids: []order.PriceLevel{}}, nil)
	hub.Join(context.Background(), client, "AAPL")

	// The snapshot filled the one-slot buffer; the next emit overflows.
	hub.Emit("AAPL", "updates", &order.OrderBook{Symbol: "AAPL"})

	assert.Equal(t, 0, hub.Members("AAPL"))
}

func TestHub_EmitAfterRemoveDeliversNothing(t *testing.T) {
	hub, bookUc, _ := newTestHub(t)

	client := testClient("c1", 4)
	hub.Add(client)

	bookUc.EXPECT().
		BuildSnapshot(gomock.Any(), "AAPL").
		Return(&order.OrderBook{Symbol: "AAPL", Asks: []order.PriceLevel{}, Bids: []order.PriceLevel{}}, nil)
	hub.Join(context.Background(), client, "AAPL")
	receive(t, client)

	// Remove closed the send channel; the emit must skip the gone member
	// instead of sending on it.
	hub.Remove(client)
	hub.Emit("AAPL", "updates", &order.OrderBook{Symbol: "AAPL"})

	assert.Equal(t, 0, hub.Members("AAPL"))
}

func TestHub_ConcurrentEmitAndRemove(t *testing.T) {
	hub, bookUc, mockLogger := newTestHub(t)
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	bookUc.EXPECT().
		BuildSnapshot(gomock.Any(), "AAPL").
		Return(&order.OrderBook{Symbol: "AAPL", Asks: []order.PriceLevel{}, Bids: []order.PriceLevel{}}, nil).
		AnyTimes()

	clients := make([]*Client, 16)
	for i := range clients {
		clients[i] = testClient(fmt.Sprintf("c%d", i), 1)
		hub.Add(clients[i])
		hub.Join(context.Background(), clients[i], "AAPL")
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				hub.Emit("AAPL", "updates", &order.OrderBook{Symbol: "AAPL"})
			}
		}
	}()

	// Tear the members down while the emitter is fanning out; every send
	// must either land in a live buffer or be skipped, never hit a closed
	// channel.
	for _, client := range clients {
		hub.Remove(client)
	}
	close(done)
	wg.Wait()

	assert.Equal(t, 0, hub.Members("AAPL"))
}

func TestHub_Correction(t *testing.T) {
	hub, bookUc, _ := newTestHub(t)

	client := testClient("c1", 4)
	hub.Add(client)

	ask := &book.Candidate{Secnum: 7, Price: decimal.NewFromInt(101), Quantity: 5}
	bookUc.EXPECT().
		Reconcile(gomock.Any(), ask, nil).
		Return(&book.Correction{
			Ask: &book.Instruction{Action: book.ActionDelete, Secnum: 7},
		}, nil)

	hub.Correction(context.Background(), client, "AAPL", ask, nil)

	env := receive(t, client)
	assert.Equal(t, "correction", env.Event)
	assert.Equal(t, "AAPL", env.Symbol)
}
