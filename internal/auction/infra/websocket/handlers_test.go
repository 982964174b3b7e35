package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cristianortiz/escrowAuction/internal/auction/application"
	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/cristianortiz/escrowAuction/internal/auction/infra/repository/memory"
	"github.com/cristianortiz/escrowAuction/internal/shared/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type frozenClock struct{ t time.Time }

func (c frozenClock) Now() time.Time { return c.t }

type wsFixture struct {
	hub     *websocket.Hub
	handler *AuctionWSHandler
	service application.AuctionService
	room    string
}

func newWSFixture(t *testing.T, initialized bool) *wsFixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	auctionID := uuid.New()
	store := memory.NewStore()
	_, err := store.Deposit(ctx, "alice", 500)
	require.NoError(t, err)

	hub := websocket.NewHub()
	go hub.Run(ctx)

	validator := domain.NewValidator(frozenClock{time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
	service := application.NewAuctionService(store, validator, auctionID, NewHubPublisher(hub))
	if initialized {
		// no publisher, clients registered later must not see the initialization event
		silent := application.NewAuctionService(store, validator, auctionID, nil)
		_, err := silent.Initialize(ctx, application.InitializeDTO{Initializer: "seller", Treasury: "treasury", Duration: time.Hour})
		require.NoError(t, err)
	}
	return &wsFixture{
		hub:     hub,
		handler: NewAuctionWSHandler(ctx, service, hub, auctionID),
		service: service,
		room:    auctionID.String(),
	}
}

func (f *wsFixture) client(t *testing.T, account string) *websocket.Client {
	t.Helper()
	c := websocket.NewClient(f.hub, nil, uuid.NewString(), f.room, account)
	require.True(t, f.hub.RegisterClient(c))
	return c
}

func nextMessage(t *testing.T, c *websocket.Client) map[string]any {
	t.Helper()
	select {
	case data := <-c.Send:
		var msg map[string]any
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func payload(t *testing.T, msg map[string]any) map[string]any {
	t.Helper()
	p, ok := msg["payload"].(map[string]any)
	require.True(t, ok, "payload must be an object")
	return p
}

func TestProcessMessage_Rejections(t *testing.T) {
	tests := []struct {
		name          string
		account       string
		data          string
		expectedError string
	}{
		{name: "not json", account: "alice", data: `{oops`, expectedError: "invalid message format"},
		{name: "unknown type", account: "alice", data: `{"type":"client_join_lot"}`, expectedError: "unknown message type"},
		{name: "bad bid payload", account: "alice", data: `{"type":"client_bid","payload":{"amount":"ten"}}`, expectedError: "invalid bid message format"},
		{name: "anonymous client", account: "", data: `{"type":"client_bid","payload":{"amount":10}}`, expectedError: "missing account identity"},
		{name: "zero amount", account: "alice", data: `{"type":"client_bid","payload":{"amount":0}}`, expectedError: domain.ErrInvalidAmount.Error()},
		{name: "unfunded bidder", account: "bob", data: `{"type":"client_bid","payload":{"amount":10}}`, expectedError: domain.ErrAccountNotFound.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWSFixture(t, true)
			c := f.client(t, tt.account)

			f.handler.processMessage(context.Background(), c, []byte(tt.data))

			msg := nextMessage(t, c)
			require.Equal(t, string(MessageTypeServerError), msg["type"])
			require.Equal(t, tt.expectedError, payload(t, msg)["error"])
		})
	}
}

func TestProcessMessage_BidBroadcastsUpdate(t *testing.T) {
	f := newWSFixture(t, true)
	bidder := f.client(t, "alice")
	watcher := f.client(t, "")

	f.handler.processMessage(context.Background(), bidder, []byte(`{"type":"client_bid","payload":{"amount":120}}`))

	update := nextMessage(t, watcher)
	require.Equal(t, string(MessageTypeServerAuctionUpdate), update["type"])
	p := payload(t, update)
	require.Equal(t, string(application.EventBidPlaced), p["event"])
	state := p["state"].(map[string]any)
	require.Equal(t, 120.0, state["highest_bid"])
	require.Equal(t, "alice", state["highest_bidder"])

	// the bidder gets both the broadcast and its own ack, in either order
	types := map[any]bool{}
	for i := 0; i < 2; i++ {
		types[nextMessage(t, bidder)["type"]] = true
	}
	require.True(t, types[string(MessageTypeServerAuctionUpdate)])
	require.True(t, types[string(MessageTypeServerInfo)])

	rec, err := f.service.GetBidRecord(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, int64(120), rec.Amount)
}

func TestSendInitialState(t *testing.T) {
	t.Run("initialized auction", func(t *testing.T) {
		f := newWSFixture(t, true)
		c := websocket.NewClient(f.hub, nil, "c1", f.room, "alice")

		f.handler.sendInitialState(context.Background(), c)

		msg := nextMessage(t, c)
		require.Equal(t, string(MessageTypeServerInitialState), msg["type"])
		p := payload(t, msg)
		require.Equal(t, f.room, p["auction_id"])
		require.Equal(t, string(domain.StateActive), p["state"])
	})

	t.Run("auction not initialized", func(t *testing.T) {
		f := newWSFixture(t, false)
		c := websocket.NewClient(f.hub, nil, "c1", f.room, "alice")

		f.handler.sendInitialState(context.Background(), c)

		msg := nextMessage(t, c)
		require.Equal(t, string(MessageTypeServerInfo), msg["type"])
		require.Equal(t, "auction not initialized", payload(t, msg)["message"])
	})
}
