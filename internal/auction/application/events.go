package application

import "context"

//go:generate mockgen -source=events.go -destination=mock_events_test.go -package=application

// EventType names the auction changes pushed to subscribers
type EventType string

const (
	EventAuctionInitialized EventType = "auction_initialized"
	EventBidPlaced          EventType = "bid_placed"
	EventAuctionEnded       EventType = "auction_ended"
	EventRefundClaimed      EventType = "refund_claimed"
)

// AuctionEvent is published after the transaction that produced it has committed
type AuctionEvent struct {
	Type  EventType        `json:"type"`
	State *AuctionStateDTO `json:"state"`
}

// EventPublisher pushes auction events to live subscribers (websocket hub)
type EventPublisher interface {
	PublishAuctionEvent(ctx context.Context, event AuctionEvent)
}

type nopPublisher struct{}

func (nopPublisher) PublishAuctionEvent(context.Context, AuctionEvent) {}
