package websocket

import (
	"context"
	"encoding/json"

	"github.com/cristianortiz/escrowAuction/internal/auction/application"
	"github.com/cristianortiz/escrowAuction/internal/shared/websocket"
	"go.uber.org/zap"
)

// HubPublisher implements application.EventPublisher over the shared hub, every event is
// broadcast to the room of the auction it belongs to
type HubPublisher struct {
	hub *websocket.Hub
}

func NewHubPublisher(hub *websocket.Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) PublishAuctionEvent(_ context.Context, event application.AuctionEvent) {
	msg := ServerAuctionUpdateMessage{BaseMessage: BaseMessage{Type: MessageTypeServerAuctionUpdate}}
	msg.Payload.Event = event.Type
	msg.Payload.State = event.State

	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("failed to marshal ServerAuctionUpdateMessage", zap.Error(err))
		return
	}
	p.hub.Broadcast(event.State.AuctionID.String(), data)
}
