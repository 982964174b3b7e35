package websocket

import (
	"github.com/cristianortiz/escrowAuction/internal/auction/application"
)

// MessageType defines ws type message
type MessageType string

const (
	MessageTypeClientBid           MessageType = "client_bid"            // client msg to make a bid
	MessageTypeServerAuctionUpdate MessageType = "server_auction_update" // server msg after a committed auction change
	MessageTypeServerError         MessageType = "server_error"          // server msg indicating error
	MessageTypeServerInfo          MessageType = "server_info"           // server msg with general info
	MessageTypeServerInitialState  MessageType = "server_initial_state"  // server msg with the auction state on connect
)

// BaseMessage is base struct for all the WS messages, includes a Type field for identify the message type
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// ClientBidMessage is DTO for a bid message sent by the client, the bidder is the
// account the connection was opened with
type ClientBidMessage struct {
	BaseMessage
	Payload struct {
		Amount int64 `json:"amount"`
	} `json:"payload"`
}

// ServerAuctionUpdateMessage is DTO for an auction update msg sent by the server
type ServerAuctionUpdateMessage struct {
	BaseMessage
	Payload struct {
		Event application.EventType       `json:"event"`
		State *application.AuctionStateDTO `json:"state"`
	} `json:"payload"`
}

type ServerErrorMessage struct {
	BaseMessage
	Payload struct {
		Error string `json:"error"`
	} `json:"payload"`
}

type ServerInfoMessage struct {
	BaseMessage
	Payload struct {
		Message string `json:"message"`
	} `json:"payload"`
}

// ServerInitialStateMessage carries the auction state sent to a client right after it connects
type ServerInitialStateMessage struct {
	BaseMessage
	Payload *application.AuctionStateDTO `json:"payload"`
}
