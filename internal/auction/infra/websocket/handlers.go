package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cristianortiz/escrowAuction/internal/auction/application"
	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/cristianortiz/escrowAuction/internal/shared/logger"
	"github.com/cristianortiz/escrowAuction/internal/shared/websocket"
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AccountHeader carries the caller identity on the upgrade request, the account query
// parameter is accepted for browser clients that cannot set headers
const AccountHeader = "X-Account-ID"

// AuctionWSHandler handles the ws inbound msgs wich are specific for auction module (remember is a bounded context)
type AuctionWSHandler struct {
	ctx            context.Context
	auctionService application.AuctionService
	hub            *websocket.Hub
	room           string
}

// NewAuctionWSHandler creates a new instance of AuctionWSHandler. ctx bounds the client pumps.
func NewAuctionWSHandler(ctx context.Context, auctionService application.AuctionService, hub *websocket.Hub, auctionID uuid.UUID) *AuctionWSHandler {
	return &AuctionWSHandler{
		ctx:            ctx,
		auctionService: auctionService,
		hub:            hub,
		room:           auctionID.String(),
	}
}

// RegisterRoutes mounts the upgrade check and the /ws/auction endpoint
func (h *AuctionWSHandler) RegisterRoutes(app fiber.Router) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !fiberws.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		account := c.Get(AccountHeader)
		if account == "" {
			account = c.Query("account")
		}
		c.Locals("account", account)
		return c.Next()
	})
	app.Get("/ws/auction", fiberws.New(h.ServeWS))
}

// ServeWS runs one client connection, it returns when the peer disconnects
func (h *AuctionWSHandler) ServeWS(conn *fiberws.Conn) {
	account, _ := conn.Locals("account").(string)
	client := websocket.NewClient(h.hub, conn, uuid.NewString(), h.room, account)
	if !h.hub.RegisterClient(client) {
		_ = conn.Close()
		return
	}
	h.sendInitialState(h.ctx, client)

	go client.WritePump(h.ctx)
	client.ReadPump(h.ctx)
}

// ListenForMessages starts a go routine that listen the Hub inbound channel for messages and proccess every one of them
func (h *AuctionWSHandler) ListenForMessages(ctx context.Context) {
	log.Info("AuctionWSHandler started listening for inbound messages from hub")
	for {
		select {
		case <-ctx.Done():
			log.Info("AuctionWSHandler stopped listening for inbound messages from hub")
			return
		case msg := <-h.hub.InboundMessages:
			go h.processMessage(ctx, msg.Client, msg.Data)
		}
	}
}

// processMessage dispatch the message by this type
func (h *AuctionWSHandler) processMessage(ctx context.Context, client *websocket.Client, data []byte) {
	var baseMsg BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		h.sendError(client, "invalid message format")
		return
	}
	switch baseMsg.Type {
	case MessageTypeClientBid:
		h.handleClientBidMessage(ctx, client, data)
	default:
		h.sendError(client, "unknown message type")
	}
}

// handleClientBidMessage places the bid, the resulting update reaches every client of the room
// through the HubPublisher
func (h *AuctionWSHandler) handleClientBidMessage(ctx context.Context, client *websocket.Client, data []byte) {
	var bidMsg ClientBidMessage
	if err := json.Unmarshal(data, &bidMsg); err != nil {
		h.sendError(client, "invalid bid message format")
		return
	}
	if client.AccountID == "" {
		h.sendError(client, "missing account identity")
		return
	}

	rec, err := h.auctionService.PlaceBid(ctx, application.PlaceBidDTO{
		Bidder: domain.AccountID(client.AccountID),
		Amount: bidMsg.Payload.Amount,
	})
	if err != nil {
		log.Warn("ws bid rejected",
			zap.String("clientID", client.ID),
			zap.String("bidder", client.AccountID),
			zap.Error(err),
		)
		h.sendError(client, clientErrorMessage(err))
		return
	}
	h.sendInfo(client, "bid accepted")
	log.Info("ws bid accepted",
		zap.String("clientID", client.ID),
		zap.String("bidder", rec.Bidder),
		zap.Int64("amount", rec.Amount),
	)
}

func (h *AuctionWSHandler) sendInitialState(ctx context.Context, client *websocket.Client) {
	state, err := h.auctionService.GetAuctionState(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrAuctionNotFound) {
			h.sendInfo(client, "auction not initialized")
			return
		}
		log.Error("failed to load auction state for new client", zap.String("clientID", client.ID), zap.Error(err))
		h.sendError(client, "failed to load auction state")
		return
	}
	h.send(client, ServerInitialStateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerInitialState},
		Payload:     state,
	})
}

// clientErrorMessage exposes domain errors verbatim and hides everything else
func clientErrorMessage(err error) string {
	for _, known := range []error{
		domain.ErrAuctionInactive, domain.ErrAuctionNotFound, domain.ErrBidderAlreadyBid,
		domain.ErrInvalidAmount, domain.ErrInvalidAccount, domain.ErrInsufficientFunds, domain.ErrBalanceOverflow,
		domain.ErrAccountNotFound,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "internal error"
}

func (h *AuctionWSHandler) sendError(client *websocket.Client, errorMessage string) {
	msg := ServerErrorMessage{BaseMessage: BaseMessage{Type: MessageTypeServerError}}
	msg.Payload.Error = errorMessage
	h.send(client, msg)
}

func (h *AuctionWSHandler) sendInfo(client *websocket.Client, message string) {
	msg := ServerInfoMessage{BaseMessage: BaseMessage{Type: MessageTypeServerInfo}}
	msg.Payload.Message = message
	h.send(client, msg)
}

// send serializes msg and queues it for a single client
func (h *AuctionWSHandler) send(client *websocket.Client, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("failed to marshal ws message", zap.Error(err))
		return
	}
	if !client.SendTo(data) {
		log.Warn("client send channel full or closed, message dropped", zap.String("clientID", client.ID))
	}
}
