package rest

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/cristianortiz/escrowAuction/internal/auction/application"
	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/cristianortiz/escrowAuction/internal/shared/logger"
	"github.com/gofiber/fiber/v2"
)

var log = logger.GetLogger()

// AccountHeader carries the identity of the caller, authenticating it belongs to the gateway in front
const AccountHeader = "X-Account-ID"

// maxDurationSeconds is the longest window that still fits in a time.Duration
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

var errDurationOutOfRange = errors.New("duration_seconds is out of range")

type InitializeRequest struct {
	Treasury        string `json:"treasury"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type AmountRequest struct {
	Amount int64 `json:"amount"`
}

// AuctionHandler exposes the auction and account services over REST
type AuctionHandler struct {
	auctions application.AuctionService
	accounts application.AccountService
}

func NewAuctionHandler(auctions application.AuctionService, accounts application.AccountService) *AuctionHandler {
	return &AuctionHandler{auctions: auctions, accounts: accounts}
}

// RegisterRoutes mounts every endpoint under /api/v1
func (h *AuctionHandler) RegisterRoutes(router fiber.Router) {
	api := router.Group("/api/v1")

	auction := api.Group("/auction")
	auction.Post("/", h.Initialize)
	auction.Get("/", h.GetAuctionState)
	auction.Post("/bids", h.PlaceBid)
	auction.Get("/bids/:bidder", h.GetBidRecord)
	auction.Post("/end", h.EndAuction)
	auction.Post("/refund", h.Refund)

	accounts := api.Group("/accounts")
	accounts.Post("/:id/deposits", h.Deposit)
	accounts.Get("/:id", h.GetAccount)
}

func caller(c *fiber.Ctx) (domain.AccountID, error) {
	id := c.Get(AccountHeader)
	if id == "" {
		return "", errMissingCaller
	}
	return domain.AccountID(id), nil
}

func (h *AuctionHandler) Initialize(c *fiber.Ctx) error {
	initializer, err := caller(c)
	if err != nil {
		return handleError(c, err)
	}
	var req InitializeRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid request payload", err)
	}
	if req.Treasury == "" {
		return failure(c, http.StatusBadRequest, "invalid request payload", errors.New("treasury is required"))
	}
	if req.DurationSeconds > maxDurationSeconds {
		return failure(c, http.StatusBadRequest, "invalid request payload", errDurationOutOfRange)
	}

	state, err := h.auctions.Initialize(c.UserContext(), application.InitializeDTO{
		Initializer: initializer,
		Treasury:    domain.AccountID(req.Treasury),
		Duration:    time.Duration(req.DurationSeconds) * time.Second,
	})
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusCreated, "auction initialized", state)
}

func (h *AuctionHandler) GetAuctionState(c *fiber.Ctx) error {
	state, err := h.auctions.GetAuctionState(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, "auction state", state)
}

func (h *AuctionHandler) PlaceBid(c *fiber.Ctx) error {
	bidder, err := caller(c)
	if err != nil {
		return handleError(c, err)
	}
	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid request payload", err)
	}
	if req.Amount <= 0 {
		return failure(c, http.StatusBadRequest, "invalid request payload", domain.ErrInvalidAmount)
	}

	rec, err := h.auctions.PlaceBid(c.UserContext(), application.PlaceBidDTO{Bidder: bidder, Amount: req.Amount})
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusCreated, "bid placed", rec)
}

func (h *AuctionHandler) GetBidRecord(c *fiber.Ctx) error {
	rec, err := h.auctions.GetBidRecord(c.UserContext(), domain.AccountID(c.Params("bidder")))
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, "bid record", rec)
}

func (h *AuctionHandler) EndAuction(c *fiber.Ctx) error {
	initializer, err := caller(c)
	if err != nil {
		return handleError(c, err)
	}
	settlement, err := h.auctions.EndAuction(c.UserContext(), initializer)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, "auction ended", settlement)
}

func (h *AuctionHandler) Refund(c *fiber.Ctx) error {
	bidder, err := caller(c)
	if err != nil {
		return handleError(c, err)
	}
	refund, err := h.auctions.Refund(c.UserContext(), bidder)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, "deposit refunded", refund)
}

func (h *AuctionHandler) Deposit(c *fiber.Ctx) error {
	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid request payload", err)
	}
	acc, err := h.accounts.Deposit(c.UserContext(), application.DepositDTO{
		Account: domain.AccountID(c.Params("id")),
		Amount:  req.Amount,
	})
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusCreated, "account funded", acc)
}

func (h *AuctionHandler) GetAccount(c *fiber.Ctx) error {
	acc, err := h.accounts.GetAccount(c.UserContext(), domain.AccountID(c.Params("id")))
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, "account", acc)
}
