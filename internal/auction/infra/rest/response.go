package rest

import (
	"errors"
	"net/http"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errMissingCaller = errors.New("missing " + AccountHeader + " header")

// Response is the JSON envelope of every REST reply
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: "success", Message: message, Data: data})
}

func failure(c *fiber.Ctx, status int, message string, err error) error {
	return c.Status(status).JSON(Response{Status: "error", Message: message, Error: err.Error()})
}

// MapErrorToHTTP classifies an application error into a status code and a client message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrAuctionActive),
		errors.Is(err, domain.ErrAuctionInactive),
		errors.Is(err, domain.ErrAuctionEnded),
		errors.Is(err, domain.ErrAuctionNotEnded),
		errors.Is(err, domain.ErrAuctionAlreadyInitialized),
		errors.Is(err, domain.ErrBidderAlreadyBid),
		errors.Is(err, domain.ErrBidderAlreadyClaimed),
		errors.Is(err, domain.ErrNoBids):
		return http.StatusConflict, "operation not allowed in the current auction state"
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAccount),
		errors.Is(err, errMissingCaller):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, domain.ErrAuctionNotFound),
		errors.Is(err, domain.ErrBidNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domain.ErrNotInitializer),
		errors.Is(err, domain.ErrWinnerCannotRefund):
		return http.StatusForbidden, "caller is not allowed to perform this operation"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, "insufficient funds"
	case errors.Is(err, domain.ErrBalanceOverflow):
		return http.StatusUnprocessableEntity, "balance limit exceeded"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// handleError replies with the mapped status, internal errors are logged and not echoed
func handleError(c *fiber.Ctx, err error) error {
	status, message := MapErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return failure(c, status, message, errors.New(message))
	}
	return failure(c, status, message, rootCause(err))
}

// rootCause strips the use case wrapping so clients see the domain message only
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
