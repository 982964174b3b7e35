package domain

import "errors"

// lifecycle errors
var (
	ErrAuctionActive             = errors.New("auction is actively running")
	ErrAuctionInactive           = errors.New("auction is inactive")
	ErrAuctionEnded              = errors.New("auction has ended")
	ErrAuctionNotEnded           = errors.New("auction has not ended yet")
	ErrAuctionNotFound           = errors.New("auction not found")
	ErrAuctionAlreadyInitialized = errors.New("auction is already initialized")
	ErrNoBids                    = errors.New("auction has no bids to settle")
	ErrNotInitializer            = errors.New("caller is not the auction initializer")
)

// bid ledger errors
var (
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidAccount       = errors.New("account id cannot be empty")
	ErrBidderAlreadyBid     = errors.New("bidder has already placed a bid")
	ErrBidNotFound          = errors.New("bid record not found")
	ErrBidderAlreadyClaimed = errors.New("bidder has already claimed their funds")
	ErrWinnerCannotRefund   = errors.New("highest bidder cannot claim a refund")
)

// ledger (transfer substrate) errors, returned unchanged by the TransferGateway
var (
	ErrAccountNotFound   = errors.New("ledger account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceOverflow   = errors.New("credit would overflow the account balance")
)
