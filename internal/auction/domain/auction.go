package domain

import (
	"time"

	"github.com/cristianortiz/escrowAuction/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AccountID identifies a ledger account (seller, treasury or bidder). Authentication of the
// identity belongs to the ledger substrate.
type AccountID string

// AuctionState is derived from the deadline and the ended flag, it is never persisted
type AuctionState string

const (
	StateActive AuctionState = "active"
	StateClosed AuctionState = "closed" // window closed, seller has not claimed yet
	StateEnded  AuctionState = "ended"
)

// Auction is the singleton auction record of a deployment
type Auction struct {
	ID          uuid.UUID
	Initializer AccountID
	Treasury    AccountID
	EndAt       time.Time
	//highest bid and bidder are both nil until the first bid, and both set afterwards
	HighestBid    *int64
	HighestBidder *AccountID
	Ended         bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewAuction creates the auction record, the deadline is computed as now + duration
func NewAuction(id uuid.UUID, initializer, treasury AccountID, duration time.Duration, v *Validator) (*Auction, error) {
	if initializer == "" || treasury == "" {
		return nil, ErrInvalidAccount
	}
	now := v.Now()
	endAt := now.Add(duration)
	if err := v.AssertActive(endAt); err != nil {
		log.Warn("Auction rejected: deadline is not in the future",
			zap.String("auctionID", id.String()),
			zap.Duration("duration", duration),
		)
		return nil, err
	}
	return &Auction{
		ID:          id,
		Initializer: initializer,
		Treasury:    treasury,
		EndAt:       endAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// State reports the lifecycle state at the given instant
func (a *Auction) State(now time.Time) AuctionState {
	switch {
	case a.Ended:
		return StateEnded
	case now.Before(a.EndAt):
		return StateActive
	default:
		return StateClosed
	}
}

// IsHighestBidder reports whether the account currently holds the highest bid
func (a *Auction) IsHighestBidder(account AccountID) bool {
	return a.HighestBidder != nil && *a.HighestBidder == account
}

// ValidateBid checks the bid preconditions that depend on the auction record only.
// Duplicate bidders are rejected by the BidLedger.
func (a *Auction) ValidateBid(bidder AccountID, amount int64, v *Validator) error {
	if err := v.AssertActive(a.EndAt); err != nil {
		log.Warn("Bid rejected: auction inactive",
			zap.String("auctionID", a.ID.String()),
			zap.String("bidder", string(bidder)),
			zap.Time("endAt", a.EndAt),
		)
		return err
	}
	if bidder == "" {
		return ErrInvalidAccount
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ApplyBid records an escrowed bid against the highest-bid fields. Only a strictly greater amount
// takes the lead, so on ties the earlier bidder keeps it. Returns true when the bidder took the lead.
func (a *Auction) ApplyBid(bidder AccountID, amount int64, now time.Time) bool {
	a.UpdatedAt = now
	if a.HighestBid != nil && amount <= *a.HighestBid {
		log.Info("Bid escrowed below the highest bid",
			zap.String("auctionID", a.ID.String()),
			zap.String("bidder", string(bidder)),
			zap.Int64("amount", amount),
			zap.Int64("highestBid", *a.HighestBid),
		)
		return false
	}
	highest, leader := amount, bidder
	a.HighestBid = &highest
	a.HighestBidder = &leader
	log.Info("New highest bid",
		zap.String("auctionID", a.ID.String()),
		zap.String("bidder", string(bidder)),
		zap.Int64("amount", amount),
	)
	return true
}

// ValidateSettle checks that the seller can claim the winning amount
func (a *Auction) ValidateSettle(caller AccountID, v *Validator) error {
	if err := v.AssertInactive(a.EndAt); err != nil {
		return err
	}
	if a.Ended {
		return ErrAuctionEnded
	}
	if a.HighestBid == nil {
		log.Warn("Settlement rejected: no bids placed", zap.String("auctionID", a.ID.String()))
		return ErrNoBids
	}
	if caller != a.Initializer {
		log.Warn("Settlement rejected: caller is not the initializer",
			zap.String("auctionID", a.ID.String()),
			zap.String("caller", string(caller)),
		)
		return ErrNotInitializer
	}
	return nil
}

// MarkEnded flips the terminal flag, it must follow a successful ValidateSettle
func (a *Auction) MarkEnded(now time.Time) {
	a.Ended = true
	a.UpdatedAt = now
	log.Info("Auction ended",
		zap.String("auctionID", a.ID.String()),
		zap.Int64("winningBid", *a.HighestBid),
		zap.String("winner", string(*a.HighestBidder)),
	)
}

// ValidateRefund checks the auction-level refund preconditions. The bidder's own record is
// checked by the caller against the BidLedger.
func (a *Auction) ValidateRefund(bidder AccountID, v *Validator) error {
	if err := v.AssertInactive(a.EndAt); err != nil {
		return err
	}
	if !a.Ended {
		return ErrAuctionNotEnded
	}
	if a.IsHighestBidder(bidder) {
		log.Warn("Refund rejected: caller is the winner",
			zap.String("auctionID", a.ID.String()),
			zap.String("bidder", string(bidder)),
		)
		return ErrWinnerCannotRefund
	}
	return nil
}
