package domain

import (
	"time"

	"github.com/google/uuid"
)

// BidRecord is the per-bidder deposit entry. There is at most one record per (auction, bidder).
type BidRecord struct {
	AuctionID  uuid.UUID
	Bidder     AccountID
	Amount     int64
	Refunded   bool
	CreatedAt  time.Time
	RefundedAt *time.Time
}

func NewBidRecord(auctionID uuid.UUID, bidder AccountID, amount int64, createdAt time.Time) *BidRecord {
	return &BidRecord{
		AuctionID: auctionID,
		Bidder:    bidder,
		Amount:    amount,
		CreatedAt: createdAt,
	}
}

// BidKey is the deterministic storage locator of a bidder's record
func BidKey(auctionID uuid.UUID, bidder AccountID) string {
	return "bid-info/" + auctionID.String() + "/" + string(bidder)
}

// Consume closes the record after its deposit has been paid back
func (r *BidRecord) Consume(at time.Time) error {
	if r.Refunded {
		return ErrBidderAlreadyClaimed
	}
	r.Refunded = true
	r.RefundedAt = &at
	return nil
}
