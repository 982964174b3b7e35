package bolt

import (
	"context"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
)

type bidRecord struct {
	AuctionID  uuid.UUID        `json:"auction_id"`
	Bidder     domain.AccountID `json:"bidder"`
	Amount     int64            `json:"amount"`
	Refunded   bool             `json:"refunded"`
	CreatedAt  time.Time        `json:"created_at"`
	RefundedAt *time.Time       `json:"refunded_at,omitempty"`
}

func getBidRecord(tx *bolt.Tx, auctionID uuid.UUID, bidder domain.AccountID) (*domain.BidRecord, error) {
	var rec bidRecord
	if err := getJSON(tx, bidsBucket, domain.BidKey(auctionID, bidder), &rec, domain.ErrBidNotFound); err != nil {
		return nil, err
	}
	return &domain.BidRecord{
		AuctionID:  rec.AuctionID,
		Bidder:     rec.Bidder,
		Amount:     rec.Amount,
		Refunded:   rec.Refunded,
		CreatedAt:  rec.CreatedAt,
		RefundedAt: rec.RefundedAt,
	}, nil
}

func putBidRecord(tx *bolt.Tx, rec *domain.BidRecord) error {
	return putJSON(tx, bidsBucket, domain.BidKey(rec.AuctionID, rec.Bidder), bidRecord{
		AuctionID:  rec.AuctionID,
		Bidder:     rec.Bidder,
		Amount:     rec.Amount,
		Refunded:   rec.Refunded,
		CreatedAt:  rec.CreatedAt,
		RefundedAt: rec.RefundedAt,
	})
}

type bidLedger struct {
	tx *bolt.Tx
}

func (l *bidLedger) Create(_ context.Context, rec *domain.BidRecord) error {
	if exists(l.tx, bidsBucket, domain.BidKey(rec.AuctionID, rec.Bidder)) {
		return domain.ErrBidderAlreadyBid
	}
	return putBidRecord(l.tx, rec)
}

func (l *bidLedger) Read(_ context.Context, auctionID uuid.UUID, bidder domain.AccountID) (*domain.BidRecord, error) {
	return getBidRecord(l.tx, auctionID, bidder)
}

func (l *bidLedger) Consume(_ context.Context, auctionID uuid.UUID, bidder domain.AccountID, at time.Time) (*domain.BidRecord, error) {
	rec, err := getBidRecord(l.tx, auctionID, bidder)
	if err != nil {
		return nil, err
	}
	if err := rec.Consume(at); err != nil {
		return nil, err
	}
	if err := putBidRecord(l.tx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
