package bolt

import (
	"context"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
)

// auctionRecord is the stored JSON shape of an auction
type auctionRecord struct {
	ID            uuid.UUID         `json:"id"`
	Initializer   domain.AccountID  `json:"initializer"`
	Treasury      domain.AccountID  `json:"treasury"`
	EndAt         time.Time         `json:"end_at"`
	HighestBid    *int64            `json:"highest_bid,omitempty"`
	HighestBidder *domain.AccountID `json:"highest_bidder,omitempty"`
	Ended         bool              `json:"ended"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func toAuctionRecord(a *domain.Auction) auctionRecord {
	return auctionRecord{
		ID:            a.ID,
		Initializer:   a.Initializer,
		Treasury:      a.Treasury,
		EndAt:         a.EndAt,
		HighestBid:    a.HighestBid,
		HighestBidder: a.HighestBidder,
		Ended:         a.Ended,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (r auctionRecord) toDomain() *domain.Auction {
	return &domain.Auction{
		ID:            r.ID,
		Initializer:   r.Initializer,
		Treasury:      r.Treasury,
		EndAt:         r.EndAt,
		HighestBid:    r.HighestBid,
		HighestBidder: r.HighestBidder,
		Ended:         r.Ended,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func getAuction(tx *bolt.Tx, id uuid.UUID) (*domain.Auction, error) {
	var rec auctionRecord
	if err := getJSON(tx, auctionsBucket, id.String(), &rec, domain.ErrAuctionNotFound); err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

type auctionRepository struct {
	tx *bolt.Tx
}

// GetForUpdate needs no explicit lock, the read-write transaction is already exclusive
func (r *auctionRepository) GetForUpdate(_ context.Context, id uuid.UUID) (*domain.Auction, error) {
	return getAuction(r.tx, id)
}

func (r *auctionRepository) Create(_ context.Context, auction *domain.Auction) error {
	if exists(r.tx, auctionsBucket, auction.ID.String()) {
		return domain.ErrAuctionAlreadyInitialized
	}
	return putJSON(r.tx, auctionsBucket, auction.ID.String(), toAuctionRecord(auction))
}

func (r *auctionRepository) Save(_ context.Context, auction *domain.Auction) error {
	if !exists(r.tx, auctionsBucket, auction.ID.String()) {
		return domain.ErrAuctionNotFound
	}
	return putJSON(r.tx, auctionsBucket, auction.ID.String(), toAuctionRecord(auction))
}
