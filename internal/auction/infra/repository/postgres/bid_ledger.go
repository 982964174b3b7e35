package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BidLedger implements domain.BidLedger, one row per (auction_id, bidder)
type BidLedger struct {
	db dbtx
}

// NewBidLedger creates new instance of BidLedger.
func NewBidLedger(db dbtx) *BidLedger {
	return &BidLedger{db: db}
}

// Create inserts the bidder's record, the primary key makes a second insert for the same bidder a no-op
func (l *BidLedger) Create(ctx context.Context, rec *domain.BidRecord) error {
	query := `
        INSERT INTO bid_records (auction_id, bidder, amount, refunded, created_at)
        VALUES ($1, $2, $3, FALSE, $4)
        ON CONFLICT (auction_id, bidder) DO NOTHING
    `
	tag, err := l.db.Exec(ctx, query, rec.AuctionID, string(rec.Bidder), rec.Amount, rec.CreatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBidderAlreadyBid
	}
	return nil
}

func (l *BidLedger) Read(ctx context.Context, auctionID uuid.UUID, bidder domain.AccountID) (*domain.BidRecord, error) {
	query := `
        SELECT auction_id, bidder, amount, refunded, created_at, refunded_at
        FROM bid_records
        WHERE auction_id = $1 AND bidder = $2
    `
	return scanBidRecord(l.db.QueryRow(ctx, query, auctionID, string(bidder)))
}

func (l *BidLedger) Consume(ctx context.Context, auctionID uuid.UUID, bidder domain.AccountID, at time.Time) (*domain.BidRecord, error) {
	query := `
        SELECT auction_id, bidder, amount, refunded, created_at, refunded_at
        FROM bid_records
        WHERE auction_id = $1 AND bidder = $2
        FOR UPDATE
    `
	rec, err := scanBidRecord(l.db.QueryRow(ctx, query, auctionID, string(bidder)))
	if err != nil {
		return nil, err
	}
	if err := rec.Consume(at); err != nil {
		return nil, err
	}
	_, err = l.db.Exec(ctx,
		`UPDATE bid_records SET refunded = TRUE, refunded_at = $3 WHERE auction_id = $1 AND bidder = $2`,
		auctionID, string(bidder), at,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func scanBidRecord(row pgx.Row) (*domain.BidRecord, error) {
	rec := &domain.BidRecord{}
	var bidder string
	err := row.Scan(
		&rec.AuctionID,
		&bidder,
		&rec.Amount,
		&rec.Refunded,
		&rec.CreatedAt,
		&rec.RefundedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBidNotFound
		}
		return nil, err
	}
	rec.Bidder = domain.AccountID(bidder)
	return rec, nil
}
