package postgres

import (
	"context"
	"errors"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const auctionColumns = `id, initializer, treasury, end_at, highest_bid, highest_bidder, ended, created_at, updated_at`

// AuctionRepository implements domain.AuctionRepository interface
type AuctionRepository struct {
	db dbtx
}

// NewAuctionRepository creates a new instance of AuctionRepository over a pool or a transaction
func NewAuctionRepository(db dbtx) *AuctionRepository {
	return &AuctionRepository{db: db}
}

// Create inserts the auction record, it fails if the deployment already has one with that id
func (r *AuctionRepository) Create(ctx context.Context, a *domain.Auction) error {
	query := `
        INSERT INTO auctions (` + auctionColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, auctionArgs(a)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAuctionAlreadyInitialized
	}
	return nil
}

// Save updates the mutable fields. initializer, treasury and end_at are never rewritten.
func (r *AuctionRepository) Save(ctx context.Context, a *domain.Auction) error {
	query := `
        UPDATE auctions
        SET
            highest_bid = $2,
            highest_bidder = $3,
            ended = $4,
            updated_at = $5
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, a.ID, a.HighestBid, bidderArg(a.HighestBidder), a.Ended, a.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAuctionNotFound
	}
	return nil
}

// GetByID reads the auction without locking it
func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`
	return scanAuction(r.db.QueryRow(ctx, query, id))
}

// GetForUpdate reads the auction and holds a row lock until the transaction ends, which serializes
// bids, settlement and refunds
func (r *AuctionRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1 FOR UPDATE`
	return scanAuction(r.db.QueryRow(ctx, query, id))
}

func scanAuction(row pgx.Row) (*domain.Auction, error) {
	a := &domain.Auction{}
	var (
		initializer, treasury string
		highestBidder         *string // pointer to handle NULL
	)
	err := row.Scan(
		&a.ID,
		&initializer,
		&treasury,
		&a.EndAt,
		&a.HighestBid,
		&highestBidder,
		&a.Ended,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}
	a.Initializer = domain.AccountID(initializer)
	a.Treasury = domain.AccountID(treasury)
	if highestBidder != nil {
		bidder := domain.AccountID(*highestBidder)
		a.HighestBidder = &bidder
	}
	return a, nil
}

func auctionArgs(a *domain.Auction) []any {
	return []any{
		a.ID,
		string(a.Initializer),
		string(a.Treasury),
		a.EndAt,
		a.HighestBid,
		bidderArg(a.HighestBidder),
		a.Ended,
		a.CreatedAt,
		a.UpdatedAt,
	}
}

func bidderArg(b *domain.AccountID) *string {
	if b == nil {
		return nil
	}
	s := string(*b)
	return &s
}
