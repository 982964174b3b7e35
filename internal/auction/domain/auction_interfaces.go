package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AuctionRepository interface {
	// GetForUpdate loads the auction and locks it until the transaction ends
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Auction, error)
	Create(ctx context.Context, auction *Auction) error
	Save(ctx context.Context, auction *Auction) error
}

// BidLedger stores one BidRecord per bidder. There is no update path for the amount.
type BidLedger interface {
	Create(ctx context.Context, rec *BidRecord) error
	Read(ctx context.Context, auctionID uuid.UUID, bidder AccountID) (*BidRecord, error)
	// Consume marks the record as refunded, a second call fails with ErrBidderAlreadyClaimed
	Consume(ctx context.Context, auctionID uuid.UUID, bidder AccountID, at time.Time) (*BidRecord, error)
}

// TransferGateway moves funds between ledger accounts, all-or-nothing within the transaction
type TransferGateway interface {
	Transfer(ctx context.Context, from, to AccountID, amount int64) error
}

// UnitOfWork groups the repositories bound to a single store transaction
type UnitOfWork interface {
	Auctions() AuctionRepository
	Bids() BidLedger
	Transfers() TransferGateway
}

// Store runs fn inside one transaction, committing only if fn returns nil
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
	// GetAuction is a plain read outside of any write transaction
	GetAuction(ctx context.Context, id uuid.UUID) (*Auction, error)
	GetBidRecord(ctx context.Context, auctionID uuid.UUID, bidder AccountID) (*BidRecord, error)
}

// AccountLedger is the administrative side of the ledger: funding and balance reads
type AccountLedger interface {
	Deposit(ctx context.Context, account AccountID, amount int64) (*LedgerAccount, error)
	GetAccount(ctx context.Context, account AccountID) (*LedgerAccount, error)
}
