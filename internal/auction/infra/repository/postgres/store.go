package postgres

import (
	"context"
	"fmt"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/cristianortiz/escrowAuction/internal/shared/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements domain.Store and domain.AccountLedger with PostgreSQL
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// WithinTx runs fn in a database transaction, committing when fn returns nil and rolling back otherwise
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow domain.UnitOfWork) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		log.Error("Store: failed to begin transaction", zap.Error(err))
		return fmt.Errorf("store: failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("Store: recovered from panic during transaction", zap.Any("panic", r))
			_ = tx.Rollback(ctx)
			panic(r)
		}
		if err != nil {
			log.Debug("Store: rolling back transaction", zap.Error(err))
			_ = tx.Rollback(ctx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			log.Error("Store: failed to commit transaction", zap.Error(commitErr))
			err = fmt.Errorf("store: failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(ctx, &unitOfWork{tx: tx})
	return err
}

func (s *Store) GetAuction(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	return NewAuctionRepository(s.pool).GetByID(ctx, id)
}

func (s *Store) GetBidRecord(ctx context.Context, auctionID uuid.UUID, bidder domain.AccountID) (*domain.BidRecord, error) {
	return NewBidLedger(s.pool).Read(ctx, auctionID, bidder)
}

func (s *Store) Deposit(ctx context.Context, account domain.AccountID, amount int64) (*domain.LedgerAccount, error) {
	if account == "" {
		return nil, domain.ErrInvalidAccount
	}
	acc, err := NewLedgerRepository(s.pool).Credit(ctx, account, amount)
	if err != nil {
		return nil, fmt.Errorf("deposit to %s: %w", account, err)
	}
	return acc, nil
}

func (s *Store) GetAccount(ctx context.Context, account domain.AccountID) (*domain.LedgerAccount, error) {
	return NewLedgerRepository(s.pool).GetByID(ctx, account)
}

type unitOfWork struct {
	tx pgx.Tx
}

func (u *unitOfWork) Auctions() domain.AuctionRepository { return NewAuctionRepository(u.tx) }
func (u *unitOfWork) Bids() domain.BidLedger             { return NewBidLedger(u.tx) }
func (u *unitOfWork) Transfers() domain.TransferGateway  { return NewLedgerRepository(u.tx) }
