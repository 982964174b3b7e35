package bolt_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/cristianortiz/escrowAuction/internal/auction/infra/repository/bolt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *bolt.Store {
	t.Helper()
	s, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedAuction(t *testing.T, s *bolt.Store) *domain.Auction {
	t.Helper()
	a := &domain.Auction{
		ID:          uuid.New(),
		Initializer: "seller",
		Treasury:    "treasury",
		EndAt:       time.Now().UTC().Add(time.Hour).Truncate(time.Second),
	}
	err := s.WithinTx(context.Background(), func(ctx context.Context, uow domain.UnitOfWork) error {
		return uow.Auctions().Create(ctx, a)
	})
	require.NoError(t, err)
	return a
}

func TestStore_AuctionRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := seedAuction(t, s)

	got, err := s.GetAuction(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, a.Initializer, got.Initializer)
	require.True(t, a.EndAt.Equal(got.EndAt))
	require.Nil(t, got.HighestBid)
	require.Nil(t, got.HighestBidder)

	err = s.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		return uow.Auctions().Create(ctx, a)
	})
	require.ErrorIs(t, err, domain.ErrAuctionAlreadyInitialized)

	err = s.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		locked, err := uow.Auctions().GetForUpdate(ctx, a.ID)
		if err != nil {
			return err
		}
		locked.ApplyBid("alice", 42, time.Now())
		return uow.Auctions().Save(ctx, locked)
	})
	require.NoError(t, err)

	got, err = s.GetAuction(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, int64(42), *got.HighestBid)
	require.Equal(t, domain.AccountID("alice"), *got.HighestBidder)

	_, err = s.GetAuction(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)
}

func TestStore_FailedTransactionLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := seedAuction(t, s)
	_, err := s.Deposit(ctx, "bob", 30)
	require.NoError(t, err)

	// the transfer fails after the record was written: nothing may survive
	err = s.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		if err := uow.Bids().Create(ctx, domain.NewBidRecord(a.ID, "bob", 50, time.Now())); err != nil {
			return err
		}
		return uow.Transfers().Transfer(ctx, "bob", a.Treasury, 50)
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = s.GetBidRecord(ctx, a.ID, "bob")
	require.ErrorIs(t, err, domain.ErrBidNotFound)
	bob, err := s.GetAccount(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, int64(30), bob.Balance)
}

func TestStore_BidLedger(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := seedAuction(t, s)

	inTx := func(fn func(ctx context.Context, uow domain.UnitOfWork) error) error {
		return s.WithinTx(ctx, fn)
	}

	require.NoError(t, inTx(func(ctx context.Context, uow domain.UnitOfWork) error {
		return uow.Bids().Create(ctx, domain.NewBidRecord(a.ID, "carol", 15, time.Now()))
	}))
	require.ErrorIs(t, inTx(func(ctx context.Context, uow domain.UnitOfWork) error {
		return uow.Bids().Create(ctx, domain.NewBidRecord(a.ID, "carol", 99, time.Now()))
	}), domain.ErrBidderAlreadyBid)

	rec, err := s.GetBidRecord(ctx, a.ID, "carol")
	require.NoError(t, err)
	require.Equal(t, int64(15), rec.Amount)
	require.False(t, rec.Refunded)

	consume := func(ctx context.Context, uow domain.UnitOfWork) error {
		_, err := uow.Bids().Consume(ctx, a.ID, "carol", time.Now())
		return err
	}
	require.NoError(t, inTx(consume))
	require.ErrorIs(t, inTx(consume), domain.ErrBidderAlreadyClaimed)
	require.ErrorIs(t, inTx(func(ctx context.Context, uow domain.UnitOfWork) error {
		_, err := uow.Bids().Consume(ctx, a.ID, "nobody", time.Now())
		return err
	}), domain.ErrBidNotFound)

	rec, err = s.GetBidRecord(ctx, a.ID, "carol")
	require.NoError(t, err)
	require.True(t, rec.Refunded)
	require.NotNil(t, rec.RefundedAt)
}

func TestStore_Ledger(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetAccount(ctx, "dave")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	_, err = s.Deposit(ctx, "dave", 0)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = s.Deposit(ctx, "", 10)
	require.ErrorIs(t, err, domain.ErrInvalidAccount)

	acc, err := s.Deposit(ctx, "dave", 10)
	require.NoError(t, err)
	require.Equal(t, int64(10), acc.Balance)
	acc, err = s.Deposit(ctx, "dave", 5)
	require.NoError(t, err)
	require.Equal(t, int64(15), acc.Balance)

	err = s.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		return uow.Transfers().Transfer(ctx, "dave", "erin", 15)
	})
	require.NoError(t, err)

	dave, err := s.GetAccount(ctx, "dave")
	require.NoError(t, err)
	require.Equal(t, int64(0), dave.Balance)
	erin, err := s.GetAccount(ctx, "erin")
	require.NoError(t, err)
	require.Equal(t, int64(15), erin.Balance)

	err = s.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		return uow.Transfers().Transfer(ctx, "ghost", "erin", 1)
	})
	require.True(t, errors.Is(err, domain.ErrAccountNotFound))
}

func TestStore_CreditOverflowRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_, err := s.Deposit(ctx, "treasury", math.MaxInt64)
	require.NoError(t, err)
	_, err = s.Deposit(ctx, "alice", 10)
	require.NoError(t, err)

	err = s.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		return uow.Transfers().Transfer(ctx, "alice", "treasury", 10)
	})
	require.ErrorIs(t, err, domain.ErrBalanceOverflow)

	alice, err := s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(10), alice.Balance)
	treasury, err := s.GetAccount(ctx, "treasury")
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), treasury.Balance)
}
