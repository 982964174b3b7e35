// Package memory is a process-local store. Each transaction works on a copy of the state that
// replaces the committed state only when the transaction function succeeds.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
)

type state struct {
	auctions  map[uuid.UUID]domain.Auction
	bids      map[string]domain.BidRecord // key: domain.BidKey
	accounts  map[domain.AccountID]domain.LedgerAccount
	transfers []domain.Transfer
}

func newState() *state {
	return &state{
		auctions: make(map[uuid.UUID]domain.Auction),
		bids:     make(map[string]domain.BidRecord),
		accounts: make(map[domain.AccountID]domain.LedgerAccount),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, a := range s.auctions {
		c.auctions[id] = copyAuction(a)
	}
	for k, b := range s.bids {
		c.bids[k] = b
	}
	for k, a := range s.accounts {
		c.accounts[k] = a
	}
	c.transfers = append([]domain.Transfer(nil), s.transfers...)
	return c
}

func copyAuction(a domain.Auction) domain.Auction {
	if a.HighestBid != nil {
		bid := *a.HighestBid
		a.HighestBid = &bid
	}
	if a.HighestBidder != nil {
		bidder := *a.HighestBidder
		a.HighestBidder = &bidder
	}
	return a
}

// Store implements domain.Store and domain.AccountLedger in memory
type Store struct {
	mu    sync.Mutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow domain.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &unitOfWork{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) GetAuction(_ context.Context, id uuid.UUID) (*domain.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.state.auctions[id]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	cp := copyAuction(a)
	return &cp, nil
}

func (s *Store) GetBidRecord(_ context.Context, auctionID uuid.UUID, bidder domain.AccountID) (*domain.BidRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.state.bids[domain.BidKey(auctionID, bidder)]
	if !ok {
		return nil, domain.ErrBidNotFound
	}
	return &rec, nil
}

func (s *Store) Deposit(_ context.Context, account domain.AccountID, amount int64) (*domain.LedgerAccount, error) {
	if account == "" {
		return nil, domain.ErrInvalidAccount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.state.accounts[account]
	if !ok {
		acc = domain.LedgerAccount{ID: account}
	}
	if err := acc.Credit(amount, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("deposit to %s: %w", account, err)
	}
	s.state.accounts[account] = acc
	return &acc, nil
}

func (s *Store) GetAccount(_ context.Context, account domain.AccountID) (*domain.LedgerAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.state.accounts[account]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &acc, nil
}

// Transfers returns the committed transfer journal, oldest first
func (s *Store) Transfers() []domain.Transfer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Transfer(nil), s.state.transfers...)
}

type unitOfWork struct {
	st *state
}

func (u *unitOfWork) Auctions() domain.AuctionRepository { return auctionRepository{u.st} }
func (u *unitOfWork) Bids() domain.BidLedger             { return bidLedger{u.st} }
func (u *unitOfWork) Transfers() domain.TransferGateway  { return transferGateway{u.st} }

type auctionRepository struct{ st *state }

func (r auctionRepository) GetForUpdate(_ context.Context, id uuid.UUID) (*domain.Auction, error) {
	a, ok := r.st.auctions[id]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	cp := copyAuction(a)
	return &cp, nil
}

func (r auctionRepository) Create(_ context.Context, auction *domain.Auction) error {
	if _, ok := r.st.auctions[auction.ID]; ok {
		return domain.ErrAuctionAlreadyInitialized
	}
	r.st.auctions[auction.ID] = copyAuction(*auction)
	return nil
}

func (r auctionRepository) Save(_ context.Context, auction *domain.Auction) error {
	if _, ok := r.st.auctions[auction.ID]; !ok {
		return domain.ErrAuctionNotFound
	}
	r.st.auctions[auction.ID] = copyAuction(*auction)
	return nil
}

type bidLedger struct{ st *state }

func (l bidLedger) Create(_ context.Context, rec *domain.BidRecord) error {
	key := domain.BidKey(rec.AuctionID, rec.Bidder)
	if _, ok := l.st.bids[key]; ok {
		return domain.ErrBidderAlreadyBid
	}
	l.st.bids[key] = *rec
	return nil
}

func (l bidLedger) Read(_ context.Context, auctionID uuid.UUID, bidder domain.AccountID) (*domain.BidRecord, error) {
	rec, ok := l.st.bids[domain.BidKey(auctionID, bidder)]
	if !ok {
		return nil, domain.ErrBidNotFound
	}
	return &rec, nil
}

func (l bidLedger) Consume(_ context.Context, auctionID uuid.UUID, bidder domain.AccountID, at time.Time) (*domain.BidRecord, error) {
	key := domain.BidKey(auctionID, bidder)
	rec, ok := l.st.bids[key]
	if !ok {
		return nil, domain.ErrBidNotFound
	}
	if err := rec.Consume(at); err != nil {
		return nil, err
	}
	l.st.bids[key] = rec
	return &rec, nil
}

type transferGateway struct{ st *state }

func (g transferGateway) Transfer(_ context.Context, from, to domain.AccountID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	now := time.Now().UTC()
	src, ok := g.st.accounts[from]
	if !ok {
		return fmt.Errorf("transfer from %s: %w", from, domain.ErrAccountNotFound)
	}
	if err := src.Debit(amount, now); err != nil {
		return fmt.Errorf("transfer from %s: %w", from, err)
	}
	g.st.accounts[from] = src

	dst, ok := g.st.accounts[to]
	if !ok {
		dst = domain.LedgerAccount{ID: to}
	}
	if err := dst.Credit(amount, now); err != nil {
		return fmt.Errorf("transfer to %s: %w", to, err)
	}
	g.st.accounts[to] = dst

	g.st.transfers = append(g.st.transfers, *domain.NewTransfer(from, to, amount, now))
	return nil
}
