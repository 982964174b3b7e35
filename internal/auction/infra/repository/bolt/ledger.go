package bolt

import (
	"context"
	"errors"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
)

type accountRecord struct {
	ID        domain.AccountID `json:"id"`
	Balance   int64            `json:"balance"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type transferRecord struct {
	ID        uuid.UUID        `json:"id"`
	From      domain.AccountID `json:"from"`
	To        domain.AccountID `json:"to"`
	Amount    int64            `json:"amount"`
	CreatedAt time.Time        `json:"created_at"`
}

func getAccount(tx *bolt.Tx, id domain.AccountID) (*domain.LedgerAccount, error) {
	var rec accountRecord
	if err := getJSON(tx, accountsBucket, string(id), &rec, domain.ErrAccountNotFound); err != nil {
		return nil, err
	}
	return &domain.LedgerAccount{ID: rec.ID, Balance: rec.Balance, UpdatedAt: rec.UpdatedAt}, nil
}

func putAccount(tx *bolt.Tx, acc *domain.LedgerAccount) error {
	return putJSON(tx, accountsBucket, string(acc.ID), accountRecord{
		ID:        acc.ID,
		Balance:   acc.Balance,
		UpdatedAt: acc.UpdatedAt,
	})
}

// credit adds amount to the account, creating it on first credit
func credit(tx *bolt.Tx, id domain.AccountID, amount int64, at time.Time) (*domain.LedgerAccount, error) {
	acc, err := getAccount(tx, id)
	if errors.Is(err, domain.ErrAccountNotFound) {
		acc = &domain.LedgerAccount{ID: id}
	} else if err != nil {
		return nil, err
	}
	if err := acc.Credit(amount, at); err != nil {
		return nil, err
	}
	return acc, putAccount(tx, acc)
}

type transferGateway struct {
	tx *bolt.Tx
}

func (g *transferGateway) Transfer(_ context.Context, from, to domain.AccountID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	at := now()

	src, err := getAccount(g.tx, from)
	if err != nil {
		return fmt.Errorf("transfer from %s: %w", from, err)
	}
	if err := src.Debit(amount, at); err != nil {
		return fmt.Errorf("transfer from %s: %w", from, err)
	}
	if err := putAccount(g.tx, src); err != nil {
		return err
	}
	if _, err := credit(g.tx, to, amount, at); err != nil {
		return fmt.Errorf("transfer to %s: %w", to, err)
	}

	t := domain.NewTransfer(from, to, amount, at)
	return putJSON(g.tx, transfersBucket, t.ID.String(), transferRecord{
		ID:        t.ID,
		From:      t.From,
		To:        t.To,
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
	})
}

// Deposit funds an account from outside the auction, creating it if needed
func (s *Store) Deposit(_ context.Context, account domain.AccountID, amount int64) (*domain.LedgerAccount, error) {
	if account == "" {
		return nil, domain.ErrInvalidAccount
	}
	var acc *domain.LedgerAccount
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		acc, err = credit(tx, account, amount, now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("deposit to %s: %w", account, err)
	}
	return acc, nil
}

func (s *Store) GetAccount(_ context.Context, account domain.AccountID) (*domain.LedgerAccount, error) {
	var acc *domain.LedgerAccount
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		acc, err = getAccount(tx, account)
		return err
	})
	return acc, err
}
