package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// LedgerAccount is a balance held by the ledger substrate
type LedgerAccount struct {
	ID        AccountID
	Balance   int64
	UpdatedAt time.Time
}

// Transfer is the journal entry written for every movement of funds
type Transfer struct {
	ID        uuid.UUID
	From      AccountID
	To        AccountID
	Amount    int64
	CreatedAt time.Time
}

func NewTransfer(from, to AccountID, amount int64, at time.Time) *Transfer {
	return &Transfer{
		ID:        uuid.New(),
		From:      from,
		To:        to,
		Amount:    amount,
		CreatedAt: at,
	}
}

// Debit removes amount from the account, it never lets the balance go negative
func (a *LedgerAccount) Debit(amount int64, at time.Time) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	a.UpdatedAt = at
	return nil
}

// Credit adds amount to the account, it fails instead of wrapping past the int64 range
func (a *LedgerAccount) Credit(amount int64, at time.Time) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > math.MaxInt64-a.Balance {
		return ErrBalanceOverflow
	}
	a.Balance += amount
	a.UpdatedAt = at
	return nil
}
