package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// LedgerRepository is the account ledger: balances plus the transfer journal. Inside a transaction it
// serves as the domain.TransferGateway.
type LedgerRepository struct {
	db dbtx
}

func NewLedgerRepository(db dbtx) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetByID returns the account or domain.ErrAccountNotFound
func (r *LedgerRepository) GetByID(ctx context.Context, id domain.AccountID) (*domain.LedgerAccount, error) {
	query := `SELECT id, balance, updated_at FROM ledger_accounts WHERE id = $1`
	return scanAccount(r.db.QueryRow(ctx, query, string(id)))
}

// Credit adds amount to the account, creating it on first credit
func (r *LedgerRepository) Credit(ctx context.Context, id domain.AccountID, amount int64) (*domain.LedgerAccount, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	query := `
        INSERT INTO ledger_accounts (id, balance, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE
        SET
            balance = ledger_accounts.balance + EXCLUDED.balance,
            updated_at = EXCLUDED.updated_at
        RETURNING id, balance, updated_at
    `
	acc, err := scanAccount(r.db.QueryRow(ctx, query, string(id), amount, time.Now().UTC()))
	if isNumericOverflow(err) {
		return nil, domain.ErrBalanceOverflow
	}
	return acc, err
}

// isNumericOverflow reports the "bigint out of range" error (SQLSTATE 22003)
func isNumericOverflow(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22003"
}

// Transfer debits from and credits to. The debit is conditional on the balance so it can never go
// negative, even under concurrent transfers from the same account.
func (r *LedgerRepository) Transfer(ctx context.Context, from, to domain.AccountID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	now := time.Now().UTC()

	tag, err := r.db.Exec(ctx,
		`UPDATE ledger_accounts SET balance = balance - $2, updated_at = $3 WHERE id = $1 AND balance >= $2`,
		string(from), amount, now,
	)
	if err != nil {
		return fmt.Errorf("transfer from %s: %w", from, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, from); err != nil {
			return fmt.Errorf("transfer from %s: %w", from, err)
		}
		return fmt.Errorf("transfer from %s: %w", from, domain.ErrInsufficientFunds)
	}

	if _, err := r.Credit(ctx, to, amount); err != nil {
		return fmt.Errorf("transfer to %s: %w", to, err)
	}

	t := domain.NewTransfer(from, to, amount, now)
	_, err = r.db.Exec(ctx,
		`INSERT INTO ledger_transfers (id, from_account, to_account, amount, created_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, string(t.From), string(t.To), t.Amount, t.CreatedAt,
	)
	return err
}

func scanAccount(row pgx.Row) (*domain.LedgerAccount, error) {
	acc := &domain.LedgerAccount{}
	var id string
	if err := row.Scan(&id, &acc.Balance, &acc.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	acc.ID = domain.AccountID(id)
	return acc, nil
}
