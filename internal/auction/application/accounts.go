package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"go.uber.org/zap"
)

type accountService struct {
	ledger domain.AccountLedger
}

func NewAccountService(ledger domain.AccountLedger) AccountService {
	return &accountService{ledger: ledger}
}

func (s *accountService) Deposit(ctx context.Context, cmd DepositDTO) (*AccountDTO, error) {
	if cmd.Account == "" {
		return nil, fmt.Errorf("deposit: %w", domain.ErrInvalidAccount)
	}
	if cmd.Amount <= 0 {
		return nil, fmt.Errorf("deposit: %w", domain.ErrInvalidAmount)
	}
	acc, err := s.ledger.Deposit(ctx, cmd.Account, cmd.Amount)
	if err != nil {
		log.Error("Deposit failed",
			zap.String("account", string(cmd.Account)),
			zap.Int64("amount", cmd.Amount),
			zap.Error(err),
		)
		return nil, fmt.Errorf("deposit: %w", err)
	}
	log.Info("Account funded",
		zap.String("account", string(cmd.Account)),
		zap.Int64("amount", cmd.Amount),
		zap.Int64("balance", acc.Balance),
	)
	return NewAccountDTO(acc), nil
}

func (s *accountService) GetAccount(ctx context.Context, id domain.AccountID) (*AccountDTO, error) {
	acc, err := s.ledger.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", id, err)
	}
	return NewAccountDTO(acc), nil
}
