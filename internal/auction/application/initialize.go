package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InitializeUseCase creates the deployment's auction record
type InitializeUseCase struct {
	store     domain.Store
	validator *domain.Validator
	auctionID uuid.UUID
	publisher EventPublisher
}

func NewInitializeUseCase(store domain.Store, validator *domain.Validator, auctionID uuid.UUID, publisher EventPublisher) *InitializeUseCase {
	return &InitializeUseCase{store: store, validator: validator, auctionID: auctionID, publisher: publisher}
}

func (uc *InitializeUseCase) Execute(ctx context.Context, cmd InitializeDTO) (*AuctionStateDTO, error) {
	log.Info("Executing InitializeUseCase",
		zap.String("auctionID", uc.auctionID.String()),
		zap.String("initializer", string(cmd.Initializer)),
		zap.String("treasury", string(cmd.Treasury)),
		zap.Duration("duration", cmd.Duration),
	)

	auction, err := domain.NewAuction(uc.auctionID, cmd.Initializer, cmd.Treasury, cmd.Duration, uc.validator)
	if err != nil {
		return nil, fmt.Errorf("initialize use case: %w", err)
	}

	err = uc.store.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		return uow.Auctions().Create(ctx, auction)
	})
	if err != nil {
		log.Warn("InitializeUseCase: auction not created",
			zap.String("auctionID", uc.auctionID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("initialize use case: failed to create auction %s: %w", uc.auctionID, err)
	}

	state := NewAuctionStateDTO(auction, uc.validator.Now())
	uc.publisher.PublishAuctionEvent(ctx, AuctionEvent{Type: EventAuctionInitialized, State: state})
	log.Info("InitializeUseCase: auction created",
		zap.String("auctionID", uc.auctionID.String()),
		zap.Time("endAt", auction.EndAt),
	)
	return state, nil
}
