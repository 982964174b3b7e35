package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EndAuctionUseCase pays the highest bid from the treasury to the seller and closes the auction
type EndAuctionUseCase struct {
	store     domain.Store
	validator *domain.Validator
	auctionID uuid.UUID
	publisher EventPublisher
}

func NewEndAuctionUseCase(store domain.Store, validator *domain.Validator, auctionID uuid.UUID, publisher EventPublisher) *EndAuctionUseCase {
	return &EndAuctionUseCase{store: store, validator: validator, auctionID: auctionID, publisher: publisher}
}

func (uc *EndAuctionUseCase) Execute(ctx context.Context, caller domain.AccountID) (*SettlementDTO, error) {
	log.Info("Executing EndAuctionUseCase",
		zap.String("auctionID", uc.auctionID.String()),
		zap.String("caller", string(caller)),
	)

	var auction *domain.Auction
	err := uc.store.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		a, err := uow.Auctions().GetForUpdate(ctx, uc.auctionID)
		if err != nil {
			return err
		}
		if err := a.ValidateSettle(caller, uc.validator); err != nil {
			return err
		}
		if err := uow.Transfers().Transfer(ctx, a.Treasury, a.Initializer, *a.HighestBid); err != nil {
			return err
		}
		a.MarkEnded(uc.validator.Now())
		if err := uow.Auctions().Save(ctx, a); err != nil {
			return err
		}
		auction = a
		return nil
	})
	if err != nil {
		log.Warn("EndAuctionUseCase: settlement rejected",
			zap.String("auctionID", uc.auctionID.String()),
			zap.String("caller", string(caller)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("end auction use case: settlement failed for auction %s: %w", uc.auctionID, err)
	}

	uc.publisher.PublishAuctionEvent(ctx, AuctionEvent{
		Type:  EventAuctionEnded,
		State: NewAuctionStateDTO(auction, uc.validator.Now()),
	})
	return &SettlementDTO{
		AuctionID:   auction.ID,
		Initializer: string(auction.Initializer),
		Winner:      string(*auction.HighestBidder),
		Amount:      *auction.HighestBid,
	}, nil
}
