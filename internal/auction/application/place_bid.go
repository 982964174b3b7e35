package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/cristianortiz/escrowAuction/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// PlaceBidUseCase escrows a bid in the treasury, records it in the bid ledger and updates the
// highest bid, all in one store transaction
type PlaceBidUseCase struct {
	store     domain.Store
	validator *domain.Validator
	auctionID uuid.UUID
	publisher EventPublisher
}

// NewPlaceBidUseCase creates a new instace of PlaceBidUseCase struct, it receives dependency through injection
func NewPlaceBidUseCase(store domain.Store, validator *domain.Validator, auctionID uuid.UUID, publisher EventPublisher) *PlaceBidUseCase {
	return &PlaceBidUseCase{
		store:     store,
		validator: validator,
		auctionID: auctionID,
		publisher: publisher,
	}
}

func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidDTO) (*BidRecordDTO, error) {
	log.Info("Executing PlaceBidUseCase",
		zap.String("auctionID", uc.auctionID.String()),
		zap.String("bidder", string(cmd.Bidder)),
		zap.Int64("amount", cmd.Amount),
	)

	var (
		rec     *domain.BidRecord
		auction *domain.Auction
	)
	err := uc.store.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		// 1. load and lock the auction, then run the window/amount checks
		a, err := uow.Auctions().GetForUpdate(ctx, uc.auctionID)
		if err != nil {
			return err
		}
		if err := a.ValidateBid(cmd.Bidder, cmd.Amount, uc.validator); err != nil {
			return err
		}

		// 2. one record per bidder, checked before any funds move
		_, err = uow.Bids().Read(ctx, a.ID, cmd.Bidder)
		switch {
		case err == nil:
			return domain.ErrBidderAlreadyBid
		case !errors.Is(err, domain.ErrBidNotFound):
			return err
		}

		// 3. deposit into the treasury, every bid is escrowed whether it leads or not
		if err := uow.Transfers().Transfer(ctx, cmd.Bidder, a.Treasury, cmd.Amount); err != nil {
			return err
		}

		// 4. bid ledger entry and highest bid update
		now := uc.validator.Now()
		newRec := domain.NewBidRecord(a.ID, cmd.Bidder, cmd.Amount, now)
		if err := uow.Bids().Create(ctx, newRec); err != nil {
			return err
		}
		a.ApplyBid(cmd.Bidder, cmd.Amount, now)
		if err := uow.Auctions().Save(ctx, a); err != nil {
			return err
		}

		rec, auction = newRec, a
		return nil
	})
	if err != nil {
		log.Warn("PlaceBidUseCase: bid rejected",
			zap.String("auctionID", uc.auctionID.String()),
			zap.String("bidder", string(cmd.Bidder)),
			zap.Int64("amount", cmd.Amount),
			zap.Error(err),
		)
		return nil, fmt.Errorf("place bid use case: bid failed for auction %s: %w", uc.auctionID, err)
	}

	uc.publisher.PublishAuctionEvent(ctx, AuctionEvent{
		Type:  EventBidPlaced,
		State: NewAuctionStateDTO(auction, uc.validator.Now()),
	})
	return NewBidRecordDTO(rec), nil
}
