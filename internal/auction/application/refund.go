package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RefundUseCase returns a losing bidder's deposit once the seller has been paid
type RefundUseCase struct {
	store     domain.Store
	validator *domain.Validator
	auctionID uuid.UUID
	publisher EventPublisher
}

func NewRefundUseCase(store domain.Store, validator *domain.Validator, auctionID uuid.UUID, publisher EventPublisher) *RefundUseCase {
	return &RefundUseCase{store: store, validator: validator, auctionID: auctionID, publisher: publisher}
}

func (uc *RefundUseCase) Execute(ctx context.Context, bidder domain.AccountID) (*RefundDTO, error) {
	log.Info("Executing RefundUseCase",
		zap.String("auctionID", uc.auctionID.String()),
		zap.String("bidder", string(bidder)),
	)

	var (
		rec     *domain.BidRecord
		auction *domain.Auction
	)
	err := uc.store.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		a, err := uow.Auctions().GetForUpdate(ctx, uc.auctionID)
		if err != nil {
			return err
		}
		if err := a.ValidateRefund(bidder, uc.validator); err != nil {
			return err
		}

		// Consume fails on a missing or already refunded record before the payout happens
		consumed, err := uow.Bids().Consume(ctx, a.ID, bidder, uc.validator.Now())
		if err != nil {
			return err
		}
		if err := uow.Transfers().Transfer(ctx, a.Treasury, bidder, consumed.Amount); err != nil {
			return err
		}
		rec, auction = consumed, a
		return nil
	})
	if err != nil {
		log.Warn("RefundUseCase: refund rejected",
			zap.String("auctionID", uc.auctionID.String()),
			zap.String("bidder", string(bidder)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("refund use case: refund failed for auction %s: %w", uc.auctionID, err)
	}

	log.Info("RefundUseCase: deposit returned",
		zap.String("auctionID", uc.auctionID.String()),
		zap.String("bidder", string(bidder)),
		zap.Int64("amount", rec.Amount),
	)
	uc.publisher.PublishAuctionEvent(ctx, AuctionEvent{
		Type:  EventRefundClaimed,
		State: NewAuctionStateDTO(auction, uc.validator.Now()),
	})
	return &RefundDTO{AuctionID: rec.AuctionID, Bidder: string(rec.Bidder), Amount: rec.Amount}, nil
}
