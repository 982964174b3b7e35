package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
)

// GetAuctionStateUseCase retrieves the current state of the auction, the state field is derived
// from the deadline at read time
type GetAuctionStateUseCase struct {
	store     domain.Store
	validator *domain.Validator
	auctionID uuid.UUID
}

// NewGetAuctionStateUseCase creates a new instance of GetAuctionStateUseCase.
func NewGetAuctionStateUseCase(store domain.Store, validator *domain.Validator, auctionID uuid.UUID) *GetAuctionStateUseCase {
	return &GetAuctionStateUseCase{
		store:     store,
		validator: validator,
		auctionID: auctionID,
	}
}

func (uc *GetAuctionStateUseCase) Execute(ctx context.Context) (*AuctionStateDTO, error) {
	auction, err := uc.store.GetAuction(ctx, uc.auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction state: %w", err)
	}
	return NewAuctionStateDTO(auction, uc.validator.Now()), nil
}

// GetBidRecordUseCase reads a single bidder's entry in the bid ledger
type GetBidRecordUseCase struct {
	store     domain.Store
	auctionID uuid.UUID
}

func NewGetBidRecordUseCase(store domain.Store, auctionID uuid.UUID) *GetBidRecordUseCase {
	return &GetBidRecordUseCase{store: store, auctionID: auctionID}
}

func (uc *GetBidRecordUseCase) Execute(ctx context.Context, bidder domain.AccountID) (*BidRecordDTO, error) {
	rec, err := uc.store.GetBidRecord(ctx, uc.auctionID, bidder)
	if err != nil {
		return nil, fmt.Errorf("get bid record for %s: %w", bidder, err)
	}
	return NewBidRecordDTO(rec), nil
}
