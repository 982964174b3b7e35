package application

import (
	"context"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=../infra/rest/mock_services_test.go -package=rest

// AuctionService defines application interface layer of auction module
// exposes uses cases to external layer, aka infra
type AuctionService interface {
	// Initialize creates the auction, it can only succeed once per deployment
	Initialize(ctx context.Context, cmd InitializeDTO) (*AuctionStateDTO, error)
	// PlaceBid escrows the bid amount in the treasury and records it, a bidder can bid only once
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*BidRecordDTO, error)
	// EndAuction pays the highest bid to the initializer after the deadline
	EndAuction(ctx context.Context, caller domain.AccountID) (*SettlementDTO, error)
	// Refund returns a losing bidder's deposit after the auction has ended
	Refund(ctx context.Context, bidder domain.AccountID) (*RefundDTO, error)
	GetAuctionState(ctx context.Context) (*AuctionStateDTO, error)
	GetBidRecord(ctx context.Context, bidder domain.AccountID) (*BidRecordDTO, error)
}

// AccountService exposes ledger administration, funding accounts and reading balances
type AccountService interface {
	Deposit(ctx context.Context, cmd DepositDTO) (*AccountDTO, error)
	GetAccount(ctx context.Context, id domain.AccountID) (*AccountDTO, error)
}

// concret implementation of AuctionService (struct)
type auctionService struct {
	initializeUC   *InitializeUseCase
	placeBidUC     *PlaceBidUseCase
	endAuctionUC   *EndAuctionUseCase
	refundUC       *RefundUseCase
	getStateUC     *GetAuctionStateUseCase
	getBidRecordUC *GetBidRecordUseCase
}

// NewAuctionService wires every auction use case over the same store, clock and auction ID.
// A nil publisher disables live notifications.
func NewAuctionService(store domain.Store, validator *domain.Validator, auctionID uuid.UUID, publisher EventPublisher) AuctionService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &auctionService{
		initializeUC:   NewInitializeUseCase(store, validator, auctionID, publisher),
		placeBidUC:     NewPlaceBidUseCase(store, validator, auctionID, publisher),
		endAuctionUC:   NewEndAuctionUseCase(store, validator, auctionID, publisher),
		refundUC:       NewRefundUseCase(store, validator, auctionID, publisher),
		getStateUC:     NewGetAuctionStateUseCase(store, validator, auctionID),
		getBidRecordUC: NewGetBidRecordUseCase(store, auctionID),
	}
}

func (as *auctionService) Initialize(ctx context.Context, cmd InitializeDTO) (*AuctionStateDTO, error) {
	return as.initializeUC.Execute(ctx, cmd)
}

// PlaceBid implements AuctionService.
func (as *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*BidRecordDTO, error) {
	return as.placeBidUC.Execute(ctx, cmd)
}

func (as *auctionService) EndAuction(ctx context.Context, caller domain.AccountID) (*SettlementDTO, error) {
	return as.endAuctionUC.Execute(ctx, caller)
}

func (as *auctionService) Refund(ctx context.Context, bidder domain.AccountID) (*RefundDTO, error) {
	return as.refundUC.Execute(ctx, bidder)
}

// GetAuctionState to implementss AuctionService
func (as *auctionService) GetAuctionState(ctx context.Context) (*AuctionStateDTO, error) {
	return as.getStateUC.Execute(ctx)
}

func (as *auctionService) GetBidRecord(ctx context.Context, bidder domain.AccountID) (*BidRecordDTO, error) {
	return as.getBidRecordUC.Execute(ctx, bidder)
}
