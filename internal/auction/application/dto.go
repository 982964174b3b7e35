package application

import (
	"time"

	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/google/uuid"
)

// InitializeDTO is the input of the Initialize use case. Duration is an offset from now.
type InitializeDTO struct {
	Initializer domain.AccountID
	Treasury    domain.AccountID
	Duration    time.Duration
}

// PlaceBidDTO is DTO input for PlaceBid useCase
type PlaceBidDTO struct {
	Bidder domain.AccountID
	Amount int64
}

// DepositDTO funds a ledger account
type DepositDTO struct {
	Account domain.AccountID
	Amount  int64
}

// AuctionStateDTO is the output DTO for exposing auction state to the REST and WS layers
type AuctionStateDTO struct {
	AuctionID     uuid.UUID `json:"auction_id"`
	Initializer   string    `json:"initializer"`
	Treasury      string    `json:"treasury"`
	EndAt         time.Time `json:"end_at"`
	State         string    `json:"state"`
	HighestBid    *int64    `json:"highest_bid,omitempty"`
	HighestBidder *string   `json:"highest_bidder,omitempty"`
	Ended         bool      `json:"ended"`
}

func NewAuctionStateDTO(a *domain.Auction, now time.Time) *AuctionStateDTO {
	dto := &AuctionStateDTO{
		AuctionID:   a.ID,
		Initializer: string(a.Initializer),
		Treasury:    string(a.Treasury),
		EndAt:       a.EndAt,
		State:       string(a.State(now)),
		Ended:       a.Ended,
	}
	if a.HighestBid != nil {
		bid := *a.HighestBid
		bidder := string(*a.HighestBidder)
		dto.HighestBid = &bid
		dto.HighestBidder = &bidder
	}
	return dto
}

type BidRecordDTO struct {
	AuctionID  uuid.UUID  `json:"auction_id"`
	Bidder     string     `json:"bidder"`
	Amount     int64      `json:"amount"`
	Refunded   bool       `json:"refunded"`
	CreatedAt  time.Time  `json:"created_at"`
	RefundedAt *time.Time `json:"refunded_at,omitempty"`
}

func NewBidRecordDTO(rec *domain.BidRecord) *BidRecordDTO {
	return &BidRecordDTO{
		AuctionID:  rec.AuctionID,
		Bidder:     string(rec.Bidder),
		Amount:     rec.Amount,
		Refunded:   rec.Refunded,
		CreatedAt:  rec.CreatedAt,
		RefundedAt: rec.RefundedAt,
	}
}

// SettlementDTO describes the payout made to the seller when the auction ends
type SettlementDTO struct {
	AuctionID   uuid.UUID `json:"auction_id"`
	Initializer string    `json:"initializer"`
	Winner      string    `json:"winner"`
	Amount      int64     `json:"amount"`
}

// RefundDTO describes a deposit returned to a losing bidder
type RefundDTO struct {
	AuctionID uuid.UUID `json:"auction_id"`
	Bidder    string    `json:"bidder"`
	Amount    int64     `json:"amount"`
}

type AccountDTO struct {
	ID        string    `json:"id"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAccountDTO(acc *domain.LedgerAccount) *AccountDTO {
	return &AccountDTO{ID: string(acc.ID), Balance: acc.Balance, UpdatedAt: acc.UpdatedAt}
}
