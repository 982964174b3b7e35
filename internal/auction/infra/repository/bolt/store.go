// Package bolt persists the auction, the bid ledger and the account ledger in a single BoltDB
// file. A bolt read-write transaction is exclusive, so every WithinTx call is serialized.
package bolt

import (
	"context"
	"encoding/json"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/cristianortiz/escrowAuction/internal/shared/boltdb"
	"github.com/cristianortiz/escrowAuction/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const (
	auctionsBucket  = "auctions"
	bidsBucket      = "bid_records"
	accountsBucket  = "ledger_accounts"
	transfersBucket = "ledger_transfers"
)

// Store implements domain.Store and domain.AccountLedger on top of BoltDB
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bolt file at path with all buckets in place
func Open(path string) (*Store, error) {
	db, err := boltdb.Open(path, auctionsBucket, bidsBucket, accountsBucket, transfersBucket)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow domain.UnitOfWork) error) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return fn(ctx, &unitOfWork{tx: tx})
	})
	if err != nil {
		log.Debug("bolt transaction rolled back", zap.Error(err))
	}
	return err
}

func (s *Store) GetAuction(_ context.Context, id uuid.UUID) (*domain.Auction, error) {
	var auction *domain.Auction
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		auction, err = getAuction(tx, id)
		return err
	})
	return auction, err
}

func (s *Store) GetBidRecord(_ context.Context, auctionID uuid.UUID, bidder domain.AccountID) (*domain.BidRecord, error) {
	var rec *domain.BidRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		rec, err = getBidRecord(tx, auctionID, bidder)
		return err
	})
	return rec, err
}

type unitOfWork struct {
	tx *bolt.Tx
}

func (u *unitOfWork) Auctions() domain.AuctionRepository { return &auctionRepository{tx: u.tx} }
func (u *unitOfWork) Bids() domain.BidLedger             { return &bidLedger{tx: u.tx} }
func (u *unitOfWork) Transfers() domain.TransferGateway  { return &transferGateway{tx: u.tx} }

func getJSON(tx *bolt.Tx, bucket, key string, v any, notFound error) error {
	raw := tx.Bucket([]byte(bucket)).Get([]byte(key))
	if raw == nil {
		return notFound
	}
	return json.Unmarshal(raw, v)
}

func putJSON(tx *bolt.Tx, bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return tx.Bucket([]byte(bucket)).Put([]byte(key), data)
}

func exists(tx *bolt.Tx, bucket, key string) bool {
	return tx.Bucket([]byte(bucket)).Get([]byte(key)) != nil
}

func now() time.Time { return time.Now().UTC() }
