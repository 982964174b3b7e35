package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianortiz/escrowAuction/internal/auction/application"
	"github.com/cristianortiz/escrowAuction/internal/auction/domain"
	"github.com/cristianortiz/escrowAuction/internal/auction/infra/repository/bolt"
	"github.com/cristianortiz/escrowAuction/internal/auction/infra/repository/memory"
	"github.com/cristianortiz/escrowAuction/internal/auction/infra/repository/postgres"
	"github.com/cristianortiz/escrowAuction/internal/auction/infra/rest"
	auctionws "github.com/cristianortiz/escrowAuction/internal/auction/infra/websocket"
	"github.com/cristianortiz/escrowAuction/internal/shared/config"
	"github.com/cristianortiz/escrowAuction/internal/shared/db"
	"github.com/cristianortiz/escrowAuction/internal/shared/db/migrations"
	"github.com/cristianortiz/escrowAuction/internal/shared/httpserver"
	"github.com/cristianortiz/escrowAuction/internal/shared/logger"
	"github.com/cristianortiz/escrowAuction/internal/shared/websocket"
	"go.uber.org/zap"
)

// storage is what a store driver provides: auction transactions plus ledger administration
type storage interface {
	domain.Store
	domain.AccountLedger
}

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}
	log.Info("Starting escrowAuction server...",
		zap.String("env", cfg.Env),
		zap.String("store", cfg.StoreDriver),
		zap.String("auctionID", cfg.AuctionID.String()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Store initialization failed", zap.Error(err))
	}
	defer closeStore()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	validator := domain.NewValidator(nil)
	auctionService := application.NewAuctionService(store, validator, cfg.AuctionID, auctionws.NewHubPublisher(hub))
	accountService := application.NewAccountService(store)

	wsHandler := auctionws.NewAuctionWSHandler(ctx, auctionService, hub, cfg.AuctionID)
	go wsHandler.ListenForMessages(ctx)

	server := httpserver.NewServer(cfg.ShutdownTimeout,
		rest.NewAuctionHandler(auctionService, accountService),
		wsHandler,
	)
	if err := server.Start(ctx, cfg.Addr()); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
	log.Info("Server stopped")
}

// openStore builds the configured store driver, the returned func releases its resources
func openStore(ctx context.Context, cfg *config.Config) (storage, func(), error) {
	log := logger.GetLogger()

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		dsn := cfg.DB.DSN()
		if cfg.RunMigrations {
			log.Info("Running database migrations...")
			if err := migrations.RunMigrations(dsn); err != nil {
				return nil, nil, fmt.Errorf("database migration failed: %w", err)
			}
			log.Info("Database migrations completed successfully.")
		}
		pool, err := db.GetPostgresDBPool(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(pool), pool.Close, nil

	case config.DriverBolt:
		store, err := bolt.Open(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error("Failed to close bolt store", zap.Error(err))
			}
		}, nil

	case config.DriverMemory:
		log.Warn("Using the in-memory store, state is lost on restart")
		return memory.NewStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
