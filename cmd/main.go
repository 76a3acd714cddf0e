package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/logger"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository/postgresql"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/server"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.New(zapcore.InfoLevel)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	database, err := db.NewDb(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	customerRepo := postgresql.NewCustomerRepo(database)
	sellerRepo := postgresql.NewSellerRepo(database)
	orderRepo := postgresql.NewOrderRepo(database)
	geolocationRepo := postgresql.NewGeolocationRepo(database)

	customers := service.NewCustomerService(customerRepo)
	sellers := service.NewSellerService(sellerRepo)
	orders := service.NewOrderService(orderRepo, customerRepo)
	geolocations := service.NewGeolocationService(geolocationRepo)

	var producer kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewWriterProducer(cfg.KafkaBrokers)
	} else {
		log.Info("no kafka brokers configured, audit entries go to the log")
		producer = kafka.NewLogProducer(log)
	}

	audit := server.NewAuditManager(
		cfg.AuditWorkers,
		cfg.AuditBatchSize,
		cfg.AuditFlushTimeout,
		producer,
		cfg.KafkaTopic,
		log,
	)

	srv := server.New(customers, sellers, orders, geolocations, database, audit, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx, cfg)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		return
	}
	log.Info("server stopped")
}
