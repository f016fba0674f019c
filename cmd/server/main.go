package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tradewire/bookfeed/internal/api"
	"github.com/tradewire/bookfeed/internal/bootstrap"
	"github.com/tradewire/bookfeed/internal/consumer"
	"github.com/tradewire/bookfeed/pkg/config"
	"github.com/tradewire/bookfeed/pkg/logger"
	"github.com/tradewire/bookfeed/pkg/postgresql"
	"github.com/tradewire/bookfeed/pkg/util"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	appLogger, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		slog.Error("Failed to create logger", "error", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	pgClient, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		appLogger.Error(err, logger.Field{Key: "action", Value: "postgres_connect"})
		os.Exit(1)
	}
	defer pgClient.Close()

	b := bootstrap.Bootstrap{}
	b.Init(bootstrap.BootstrapConfig{
		Config:   cfg,
		Logger:   appLogger,
		Postgres: pgClient,
		Clock:    util.RealClock{},
	})

	server := api.NewServer(cfg, b.Service.Hub, b.Service.Sequencer, b.Usecase.BookUsecase, pgClient, appLogger)

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		b.Service.Scheduler.Run(ctx)
	}()

	if cfg.OrderKafka.Enabled {
		orderConsumer := consumer.NewOrderConsumer(cfg.OrderKafka, appLogger, b.Service.Sequencer)
		defer orderConsumer.Stop()

		wg.Add(2)
		go func() {
			defer wg.Done()
			orderConsumer.Start(ctx)
		}()
		go func() {
			defer wg.Done()
			orderConsumer.Subscribe(ctx)
		}()
	}

	go func() {
		if err := server.Start(); err != nil {
			appLogger.Error(err, logger.Field{Key: "action", Value: "http_serve"})
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(err, logger.Field{Key: "action", Value: "http_shutdown"})
	}

	b.Service.Sequencer.Stop()
	wg.Wait()

	appLogger.Info("stopped")
}
