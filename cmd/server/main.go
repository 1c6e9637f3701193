package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sovereign-game/sovereign-server/internal/cards"
	"github.com/sovereign-game/sovereign-server/internal/config"
	"github.com/sovereign-game/sovereign-server/internal/repository"
	"github.com/sovereign-game/sovereign-server/internal/room"
	"github.com/sovereign-game/sovereign-server/internal/server"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	cardsPath  = flag.String("cards", "", "path to card data file (overrides config)")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *cardsPath != "" {
		cfg.Cards.Path = *cardsPath
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting sovereign server",
		zap.String("version", version),
		zap.String("cards", cfg.Cards.Path),
	)

	catalog, err := cards.Load(cfg.Cards.Path)
	if err != nil {
		logger.Fatal("failed to load card data", zap.Error(err))
	}
	logger.Info("card catalog loaded", zap.Int("cards", len(catalog.IDs())))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var results server.ResultRecorder
	if cfg.Database.DSN != "" {
		db, err := repository.NewDB(ctx, cfg.Database.DSN, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		results = repository.NewMatchRepository(db)
		logger.Info("match result store initialized")
	}

	rooms := room.NewManager(catalog, logger)
	srv := server.New(rooms, catalog, results, cfg.Server.StaticDir, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-sigChan
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
