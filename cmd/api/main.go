package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"account-ledger/config"
	httpHandler "account-ledger/internal/adapter/http/handler"
	"account-ledger/internal/adapter/storage/jsonfile"
	"account-ledger/internal/core/ports"
	"account-ledger/internal/service"
	"account-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Path).
		Msg("Starting Account Ledger Engine")

	ctx := context.Background()

	clock := service.NewSystemClock()

	// Durable account store (seeds demo data on first run)
	store := jsonfile.New(cfg.Storage.Path, clock, log)

	// Ledger service owns the authoritative in-process account set.
	// A load failure here is fatal: the engine must not run against
	// state it could not read.
	ledgerSvc, err := service.NewLedgerService(ctx, store, clock, service.PolicyFromConfig(cfg.Ledger), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load account store")
	}
	log.Info().Msg("Account store loaded")

	// Session gate + token service
	tokenSvc := service.NewJWTTokenService(cfg.Session.JWTSecret, cfg.Session.JWTExpiry, cfg.Session.JWTIssuer)
	gate := service.NewSessionGate(ledgerSvc, tokenSvc, log)

	// Health checker
	storeHealth := jsonfile.NewHealthCheck(store)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Ledger:         ledgerSvc,
		Gate:           gate,
		TokenSvc:       tokenSvc,
		HealthCheckers: []ports.HealthChecker{storeHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Flush any open session state before exit.
	if err := gate.EndSession(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to flush session state")
	}

	log.Info().Msg("Server exited")
}
