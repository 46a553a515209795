package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ddanilov/homeledger/internal/advisor"
	"github.com/ddanilov/homeledger/internal/api/handlers"
	"github.com/ddanilov/homeledger/internal/config"
	"github.com/ddanilov/homeledger/internal/logger"
	"github.com/ddanilov/homeledger/internal/postgres"
	"github.com/ddanilov/homeledger/internal/recurring"
	"github.com/ddanilov/homeledger/internal/snapshot"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/ddanilov/homeledger/internal/syncer"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Remote backend is optional: without DB_CONN the service runs over the
	// local snapshot alone.
	var backend syncer.Backend
	if cfg.DBConn != "" {
		client, err := postgres.Open(cfg.DBConn, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer client.Close()
		backend = client
	} else {
		log.Warn().Msg("No DB_CONN configured - running snapshot-only")
	}

	st := store.New()
	repo := snapshot.NewFileRepository(cfg.SnapshotPath)

	if snap, ok, err := repo.Load(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.SnapshotPath).Msg("Failed to load snapshot")
	} else if ok {
		st.Restore(snap)
		log.Info().Str("path", cfg.SnapshotPath).Msg("Restored store from snapshot")
	}

	// Every effective mutation rewrites the snapshot file.
	st.OnChange(func(snap store.Snapshot) {
		if err := repo.Save(snap); err != nil {
			log.Error().Err(err).Msg("Failed to persist snapshot")
		}
	})

	svc := syncer.New(st, backend, cfg.OwnerID, log)
	if svc.Remote() {
		if err := svc.LoadAll(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to hydrate store from backend")
		}
	}

	// Apply remote transaction changes for as long as the process runs.
	feedCtx, cancelFeed := context.WithCancel(ctx)
	defer cancelFeed()
	go func() {
		if err := svc.Run(feedCtx); err != nil {
			log.Error().Err(err).Msg("Change feed stopped with error")
		}
	}()

	proc := recurring.NewProcessor(syncer.NewLedger(svc, log), log)
	runner, err := recurring.NewRunner(proc, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create recurring runner")
	}
	runner.Start()

	var adv *advisor.Advisor
	if os.Getenv("GEMINI_API_KEY") != "" {
		gen, err := advisor.NewGeminiGenerator(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create advisor")
		}
		adv = advisor.New(gen)
	} else {
		log.Warn().Msg("No GEMINI_API_KEY configured - advisor endpoint disabled")
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Store:     st,
		Syncer:    svc,
		Processor: proc,
		Advisor:   adv,
		JWTSecret: cfg.JWTSecret,
		OwnerID:   cfg.OwnerID,
		Log:       log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelFeed()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Let an in-flight scheduler pass finish.
	select {
	case <-runner.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn().Msg("Timed out waiting for scheduler to stop")
	}

	log.Info().Msg("Server exited")
}
