package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"investor-reporting/internal/common"
	"investor-reporting/internal/export"
	"investor-reporting/internal/llm/openai"
	"investor-reporting/internal/pipeline"
	"investor-reporting/internal/server"
	"investor-reporting/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	// The store is loaded exactly once here and persisted exactly once on
	// the way out; everything in between is in-memory.
	st, err := store.Open(cfg.Store.FilePath, logger)
	if err != nil {
		logger.Error("open report store", "path", cfg.Store.FilePath, "error", err)
		os.Exit(1)
	}

	client := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	pipe := pipeline.New(cfg.Store.TemplatePath, client, logger)
	exp := export.NewService(st, logger)
	srv := server.New(pipe, st, exp, logger)

	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: srv.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()
	logger.Info("http serving", "addr", cfg.Server.ListenAddr)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown", "error", err)
		}
		cancel()
	case err := <-errCh:
		logger.Error("http serve", "error", err)
	}

	// Reports appended this run exist only in memory until this write; a
	// failure here loses them, so it exits non-zero instead of being
	// swallowed.
	if err := st.Persist(); err != nil {
		logger.Error("persist report store", "path", cfg.Store.FilePath, "error", err)
		os.Exit(1)
	}
}
