package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jklim/schoolcal/internal/common"
	"github.com/jklim/schoolcal/internal/extract"
	"github.com/jklim/schoolcal/internal/llm/openai"
	"github.com/jklim/schoolcal/internal/raster"
	"github.com/jklim/schoolcal/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		// Not fatal: the server answers extraction requests with the
		// configuration-class error until the operator fixes the env.
		logger.Warn("config incomplete", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	renderer := raster.New(raster.Config{
		Pdftoppm:    cfg.Raster.Pdftoppm,
		TargetWidth: cfg.Raster.TargetWidth,
		JPEGQuality: cfg.Raster.JPEGQuality,
	}, logger)

	svc := extract.NewService(extractor, renderer, cfg.LLM.Timeout, logger)

	srv := server.NewServer(cfg.Server.Addr, svc,
		server.WithLogger(logger),
		server.WithMaxUploadBytes(cfg.Server.MaxUploadBytes),
		server.WithBasicAuth(cfg.Server.BasicAuthUser, cfg.Server.BasicAuthPass),
	)

	go func() {
		logger.Info("http serving", "addr", srv.Addr(), "model", cfg.LLM.Model)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
