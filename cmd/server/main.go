package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agenthands/chronicle/internal/config"
	"github.com/agenthands/chronicle/internal/core"
	"github.com/agenthands/chronicle/internal/driver"
	"github.com/agenthands/chronicle/internal/llm"
	"github.com/agenthands/chronicle/internal/server"
	"github.com/agenthands/chronicle/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg.ApplyEnv(os.Getenv)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.Server.LogLevel)}))
	slog.SetDefault(logger)

	policy, err := store.ParseMergePolicy(cfg.Store.MergePolicy)
	if err != nil {
		log.Fatal(err)
	}

	d, err := driver.NewLocalDriver(cfg.Store.Root)
	if err != nil {
		log.Fatalf("Failed to open campaigns directory: %v", err)
	}
	defer d.Close()
	registry := store.NewRegistry(d, logger, store.WithMergePolicy(policy))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}
	if c, ok := llmClient.(io.Closer); ok {
		defer c.Close()
	}
	images, err := llm.NewImageClient(ctx, cfg.Image)
	if err != nil {
		log.Fatalf("Failed to create image client: %v", err)
	}
	if images == nil {
		logger.Warn("image generation disabled")
	}

	systemPrompt, err := cfg.SystemPrompt()
	if err != nil {
		log.Fatal(err)
	}

	engine := core.NewEngine(llmClient, images, cfg.Prompts, systemPrompt, logger)
	srv := server.NewServer(registry, engine, logger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(cfg.Server.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// Turns wait on the narrative model.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port, "provider", cfg.LLM.Provider, "campaigns", cfg.Store.Root, "merge_policy", string(policy))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
