package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/snapreads/studypack/internal/api"
	"github.com/snapreads/studypack/internal/condenser"
	"github.com/snapreads/studypack/internal/config"
	"github.com/snapreads/studypack/internal/history"
	"github.com/snapreads/studypack/internal/llm"
	"github.com/snapreads/studypack/internal/pack"
	"github.com/snapreads/studypack/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(log)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	hist, err := history.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open history store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer hist.Close()

	var (
		summarizer  condenser.Summarizer
		quiz        pack.QuizGenerator
		paraphraser pack.Paraphraser
		llmStats    *llm.Stats
	)
	if cfg.OpenAIAPIKey != "" {
		client := llm.New(cfg.LLMConfig())
		summarizer = client
		quiz = client
		paraphraser = client
		llmStats = client.Stats()
		log.Info("model client configured", "model", cfg.OpenAIModel)
	} else {
		log.Warn("OPENAI_API_KEY not set; running with extractive summarization only")
	}

	p := pipeline.New(cfg, summarizer, quiz, paraphraser, log)
	server := api.NewServer(p, hist, llmStats, log, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
