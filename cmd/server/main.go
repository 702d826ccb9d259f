package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "cv-builder/internal/adapter/http"
	repo "cv-builder/internal/adapter/repository"
	"cv-builder/internal/config"
	"cv-builder/internal/infrastructure/migration"
	"cv-builder/internal/usecase"
	"cv-builder/pkg/ai"
	infra "cv-builder/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4/pgxpool"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Env == "dev" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// export log is optional
	var pool *pgxpool.Pool
	pool, err = infra.NewExportsPool(ctx, cfg.ExportsDBURL)
	switch {
	case errors.Is(err, infra.ErrNoDatabaseURL):
		slog.Info("export log disabled")
	case err != nil:
		slog.Warn("exports DB not available", "error", err)
		pool = nil
	default:
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool); err != nil {
			log.Fatalf("migrations: %v", err)
		}
	}

	client, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	if err != nil {
		log.Fatalf("ai client: %v", err)
	}
	client.DefaultLanguage = cfg.Language

	renderer := infra.NewChromedpRenderer(infra.ChromedpOptions{
		ExecPath:         cfg.ChromePath,
		AllowCrossOrigin: cfg.AllowCrossOrigin,
		Timeout:          cfg.CaptureTimeout,
	})

	exportsRepo := repo.NewExportsRepo(pool)
	exporter := usecase.NewExporter(renderer, exportsRepo, "cv-builder")
	enhancer := usecase.NewEnhancer(client.NewSummaryFormatter(), client.NewExperienceFormatter())
	store := usecase.NewStore()
	go store.RunJanitor(ctx, 10*time.Minute, cfg.SessionIdle)

	app := fiber.New(fiber.Config{
		AppName:   "cv-builder",
		BodyLimit: 10 * 1024 * 1024, // photos arrive as data URLs
	})
	h := httpadapter.NewHandler(store, enhancer, exporter, exportsRepo)
	h.Register(app)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()
	slog.Info("listening", "port", cfg.Port, "model", cfg.LLMModel)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}
