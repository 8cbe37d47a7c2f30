package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/duosplit/receipt-split-service/internal/config"
	"github.com/duosplit/receipt-split-service/internal/database"
	"github.com/duosplit/receipt-split-service/internal/handler"
	"github.com/duosplit/receipt-split-service/internal/openrouter"
	"github.com/duosplit/receipt-split-service/internal/repository"
	"github.com/duosplit/receipt-split-service/internal/server"
	"github.com/duosplit/receipt-split-service/internal/service"
	"github.com/duosplit/receipt-split-service/internal/storage"
	"github.com/duosplit/receipt-split-service/pkg/logging"
)

// @title Receipt Split Service API
// @version 1.0
// @description Upload a receipt, assign items to two people, settle up.
// @BasePath /
func main() {
	logging.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	preferences, cleanup, err := newPreferenceRepository(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize preference store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	extractor := newExtractor(cfg)
	uploader := newUploader(cfg)

	scanService, err := service.NewScanService(extractor, uploader, service.ScanServiceConfig{
		MaxWorkers:    cfg.MaxWorkers,
		ReceiptsDir:   cfg.ReceiptsDir,
		PublicBaseURL: cfg.PublicBaseURL,
		KeepTempFiles: cfg.KeepTempFiles,
	})
	if err != nil {
		slog.Error("failed to create scan service", "error", err)
		os.Exit(1)
	}
	splitService := service.NewSplitService(preferences)

	receiptHandler := handler.NewReceiptHandler(scanService, cfg.MaxUploadSize)
	splitHandler := handler.NewSplitHandler(splitService, cfg.CurrencyGlyph)

	appServer := server.NewServer(cfg, receiptHandler, splitHandler)
	if err := appServer.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newPreferenceRepository picks PostgreSQL when configured, otherwise
// a local bolt file.
func newPreferenceRepository(ctx context.Context, cfg *config.Config) (repository.PreferenceRepository, func(), error) {
	if cfg.PostgresURL != "" {
		db, err := database.NewPostgresDB(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		repo, err := repository.NewPostgresPreferenceRepository(ctx, db.GetPool())
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		slog.Info("using postgres preference store")
		return repo, db.Close, nil
	}

	repo, err := repository.NewBoltPreferenceRepository(cfg.BoltPath)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("using bolt preference store", "path", cfg.BoltPath)
	return repo, func() {
		if err := repo.Close(); err != nil {
			slog.Warn("failed to close preference store", "error", err)
		}
	}, nil
}

// newExtractor returns the fake extractor when FAKE_EXTRACTOR is set,
// useful for demos and development without an API key.
func newExtractor(cfg *config.Config) service.ReceiptExtractor {
	if cfg.FakeExtractor {
		slog.Info("using fake receipt extractor")
		return openrouter.NewFake()
	}
	return openrouter.NewClient(&openrouter.Config{
		APIKey:  cfg.OpenRouterAPIKey,
		ModelID: cfg.OpenRouterModelID,
		Timeout: cfg.OpenRouterTimeout,
	})
}

// newUploader returns an S3 uploader when fully configured, nil
// otherwise.
func newUploader(cfg *config.Config) service.ImageUploader {
	if !cfg.UseS3() {
		return nil
	}
	uploader, err := storage.NewS3Uploader(&storage.Config{
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		AccessKeySecret: cfg.S3AccessKeySecret,
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		PublicURL:       cfg.S3PublicURL,
	})
	if err != nil {
		slog.Warn("S3 uploader misconfigured, serving images locally", "error", err)
		return nil
	}
	slog.Info("using S3 image storage", "bucket", cfg.S3Bucket)
	return uploader
}
