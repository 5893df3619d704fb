// cmd/worker consumes S3-format bucket notifications from NATS (as published
// by MinIO bucket notification targets) and runs the thumbnail pipeline.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/events"
	"github.com/joho/godotenv"

	"github.com/tendant/bucket-thumbnailer/internal/bus"
	"github.com/tendant/bucket-thumbnailer/internal/config"
	"github.com/tendant/bucket-thumbnailer/internal/converters"
	"github.com/tendant/bucket-thumbnailer/internal/logging"
	"github.com/tendant/bucket-thumbnailer/internal/pipeline"
	"github.com/tendant/bucket-thumbnailer/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fatal(slog.Default(), "load config", err)
	}
	if cfg.NATSURL == "" {
		cfg.NATSURL = "nats://127.0.0.1:4222"
	}
	logger := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	logger.Info("worker starting",
		"nats_url", cfg.NATSURL,
		"subject", cfg.NotifySubject,
		"queue", cfg.NotifyQueue,
		"result_subject", cfg.ResultSubject,
		"storage_backend", cfg.StorageBackend,
		"timeout", cfg.WorkerTimeout,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		fatal(logger, "open storage", err, "backend", cfg.StorageBackend)
	}

	nc, err := bus.Connect(cfg.NATSURL)
	if err != nil {
		fatal(logger, "connect to NATS", err, "nats_url", cfg.NATSURL)
	}
	logger.Info("connected to NATS", "nats_url", cfg.NATSURL)
	defer nc.Close()

	handler, err := pipeline.New(pipeline.Options{
		Store:         store,
		Extractor:     converters.NewFFmpegConverter(cfg.FFmpegPath),
		WorkspaceRoot: cfg.WorkspaceRoot,
		Publisher:     bus.NewDonePublisher(nc, cfg.ResultSubject),
		Logger:        logger,
	})
	if err != nil {
		fatal(logger, "build pipeline", err)
	}

	_, err = nc.SubscribeNotifications(cfg.NotifySubject, cfg.NotifyQueue, cfg.WorkerTimeout, func(jobCtx context.Context, evt events.S3Event) (any, error) {
		result, err := handler.Handle(jobCtx, evt)
		if err != nil {
			return nil, err
		}
		return result, nil
	})
	if err != nil {
		fatal(logger, "subscribe notifications", err, "subject", cfg.NotifySubject, "queue", cfg.NotifyQueue)
	}
	logger.Info("listening for notifications", "subject", cfg.NotifySubject, "queue", cfg.NotifyQueue)

	<-ctx.Done()
	logger.Info("worker stopping")
}

func fatal(logger *slog.Logger, msg string, err error, attrs ...any) {
	attrs = append(attrs, "err", err)
	logger.Error(msg, attrs...)
	os.Exit(1)
}
