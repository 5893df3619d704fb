// cmd/lambda is the AWS Lambda entry point, invoked by S3 ObjectCreated
// notifications on the media bucket.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
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
	logger := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	logger.Info("lambda starting", "storage_backend", cfg.StorageBackend, "ffmpeg", cfg.FFmpegPath, "nats_enabled", cfg.NATSURL != "")

	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		fatal(logger, "open storage", err, "backend", cfg.StorageBackend)
	}

	opts := pipeline.Options{
		Store:         store,
		Extractor:     converters.NewFFmpegConverter(cfg.FFmpegPath),
		WorkspaceRoot: cfg.WorkspaceRoot,
		Logger:        logger,
	}

	// Outcome events are optional for Lambda; the invoker only sees the Result.
	if cfg.NATSURL != "" {
		nc, err := bus.Connect(cfg.NATSURL)
		if err != nil {
			fatal(logger, "connect to NATS", err, "nats_url", cfg.NATSURL)
		}
		defer nc.Close()
		opts.Publisher = bus.NewDonePublisher(nc, cfg.ResultSubject)
		logger.Info("publishing outcomes", "subject", cfg.ResultSubject)
	}

	handler, err := pipeline.New(opts)
	if err != nil {
		fatal(logger, "build pipeline", err)
	}

	lambda.Start(handler.Handle)
}

func fatal(logger *slog.Logger, msg string, err error, attrs ...any) {
	attrs = append(attrs, "err", err)
	logger.Error(msg, attrs...)
	os.Exit(1)
}
