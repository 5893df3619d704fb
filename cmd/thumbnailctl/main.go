// cmd/thumbnailctl is the operator CLI: local conversions and bucket backfills.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tendant/bucket-thumbnailer/internal/config"
	"github.com/tendant/bucket-thumbnailer/internal/logging"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "thumbnailctl",
	Short: "Operate the bucket thumbnailer outside of notifications",
	Long: `thumbnailctl runs the thumbnail generators against local files and
re-queues existing bucket objects for the notification worker.

Examples:
  thumbnailctl convert --input clip.mp4
  thumbnailctl convert --input photo.jpg --output /tmp/photo-thumb.jpg
  thumbnailctl backfill --bucket media --prefix albums/
  thumbnailctl backfill --bucket media --execute --limit 500`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		format := cfg.LogFormat
		if os.Getenv("LOG_FORMAT") == "" {
			format = "tint"
		}
		logger = logging.New(os.Stderr, format, cfg.LogLevel)
		slog.SetDefault(logger)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
