package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendant/bucket-thumbnailer/internal/bus"
	"github.com/tendant/bucket-thumbnailer/internal/media"
	"github.com/tendant/bucket-thumbnailer/internal/pipeline"
	"github.com/tendant/bucket-thumbnailer/internal/storage"
)

var (
	backfillBucket      string
	backfillPrefix      string
	backfillLimit       int
	backfillOnlyMissing bool
	backfillExecute     bool
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Publish a notification for every existing object that still needs a thumbnail",
	Long: `backfill lists a bucket and publishes one single-record notification per
eligible object to NOTIFY_SUBJECT, where the worker processes it exactly like
a fresh upload. Nothing is published without --execute.`,
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().StringVarP(&backfillBucket, "bucket", "b", "", "Bucket to scan (required)")
	backfillCmd.Flags().StringVarP(&backfillPrefix, "prefix", "p", "", "Only scan keys with this prefix")
	backfillCmd.Flags().IntVar(&backfillLimit, "limit", 0, "Maximum notifications to publish (0 = unlimited)")
	backfillCmd.Flags().BoolVar(&backfillOnlyMissing, "only-missing", true, "Skip objects whose thumbnail already exists")
	backfillCmd.Flags().BoolVar(&backfillExecute, "execute", false, "Actually publish notifications (default is a dry run)")
	_ = backfillCmd.MarkFlagRequired("bucket")
	rootCmd.AddCommand(backfillCmd)
}

// backfillStats counts why keys were or were not selected.
type backfillStats struct {
	Scanned          int
	Selected         int
	SkippedFilter    int
	SkippedType      int
	SkippedHasThumbs int
}

// selectKeys applies the pipeline's own filter and classifier so backfill
// never queues an object a fresh notification would not process.
func selectKeys(keys []string, existing map[string]bool, onlyMissing bool, limit int) ([]string, backfillStats) {
	var stats backfillStats
	var selected []string

	for _, key := range keys {
		stats.Scanned++
		if !media.ShouldProcess(key).Proceed {
			stats.SkippedFilter++
			continue
		}
		kind := media.Classify(key)
		if kind == media.KindUnsupported {
			stats.SkippedType++
			continue
		}
		if onlyMissing && existing[media.DerivativeKey(key, kind)] {
			stats.SkippedHasThumbs++
			continue
		}
		if limit > 0 && len(selected) >= limit {
			break
		}
		selected = append(selected, key)
	}
	stats.Selected = len(selected)
	return selected, stats
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	keys, err := store.List(ctx, backfillBucket, backfillPrefix)
	if err != nil {
		return err
	}

	existing := make(map[string]bool)
	if backfillOnlyMissing {
		thumbs, err := store.List(ctx, backfillBucket, media.ThumbnailPrefix)
		if err != nil {
			return err
		}
		for _, k := range thumbs {
			existing[k] = true
		}
	}

	selected, stats := selectKeys(keys, existing, backfillOnlyMissing, backfillLimit)
	logger.Info("scan complete",
		"bucket", backfillBucket,
		"prefix", backfillPrefix,
		"scanned", stats.Scanned,
		"selected", stats.Selected,
		"skipped_filter", stats.SkippedFilter,
		"skipped_type", stats.SkippedType,
		"skipped_has_thumbs", stats.SkippedHasThumbs,
	)

	if !backfillExecute {
		for _, key := range selected {
			logger.Info("would publish", "key", key)
		}
		logger.Info("dry run complete, pass --execute to publish", "selected", len(selected))
		return nil
	}

	natsURL := cfg.NATSURL
	if natsURL == "" {
		natsURL = "nats://127.0.0.1:4222"
	}
	nc, err := bus.Connect(natsURL)
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer nc.Close()

	published, failed := 0, 0
	for _, key := range selected {
		if err := nc.PublishJSON(cfg.NotifySubject, pipeline.NewNotification(backfillBucket, key)); err != nil {
			logger.Error("publish notification failed", "key", key, "err", err)
			failed++
			continue
		}
		published++
	}

	logger.Info("backfill complete", "published", published, "failed", failed, "subject", cfg.NotifySubject)
	if failed > 0 {
		return fmt.Errorf("%d notifications failed to publish", failed)
	}
	return nil
}
