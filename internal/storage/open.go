package storage

import (
	"context"
	"fmt"

	"github.com/tendant/bucket-thumbnailer/internal/config"
)

// Open builds the Store selected by cfg.StorageBackend.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.BackendS3:
		return LoadS3Store(ctx, S3Options{
			Region:       cfg.S3Region,
			Endpoint:     cfg.S3Endpoint,
			UsePathStyle: cfg.S3UsePathStyle,
		})
	case config.BackendFS:
		return NewFSStore(cfg.FSRoot), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}
