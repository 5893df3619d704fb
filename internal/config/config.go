// Package config loads process-wide settings from the environment once at
// startup. Values are read-only afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendS3 = "s3"
	BackendFS = "fs"
)

type Config struct {
	StorageBackend string
	FSRoot         string
	S3Region       string
	S3Endpoint     string
	S3UsePathStyle bool

	FFmpegPath    string
	WorkspaceRoot string

	NATSURL       string
	NotifySubject string
	NotifyQueue   string
	ResultSubject string
	WorkerTimeout time.Duration

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	cfg := Config{
		StorageBackend: strings.ToLower(getenv("STORAGE_BACKEND", BackendS3)),
		FSRoot:         getenv("FS_ROOT", "./data/buckets"),
		S3Region:       getenv("AWS_S3_REGION", ""),
		S3Endpoint:     getenv("AWS_S3_ENDPOINT", ""),
		FFmpegPath:     getenv("FFMPEG_PATH", "ffmpeg"),
		WorkspaceRoot:  getenv("WORKSPACE_ROOT", ""),
		NATSURL:        getenv("NATS_URL", ""),
		NotifySubject:  getenv("NOTIFY_SUBJECT", "bucket.events"),
		NotifyQueue:    getenv("NOTIFY_QUEUE", "thumbnail-workers"),
		ResultSubject:  getenv("RESULT_SUBJECT", "images.thumbnail.done"),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getenv("LOG_FORMAT", "text")),
	}

	switch cfg.StorageBackend {
	case BackendS3, BackendFS:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_BACKEND %q (supported: s3, fs)", cfg.StorageBackend)
	}

	pathStyle, err := parseBool(getenv("AWS_S3_USE_PATH_STYLE", "false"), "AWS_S3_USE_PATH_STYLE")
	if err != nil {
		return Config{}, err
	}
	cfg.S3UsePathStyle = pathStyle

	timeout, err := parsePositiveDuration(getenv("WORKER_TIMEOUT", "2m"), "WORKER_TIMEOUT")
	if err != nil {
		return Config{}, err
	}
	cfg.WorkerTimeout = timeout

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json", "tint":
	default:
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func parseBool(value, name string) (bool, error) {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

func parsePositiveDuration(value, name string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be greater than zero (got %s)", name, d)
	}
	return d, nil
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
