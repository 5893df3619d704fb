package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STORAGE_BACKEND", "FFMPEG_PATH", "NATS_URL", "NOTIFY_SUBJECT", "RESULT_SUBJECT", "WORKER_TIMEOUT", "AWS_S3_USE_PATH_STYLE", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.StorageBackend != BackendS3 {
		t.Fatalf("unexpected backend: %s", cfg.StorageBackend)
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Fatalf("unexpected ffmpeg path: %s", cfg.FFmpegPath)
	}
	if cfg.NATSURL != "" {
		t.Fatalf("NATS must be disabled by default, got %s", cfg.NATSURL)
	}
	if cfg.NotifySubject != "bucket.events" || cfg.ResultSubject != "images.thumbnail.done" {
		t.Fatalf("unexpected subjects: %s %s", cfg.NotifySubject, cfg.ResultSubject)
	}
	if cfg.WorkerTimeout != 2*time.Minute {
		t.Fatalf("unexpected worker timeout: %s", cfg.WorkerTimeout)
	}
	if cfg.S3UsePathStyle {
		t.Fatal("path style must default to false")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected log settings: %s %s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "FS")
	t.Setenv("FS_ROOT", "/srv/buckets")
	t.Setenv("AWS_S3_USE_PATH_STYLE", "true")
	t.Setenv("WORKER_TIMEOUT", "45s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StorageBackend != BackendFS || cfg.FSRoot != "/srv/buckets" {
		t.Fatalf("unexpected storage settings: %+v", cfg)
	}
	if !cfg.S3UsePathStyle {
		t.Fatal("expected path style")
	}
	if cfg.WorkerTimeout != 45*time.Second {
		t.Fatalf("unexpected worker timeout: %s", cfg.WorkerTimeout)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"STORAGE_BACKEND", "gcs"},
		{"AWS_S3_USE_PATH_STYLE", "maybe"},
		{"WORKER_TIMEOUT", "soon"},
		{"WORKER_TIMEOUT", "-1s"},
		{"LOG_LEVEL", "verbose"},
		{"LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
