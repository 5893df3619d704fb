// Package storage moves objects between a bucket and local disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Store is the object-storage boundary the pipeline depends on.
type Store interface {
	// Download writes bucket/key to localPath.
	Download(ctx context.Context, bucket, key, localPath string) error
	// Upload stores the file at localPath as bucket/key, replacing any existing object.
	Upload(ctx context.Context, localPath, bucket, key string) error
	// List returns the keys in bucket that start with prefix.
	List(ctx context.Context, bucket, prefix string) ([]string, error)
}

// detectMime sniffs the content type of the file at path.
func detectMime(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for mime detect: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read for mime detect: %w", err)
	}
	return http.DetectContentType(buf[:n]), nil
}

// writeFile copies r into a new file at localPath.
func writeFile(localPath string, r io.Reader) error {
	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
