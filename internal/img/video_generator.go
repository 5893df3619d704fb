package img

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/tendant/bucket-thumbnailer/internal/converters"
)

// VideoGenerator implements Generator for video files by extracting one frame.
// It adapts a converters.FrameExtractor to the Generator interface.
type VideoGenerator struct {
	extractor converters.FrameExtractor
}

// NewVideoGenerator creates a video thumbnail generator backed by extractor
func NewVideoGenerator(extractor converters.FrameExtractor) *VideoGenerator {
	return &VideoGenerator{extractor: extractor}
}

// Generate implements Generator.Generate for videos. Extractor failures are
// returned as-is so callers can tell a non-zero exit from other errors.
func (g *VideoGenerator) Generate(ctx context.Context, srcPath, dstPath string) (Output, error) {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return Output{}, fmt.Errorf("mkdir: %w", err)
	}

	if err := g.extractor.ExtractFrame(ctx, srcPath, dstPath); err != nil {
		return Output{}, err
	}

	out := Output{Path: dstPath}
	// Dimensions are informational; an unreadable header is left to the upload.
	if f, err := os.Open(dstPath); err == nil {
		if cfg, _, err := image.DecodeConfig(f); err == nil {
			out.Width, out.Height = cfg.Width, cfg.Height
		}
		f.Close()
	}
	return out, nil
}

// Name implements Generator.Name
func (g *VideoGenerator) Name() string {
	return "video"
}
