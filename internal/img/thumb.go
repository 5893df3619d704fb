// internal/img/thumb.go
package img

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	// MaxWidth and MaxHeight bound every image thumbnail.
	MaxWidth  = 1280
	MaxHeight = 720
)

// Output describes a generated derivative on local disk.
type Output struct {
	Path         string
	Width        int
	Height       int
	SourceWidth  int
	SourceHeight int
}

// DecodeError reports a source that could not be parsed as an image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// GenerateThumbnail loads an image from srcPath, fits it into the given
// bounding box and writes it to dstPath. The encoder is picked from dstPath's
// extension. If the source is smaller than the box, it will not upscale.
func GenerateThumbnail(srcPath, dstPath string, boxW, boxH int) (Output, error) {
	if _, err := os.Stat(srcPath); err != nil {
		return Output{}, fmt.Errorf("open: %w", err)
	}

	src, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return Output{}, &DecodeError{Path: srcPath, Err: err}
	}
	srcBounds := src.Bounds()

	thumb := imaging.Fit(src, boxW, boxH, imaging.Lanczos)

	dstDir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return Output{}, fmt.Errorf("mkdir: %w", err)
	}

	if err := imaging.Save(thumb, dstPath); err != nil {
		return Output{}, fmt.Errorf("save: %w", err)
	}

	b := thumb.Bounds()
	return Output{
		Path:         dstPath,
		Width:        b.Dx(),
		Height:       b.Dy(),
		SourceWidth:  srcBounds.Dx(),
		SourceHeight: srcBounds.Dy(),
	}, nil
}
