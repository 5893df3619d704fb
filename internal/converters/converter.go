// Package converters wraps the external tools used to turn media files into
// still images.
package converters

import (
	"context"
	"fmt"
)

// FrameExtractor pulls a single still frame out of a video file.
type FrameExtractor interface {
	// Name returns the extractor name for logging (e.g. "ffmpeg")
	Name() string

	// ExtractFrame writes one frame of input to output. A tool that ran and
	// exited non-zero is reported as *ExitError.
	ExtractFrame(ctx context.Context, input, output string) error
}

// ExitError reports that the extraction tool ran but exited with a non-zero
// status, e.g. a clip shorter than the seek offset or a corrupt container.
type ExitError struct {
	Tool   string
	Code   int
	Output string
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d: %s", e.Tool, e.Code, e.Output)
}

func (e *ExitError) Unwrap() error { return e.Err }
