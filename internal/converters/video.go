package converters

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const (
	// FrameTimestamp is where the still frame is taken from.
	FrameTimestamp = "00:00:01.000"
	// FrameWidth is the output width; height follows the source aspect ratio.
	FrameWidth = 720
)

// FFmpegConverter extracts video frames with the ffmpeg binary.
type FFmpegConverter struct {
	binary string
}

// NewFFmpegConverter creates a converter that runs binary, or "ffmpeg" from
// PATH when binary is empty.
func NewFFmpegConverter(binary string) *FFmpegConverter {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpegConverter{binary: binary}
}

// Name returns the converter name
func (f *FFmpegConverter) Name() string {
	return "ffmpeg"
}

// Binary returns the executable this converter invokes.
func (f *FFmpegConverter) Binary() string {
	return f.binary
}

// Args builds the ffmpeg argument list for one frame at FrameTimestamp,
// scaled to FrameWidth wide.
func (f *FFmpegConverter) Args(input, output string) []string {
	// -i: Input file
	// -ss: Seek after opening the input (accurate, decodes up to the mark)
	// -vframes 1: Extract only one frame
	// -vf scale=W:-1: Fixed width, height keeps aspect ratio
	return []string{
		"-i", input,
		"-ss", FrameTimestamp,
		"-vframes", "1",
		"-vf", "scale=" + strconv.Itoa(FrameWidth) + ":-1",
		output,
	}
}

// ExtractFrame implements FrameExtractor.
func (f *FFmpegConverter) ExtractFrame(ctx context.Context, input, output string) error {
	if _, err := exec.LookPath(f.binary); err != nil {
		return fmt.Errorf("ffmpeg not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, f.binary, f.Args(input, output)...)

	outputBytes, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg interrupted: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{
				Tool:   f.Name(),
				Code:   exitErr.ExitCode(),
				Output: strings.TrimSpace(lastLines(string(outputBytes), 5)),
				Err:    err,
			}
		}
		return fmt.Errorf("run ffmpeg: %w", err)
	}

	return nil
}

// lastLines keeps the tail of ffmpeg's output, where the actual error is.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
