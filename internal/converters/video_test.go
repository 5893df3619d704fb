package converters

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestFFmpegArgs(t *testing.T) {
	conv := NewFFmpegConverter("")
	if conv.Binary() != "ffmpeg" {
		t.Fatalf("default binary = %q, want ffmpeg", conv.Binary())
	}

	got := strings.Join(conv.Args("/tmp/in.mp4", "/tmp/out.png"), " ")
	want := "-i /tmp/in.mp4 -ss 00:00:01.000 -vframes 1 -vf scale=720:-1 /tmp/out.png"
	if got != want {
		t.Fatalf("Args mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestExtractFrameRunsBinary(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	bin := writeScript(t, dir, "fake-ffmpeg", `printf '%s\n' "$@" > "`+argsFile+`"
for last; do :; done
printf 'frame' > "$last"
`)

	out := filepath.Join(dir, "thumbnail-clip.mp4.png")
	conv := NewFFmpegConverter(bin)
	if err := conv.ExtractFrame(context.Background(), "/src/clip.mp4", out); err != nil {
		t.Fatalf("ExtractFrame returned error: %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output not written: %v", err)
	}

	recorded, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	got := strings.Fields(string(recorded))
	want := conv.Args("/src/clip.mp4", out)
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("binary invoked with %v, want %v", got, want)
	}
}

func TestExtractFrameNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "fake-ffmpeg", `echo "clip.mp4: Invalid data found when processing input" >&2
exit 1
`)

	conv := NewFFmpegConverter(bin)
	err := conv.ExtractFrame(context.Background(), "/src/clip.mp4", filepath.Join(dir, "out.png"))

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != 1 {
		t.Fatalf("exit code = %d, want 1", exitErr.Code)
	}
	if !strings.Contains(exitErr.Output, "Invalid data") {
		t.Fatalf("stderr not captured: %q", exitErr.Output)
	}
}

func TestExtractFrameMissingBinary(t *testing.T) {
	conv := NewFFmpegConverter(filepath.Join(t.TempDir(), "no-such-ffmpeg"))
	err := conv.ExtractFrame(context.Background(), "in.mp4", "out.png")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Fatalf("missing binary must not look like a non-zero exit: %v", err)
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestLastLines(t *testing.T) {
	got := lastLines("a\nb\nc\nd\n", 2)
	if got != "c\nd" {
		t.Fatalf("lastLines = %q", got)
	}
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}
