// Package pipeline turns one bucket notification into at most one thumbnail.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/tendant/bucket-thumbnailer/internal/converters"
	"github.com/tendant/bucket-thumbnailer/internal/img"
	"github.com/tendant/bucket-thumbnailer/internal/media"
	"github.com/tendant/bucket-thumbnailer/internal/process"
	"github.com/tendant/bucket-thumbnailer/internal/storage"
	"github.com/tendant/bucket-thumbnailer/pkg/schema"
)

// Result is returned to the invoker for every handled notification.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Publisher receives one outcome event per invocation.
type Publisher interface {
	PublishDone(ctx context.Context, done schema.ThumbnailDone) error
}

// Options wires a Handler. Store and Extractor are required.
type Options struct {
	Store     storage.Store
	Extractor converters.FrameExtractor
	// WorkspaceRoot is where per-invocation directories are created; empty
	// means the OS temp dir.
	WorkspaceRoot string
	Publisher     Publisher
	Logger        *slog.Logger
}

// Handler runs the thumbnail pipeline. It holds no per-invocation state and
// may serve concurrent notifications.
type Handler struct {
	store         storage.Store
	extractor     converters.FrameExtractor
	workspaceRoot string
	publisher     Publisher
	logger        *slog.Logger
}

func New(opts Options) (*Handler, error) {
	if opts.Store == nil {
		return nil, errors.New("pipeline: store is required")
	}
	if opts.Extractor == nil {
		return nil, errors.New("pipeline: frame extractor is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:         opts.Store,
		extractor:     opts.Extractor,
		workspaceRoot: opts.WorkspaceRoot,
		publisher:     opts.Publisher,
		logger:        logger,
	}, nil
}

// invocation carries the state of a single Handle call.
type invocation struct {
	job           *process.Job
	logger        *slog.Logger
	kind          media.Kind
	derivativeKey string
	thumb         img.Output
	uploaded      bool
	// failure is an error that ended the invocation without being returned
	failure error
}

// Handle processes the first record of event. Storage failures, image decode
// failures and a missing frame-extraction binary are returned as errors for
// the invoker's retry policy; every other outcome is a Result.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (Result, error) {
	notice, err := FirstRecord(event)
	if err != nil {
		h.logger.Warn("invalid notification", "records", len(event.Records), "err", err)
		return Result{}, err
	}
	if len(event.Records) > 1 {
		h.logger.Warn("ignoring additional notification records", "records", len(event.Records))
	}

	inv := &invocation{job: process.NewJob(uuid.NewString(), notice.Bucket, notice.Key)}
	inv.logger = h.logger.With("invocation_id", inv.job.ID, "bucket", notice.Bucket, "key", notice.Key)
	inv.logger.Info("received notification")

	result, err := h.run(ctx, inv)
	if err != nil {
		inv.job.MarkFailed(err)
		inv.logger.Error("thumbnail invocation failed", "state", inv.job.State, "err", err)
	} else {
		inv.logger.Info("completed invocation", "state", inv.job.State, "status", result.StatusCode, "processing_time_ms", inv.job.Duration().Milliseconds())
	}

	h.publish(ctx, inv, result, err)
	return result, err
}

func (h *Handler) run(ctx context.Context, inv *invocation) (Result, error) {
	job := inv.job

	decision := media.ShouldProcess(job.Key)
	h.advance(inv, process.StateFiltered)
	if !decision.Proceed {
		inv.logger.Info("skipping object", "reason", decision.Reason)
		h.advance(inv, process.StateSkippedDone)
		return Result{StatusCode: http.StatusOK, Body: decision.Reason}, nil
	}

	workspace, err := os.MkdirTemp(h.workspaceRoot, "thumbnail-*")
	if err != nil {
		return Result{}, fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			inv.logger.Warn("cleanup failed", "workspace", workspace, "err", err)
		}
	}()

	srcPath := filepath.Join(workspace, media.SourceFileName(job.Key))
	if err := h.store.Download(ctx, job.Bucket, job.Key, srcPath); err != nil {
		return Result{}, fmt.Errorf("download source: %w", err)
	}
	h.advance(inv, process.StateDownloaded)
	if info, err := os.Stat(srcPath); err == nil {
		inv.logger.Debug("source downloaded", "size", info.Size())
	}

	inv.kind = media.Classify(job.Key)
	h.advance(inv, process.StateClassified)
	if inv.kind == media.KindUnsupported {
		ext := media.Extension(job.Key)
		inv.failure = &UnsupportedError{Extension: ext}
		inv.logger.Warn("unsupported file type", "extension", ext)
		job.MarkFailed(inv.failure)
		return Result{StatusCode: http.StatusBadRequest, Body: "Unsupported file type: " + ext}, nil
	}

	generator, err := img.GetGenerator(inv.kind, h.extractor)
	if err != nil {
		return Result{}, err
	}
	inv.derivativeKey = media.DerivativeKey(job.Key, inv.kind)
	dstPath := filepath.Join(workspace, media.DerivativeFileName(job.Key, inv.kind))
	inv.logger.Info("using generator", "generator", generator.Name(), "derivative_key", inv.derivativeKey)

	thumb, err := generator.Generate(ctx, srcPath, dstPath)
	if err != nil {
		var exitErr *converters.ExitError
		if inv.kind == media.KindVideo && errors.As(err, &exitErr) {
			// The invoker is told the thumbnail was generated even though
			// nothing is uploaded. Kept for contract compatibility; the
			// outcome event reports uploaded=false with the failure.
			inv.failure = err
			inv.logger.Error("video thumbnail generation failed, no thumbnail uploaded", "exit_code", exitErr.Code, "err", err)
			job.MarkFailed(err)
			return successResult(job.Key), nil
		}
		return Result{}, fmt.Errorf("generate thumbnail: %w", err)
	}
	inv.thumb = thumb
	h.advance(inv, process.StateGenerated)
	inv.logger.Info("thumbnail generated", "generator", generator.Name(), "width", thumb.Width, "height", thumb.Height)

	if err := h.store.Upload(ctx, thumb.Path, job.Bucket, inv.derivativeKey); err != nil {
		return Result{}, fmt.Errorf("upload thumbnail: %w", err)
	}
	inv.uploaded = true
	h.advance(inv, process.StateUploaded)
	inv.logger.Info("thumbnail uploaded", "derivative_key", inv.derivativeKey)

	h.advance(inv, process.StateDone)
	return successResult(job.Key), nil
}

func successResult(key string) Result {
	return Result{StatusCode: http.StatusOK, Body: "Thumbnail generated for " + key}
}

func (h *Handler) advance(inv *invocation, s process.State) {
	if err := inv.job.Advance(s); err != nil {
		inv.logger.Error("state transition rejected", "err", err)
		return
	}
	inv.logger.Debug("state changed", "state", s)
}

func (h *Handler) publish(ctx context.Context, inv *invocation, result Result, cause error) {
	if h.publisher == nil {
		return
	}

	done := schema.ThumbnailDone{
		ID:               inv.job.ID,
		Bucket:           inv.job.Bucket,
		SourceKey:        inv.job.Key,
		DerivativeKey:    inv.derivativeKey,
		Kind:             string(inv.kind),
		State:            string(inv.job.State),
		StatusCode:       result.StatusCode,
		Body:             result.Body,
		Uploaded:         inv.uploaded,
		Width:            inv.thumb.Width,
		Height:           inv.thumb.Height,
		ProcessingTimeMs: inv.job.Duration().Milliseconds(),
		HappenedAt:       time.Now().Unix(),
	}
	for _, tr := range inv.job.History {
		done.Lifecycle = append(done.Lifecycle, schema.Transition{State: string(tr.State), At: tr.At.UnixMilli()})
	}

	failure := cause
	if failure == nil {
		failure = inv.failure
	}
	if failure != nil {
		done.Error = failure.Error()
		done.FailureType = ClassifyError(failure)
	}

	if err := h.publisher.PublishDone(ctx, done); err != nil {
		inv.logger.Error("publish result failed", "err", err)
	}
}
