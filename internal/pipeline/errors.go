package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/tendant/bucket-thumbnailer/internal/converters"
	"github.com/tendant/bucket-thumbnailer/internal/img"
	"github.com/tendant/bucket-thumbnailer/pkg/schema"
)

// UnsupportedError records a key whose extension matches neither table.
type UnsupportedError struct {
	Extension string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.Extension)
}

// ClassifyError maps an invocation error to the failure type carried in
// outcome events.
func ClassifyError(err error) schema.FailureType {
	if err == nil {
		return ""
	}

	var unsupported *UnsupportedError
	if errors.Is(err, ErrNoRecords) || errors.Is(err, ErrInvalidRecord) || errors.As(err, &unsupported) {
		return schema.FailureTypeValidation
	}

	var decodeErr *img.DecodeError
	var exitErr *converters.ExitError
	if errors.As(err, &decodeErr) || errors.As(err, &exitErr) {
		return schema.FailureTypePermanent
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return schema.FailureTypeRetryable
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return schema.FailureTypePermanent
	}

	// Default to retryable for storage and unknown errors
	return schema.FailureTypeRetryable
}
