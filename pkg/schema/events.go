// pkg/schema/events.go
package schema

// FailureType classifies why an invocation did not produce a thumbnail.
type FailureType string

const (
	FailureTypeRetryable  FailureType = "retryable"
	FailureTypePermanent  FailureType = "permanent"
	FailureTypeValidation FailureType = "validation"
)

type Transition struct {
	State string `json:"state"`
	At    int64  `json:"at"`
}

// ThumbnailDone is published once per invocation, whatever the outcome.
type ThumbnailDone struct {
	ID               string       `json:"id"`
	Bucket           string       `json:"bucket"`
	SourceKey        string       `json:"source_key"`
	DerivativeKey    string       `json:"derivative_key,omitempty"`
	Kind             string       `json:"kind,omitempty"`
	State            string       `json:"state"`
	StatusCode       int          `json:"status_code,omitempty"`
	Body             string       `json:"body,omitempty"`
	Uploaded         bool         `json:"uploaded"`
	Width            int          `json:"width,omitempty"`
	Height           int          `json:"height,omitempty"`
	Lifecycle        []Transition `json:"lifecycle,omitempty"`
	ProcessingTimeMs int64        `json:"processing_time_ms"`
	Error            string       `json:"error,omitempty"`
	FailureType      FailureType  `json:"failure_type,omitempty"`
	HappenedAt       int64        `json:"happened_at"`
}
