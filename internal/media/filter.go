package media

import "strings"

const (
	// PicturesMarker must appear somewhere in a key for it to be processed.
	PicturesMarker = "pictures"
	// ThumbnailPrefix holds every derivative this service writes.
	ThumbnailPrefix = "thumbnails/"
)

const (
	ReasonNotPictures = "Skipped: key does not contain pictures"
	ReasonDerivative  = "Skipped thumbnail generation"
)

// Decision is the outcome of ShouldProcess. Reason is empty when Proceed is true.
type Decision struct {
	Proceed bool
	Reason  string
}

// ShouldProcess applies the inclusion rule, then the anti-recursion rule.
// The derivative check stands on its own so that loosening the inclusion rule
// can never make a thumbnail trigger another thumbnail.
func ShouldProcess(key string) Decision {
	if !strings.Contains(key, PicturesMarker) {
		return Decision{Reason: ReasonNotPictures}
	}
	if IsDerivative(key) {
		return Decision{Reason: ReasonDerivative}
	}
	return Decision{Proceed: true}
}

// IsDerivative reports whether key lives under the thumbnails prefix.
func IsDerivative(key string) bool {
	return strings.HasPrefix(key, ThumbnailPrefix)
}
