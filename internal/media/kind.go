// Package media decides, from an object key alone, whether an object is a
// picture asset worth thumbnailing and which generator handles it.
package media

import (
	"path"
	"strings"
)

// Kind is the generation strategy selected for an object.
type Kind string

const (
	KindImage       Kind = "image"
	KindVideo       Kind = "video"
	KindUnsupported Kind = "unsupported"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {},
	".mov": {},
	".avi": {},
	".mkv": {},
}

// Extension returns the lower-cased extension of the key's final path
// element, including the leading dot, or "" when there is none.
func Extension(key string) string {
	return path.Ext(strings.ToLower(key))
}

// Classify maps a key to a Kind by extension. Content is never inspected, so a
// mislabeled file is routed by its name.
func Classify(key string) Kind {
	ext := Extension(key)
	if _, ok := imageExtensions[ext]; ok {
		return KindImage
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	return KindUnsupported
}

// SupportedExtensions lists every extension Classify accepts, images first.
func SupportedExtensions() []string {
	return []string{
		// Images (via imaging library)
		".jpg", ".jpeg", ".png", ".gif",
		// Videos (via FFmpeg)
		".mp4", ".mov", ".avi", ".mkv",
	}
}
