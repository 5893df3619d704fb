package media

import "path"

const (
	derivativeFilePrefix = "thumbnail-"
	videoFrameSuffix     = ".png"
)

// DerivativeName is the base name shared by the workspace file and the
// destination key. Video frames keep the source name and gain a .png suffix.
func DerivativeName(key string, kind Kind) string {
	base := path.Base(key)
	if kind == KindVideo {
		return base + videoFrameSuffix
	}
	return base
}

// DerivativeFileName is the name of the generated file inside the workspace.
func DerivativeFileName(key string, kind Kind) string {
	return derivativeFilePrefix + DerivativeName(key, kind)
}

// DerivativeKey is the destination key for key's thumbnail. It depends only on
// key, so reprocessing overwrites the same object.
func DerivativeKey(key string, kind Kind) string {
	return ThumbnailPrefix + DerivativeName(key, kind)
}

// SourceFileName is the name the downloaded source takes in the workspace.
// Keys whose last element cannot name a file fall back to "source".
func SourceFileName(key string) string {
	base := path.Base(key)
	if base == "." || base == ".." || base == "/" {
		return "source"
	}
	return base
}
