package reconcile

import (
	"strings"

	"immich-album-sync/core/immich"
)

// DefaultExtension is used when the original path carries no extension.
const DefaultExtension = ".jpg"

// Stem returns the part of a file name before its first dot.
// Names starting with a dot have no extension and are returned whole.
func Stem(name string) string {
	if strings.HasPrefix(name, ".") {
		return name
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// Extension returns the extension of the last element of an original path,
// including the dot, or DefaultExtension when there is none. A trailing dot
// yields an empty extension, so "y/2." maps to ".".
// Both '/' and '\' separate path elements since paths come from the server host.
func Extension(originalPath string) string {
	base := originalPath
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}

	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return DefaultExtension
	}
	return base[i:]
}

// ExpectedName is the destination file name for an asset.
func ExpectedName(asset immich.Asset) string {
	return asset.ID + Extension(asset.OriginalPath)
}
