package immich

import "fmt"

// Kind classifies API failures.
type Kind string

const (
	// KindNetwork covers transport failures, including interrupted bodies.
	KindNetwork Kind = "network"
	// KindStatus is a non-success HTTP status code.
	KindStatus Kind = "status"
	// KindDecode is a malformed response body.
	KindDecode Kind = "decode"
	// KindIO is a failure writing the downloaded content.
	KindIO Kind = "io"
)

// FetchError is returned when the album catalog cannot be retrieved.
type FetchError struct {
	AlbumID    string
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch album %s: %s (HTTP %d): %v", e.AlbumID, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch album %s: %s: %v", e.AlbumID, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DownloadError is returned when a single asset cannot be downloaded.
type DownloadError struct {
	AssetID    string
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download asset %s: %s (HTTP %d): %v", e.AssetID, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("download asset %s: %s: %v", e.AssetID, e.Kind, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
