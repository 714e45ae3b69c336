package target

import (
	"context"
	"io"
)

const (
	TypeLocal  = "local"
	TypeBucket = "bucket"
)

// Config selects the destination implementation.
type Config struct {
	// Type is local (a directory) or bucket (object storage).
	Type string `mapstructure:"type" default:"local"`
}

// IsValid checks if the configured destination type is known.
func (c Config) IsValid() bool {
	switch c.Type {
	case TypeLocal, TypeBucket, "":
		return true
	default:
		return false
	}
}

// Entry is one item found in the destination.
type Entry struct {
	// Name is the entry name relative to the destination root.
	Name string
	// Size is the content length in bytes.
	Size int64
	// Regular is false for directories and other non-file entries.
	Regular bool
}

// Target is the place an album is mirrored into.
type Target interface {
	// Location describes the destination for log lines.
	Location() string
	// Ensure creates the destination if it does not exist.
	Ensure(ctx context.Context) error
	// List returns the direct children of the destination.
	List(ctx context.Context) ([]Entry, error)
	// Exists reports whether an entry of any kind has the given name.
	Exists(ctx context.Context, name string) (bool, error)
	// Create creates or truncates name. Content is committed on Close.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
	// Open reads an entry back.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove deletes an entry.
	Remove(ctx context.Context, name string) error
}
