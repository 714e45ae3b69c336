package integrity

import (
	"context"
	"errors"

	"immich-album-sync/core/manifest"
	"immich-album-sync/core/target"
	"immich-album-sync/feature/integrity/checks"

	"go.uber.org/zap"
)

// ErrNoManifest is returned by manifest checks when the manifest is disabled.
var ErrNoManifest = errors.New("manifest is not enabled")

// Service handles integrity checks.
type Service struct {
	dest    target.Target
	store   *manifest.Store
	albumID string
	logger  *zap.Logger
}

// NewService creates a new integrity service. store may be nil.
func NewService(dest target.Target, store *manifest.Store, albumID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		dest:    dest,
		store:   store,
		albumID: albumID,
		logger:  logger,
	}
}

// CheckDestination reports the state of the destination.
func (s *Service) CheckDestination(ctx context.Context) *checks.DestinationReport {
	return checks.CheckDestination(ctx, s.dest)
}

// FixDestination creates a missing destination.
func (s *Service) FixDestination(ctx context.Context) error {
	return checks.FixDestination(ctx, s.dest, s.logger)
}

// CheckManifest compares the album's manifest entries with the destination.
func (s *Service) CheckManifest(ctx context.Context, verifyHash bool) (*checks.ManifestReport, error) {
	if s.store == nil {
		return nil, ErrNoManifest
	}
	entries, err := s.store.List(ctx, s.albumID)
	if err != nil {
		return nil, err
	}
	local, err := s.dest.List(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckManifest(ctx, s.dest, entries, local, verifyHash)
}

// CheckSchema verifies the manifest table.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.store == nil {
		return nil, ErrNoManifest
	}
	return checks.CheckManifestSchema(s.store.DB())
}

// Report is the combined result of all checks.
type Report struct {
	Destination *checks.DestinationReport `json:"destination"`
	Manifest    *checks.ManifestReport    `json:"manifest,omitempty"`
	Schema      *checks.SchemaReport      `json:"schema,omitempty"`
	Errors      map[string]string         `json:"errors,omitempty"`
}

// Healthy is true when no check found a problem.
func (r *Report) Healthy() bool {
	if len(r.Errors) > 0 || r.Destination == nil || !r.Destination.Readable {
		return false
	}
	if m := r.Manifest; m != nil && len(m.Missing)+len(m.SizeMismatch)+len(m.HashMismatch) > 0 {
		return false
	}
	if r.Schema != nil && !r.Schema.Matched {
		return false
	}
	return true
}

// CheckAll runs every available check. Manifest checks are skipped when the manifest is disabled.
func (s *Service) CheckAll(ctx context.Context, verifyHash bool) *Report {
	report := &Report{
		Destination: s.CheckDestination(ctx),
		Errors:      map[string]string{},
	}
	if s.store == nil {
		return report
	}

	if schema, err := s.CheckSchema(); err != nil {
		report.Errors["schema"] = err.Error()
	} else {
		report.Schema = schema
	}

	if m, err := s.CheckManifest(ctx, verifyHash); err != nil {
		report.Errors["manifest"] = err.Error()
	} else {
		report.Manifest = m
	}
	return report
}
