package sync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"immich-album-sync/core/immich"
	"immich-album-sync/core/manifest"
	"immich-album-sync/core/reconcile"
	"immich-album-sync/core/target"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Manifest is the part of the manifest store a run writes to.
type Manifest interface {
	Record(ctx context.Context, e manifest.Entry) error
	Remove(ctx context.Context, assetID string) error
}

// Report summarizes one run. It is returned by Run and served by GET /sync.
type Report struct {
	RunID       string    `json:"run_id"`
	AlbumID     string    `json:"album_id"`
	AlbumName   string    `json:"album_name,omitempty"`
	Destination string    `json:"destination"`
	Started     time.Time `json:"started"`
	Finished    time.Time `json:"finished"`
	DryRun      bool      `json:"dry_run,omitempty"`

	Plan   *reconcile.PlanSummary `json:"plan,omitempty"`
	Result *reconcile.Result      `json:"result,omitempty"`

	// ListingError is set when the destination could not be listed and deletions were skipped.
	ListingError string `json:"listing_error,omitempty"`
	// Error is set when the run aborted.
	Error string `json:"error,omitempty"`
}

// Summary is the one-line outcome written at the end of every run.
func (r *Report) Summary() string {
	if r.Result == nil {
		return "Finished - new:0 skipped:0 failed:0"
	}
	return fmt.Sprintf("Finished - new:%d skipped:%d failed:%d", r.Result.New, r.Result.Skipped, r.Result.Failed)
}

// Service runs album syncs against one destination.
type Service struct {
	source   Source
	dest     target.Target
	manifest Manifest
	logger   *zap.Logger

	group singleflight.Group
	last  atomic.Pointer[Report]
}

// NewService creates a sync service. store may be nil to disable the manifest.
func NewService(source Source, dest target.Target, store Manifest, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:   source,
		dest:     dest,
		manifest: store,
		logger:   logger,
	}
}

// Destination returns the target the service mirrors into.
func (s *Service) Destination() target.Target {
	return s.dest
}

// LastReport returns the report of the most recent run, or nil.
func (s *Service) LastReport() *Report {
	return s.last.Load()
}

// Run performs one sync. Concurrent calls in the same process share a single
// run when they ask for the same mode; a dry run never stands in for a real one.
//
// Failures before reconciliation (destination setup, album fetch) abort the
// run and are returned as *SetupError or *immich.FetchError. Per-file failures
// are part of the report and do not produce an error.
func (s *Service) Run(ctx context.Context, rc *RunContext) (*Report, error) {
	if rc == nil || rc.Config == nil {
		return nil, errors.New("sync: run context without configuration")
	}
	if rc.Logger == nil {
		rc.Logger = s.logger
	}

	key := "run"
	if rc.DryRun {
		key = "dry-run"
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		report, err := s.run(ctx, rc)
		s.last.Store(report)
		return report, err
	})
	if shared {
		rc.Logger.Info("Joined a sync run already in progress")
	}
	report, _ := v.(*Report)
	return report, err
}

func (s *Service) run(ctx context.Context, rc *RunContext) (*Report, error) {
	log := rc.Logger
	cfg := rc.Config

	report := &Report{
		RunID:       rc.ID,
		AlbumID:     cfg.AlbumID,
		Destination: s.dest.Location(),
		Started:     rc.Started,
		DryRun:      rc.DryRun,
	}
	finish := func(err error) (*Report, error) {
		report.Finished = time.Now()
		if err != nil {
			report.Error = err.Error()
		}
		return report, err
	}

	log.Info("Starting sync",
		zap.String("album_id", cfg.AlbumID),
		zap.String("destination", s.dest.Location()),
		zap.Bool("dry_run", rc.DryRun),
	)

	if !rc.DryRun {
		if err := s.dest.Ensure(ctx); err != nil {
			setupErr := &SetupError{Location: s.dest.Location(), Err: err}
			log.Error("CRITICAL: Failed to create destination. Exiting sync.", zap.Error(setupErr))
			return finish(setupErr)
		}
	}

	album, err := s.source.GetAlbum(ctx, cfg.AlbumID)
	if err != nil {
		log.Error("CRITICAL: Failed to fetch album data from Immich API. Exiting sync. Check API URL, key, and network connectivity.", zap.Error(err))
		return finish(err)
	}
	report.AlbumName = album.Name

	log.Info("Album loaded",
		zap.String("album", album.Name),
		zap.Int("assets", len(album.Assets)),
		zap.String("destination", s.dest.Location()),
	)

	entries, err := s.dest.List(ctx)
	if err != nil {
		// Without a listing no orphan can be identified; downloads still run
		report.ListingError = err.Error()
		log.Warn("Failed to list destination, skipping deletions", zap.Error(err))
		entries = nil
	}

	plan := reconcile.BuildPlan(album.Assets, entries)
	report.Plan = &plan.Summary

	opts := reconcile.Options{
		DryRun: rc.DryRun,
		Logger: log,
	}
	if s.manifest != nil {
		opts.OnDownloaded = func(ctx context.Context, asset immich.Asset, o reconcile.Outcome) {
			err := s.manifest.Record(ctx, manifest.Entry{
				AssetID:  asset.ID,
				AlbumID:  album.ID,
				FileName: o.Name,
				Size:     o.Size,
				SHA256:   o.SHA256,
			})
			if err != nil {
				log.Warn("Failed to update manifest", zap.String("asset_id", asset.ID), zap.Error(err))
			}
		}
		opts.OnDeleted = func(ctx context.Context, name string) {
			if err := s.manifest.Remove(ctx, reconcile.Stem(name)); err != nil {
				log.Warn("Failed to update manifest", zap.String("file", name), zap.Error(err))
			}
		}
	}

	result, err := reconcile.ApplyPlan(ctx, plan, s.dest, NewDownloader(s.source, s.dest), opts)
	report.Result = result
	if err != nil {
		log.Error("Sync interrupted", zap.Error(err))
		return finish(err)
	}

	log.Info(report.Summary(),
		zap.Int("deleted", len(result.Deletions)-result.FailedDeletions()),
		zap.Int("delete_failed", result.FailedDeletions()),
	)
	return finish(nil)
}

// Loop runs a sync immediately and then every interval until ctx is done.
// newRun builds the context of each run.
func (s *Service) Loop(ctx context.Context, interval time.Duration, newRun func() *RunContext) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Run(ctx, newRun()); err != nil && ctx.Err() == nil {
			s.logger.Warn("Scheduled sync failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
