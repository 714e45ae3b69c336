package sync

import (
	"context"
	"fmt"
	"path/filepath"

	"immich-album-sync/core/config"
	"immich-album-sync/core/immich"
	"immich-album-sync/core/manifest"
	"immich-album-sync/core/storage"
	"immich-album-sync/core/target"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// NewDestination builds the configured destination.
func NewDestination(cfg *config.Config) (target.Target, error) {
	switch cfg.Destination.Type {
	case target.TypeBucket:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		prefix := cfg.Storage.Prefix
		if prefix == "" && cfg.LocalFolder != "" {
			prefix = filepath.Base(cfg.LocalFolder)
		}
		return target.NewBucket(client, target.BucketOptions{
			Bucket: cfg.Storage.Bucket,
			Prefix: prefix,
			Region: cfg.Storage.Region,
		}), nil
	default:
		return target.NewLocal(afero.NewOsFs(), cfg.LocalFolder), nil
	}
}

// Components are the long-lived parts a Service is built from.
type Components struct {
	Service  *Service
	Manifest *manifest.Store
}

// Close releases the manifest connection, if any.
func (c *Components) Close() error {
	if c.Manifest == nil {
		return nil
	}
	return c.Manifest.Close()
}

// Build wires a Service from configuration. A manifest that cannot be opened
// is logged and left out; the sync itself does not depend on it.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Components, error) {
	dest, err := NewDestination(cfg)
	if err != nil {
		return nil, &SetupError{Location: cfg.Destination.Type, Err: err}
	}

	comps := &Components{}
	var store Manifest
	if cfg.Manifest.Enabled {
		m, err := manifest.Open(ctx, cfg.Manifest)
		if err != nil {
			log.Warn("Manifest disabled, failed to open database", zap.Error(err))
		} else {
			comps.Manifest = m
			store = m
		}
	}

	client := immich.NewClient(cfg.APIURL, cfg.APIKey, cfg.HTTP)
	comps.Service = NewService(client, dest, store, log)
	return comps, nil
}
