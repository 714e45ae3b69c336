package manifest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"immich-album-sync/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by Get when no entry exists for the asset.
var ErrNotFound = errors.New("manifest entry not found")

// Store persists manifest entries through gorm.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open connection. Call Migrate before first use.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects with the given configuration and migrates the schema.
func Open(ctx context.Context, cfg database.Config) (*Store, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	store := NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Migrate creates or updates the manifest table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate manifest: %w", err)
	}
	return nil
}

// Record inserts or replaces the entry for e.AssetID.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.AssetID == "" {
		return errors.New("manifest entry requires an asset id")
	}
	if e.SyncedAt.IsZero() {
		e.SyncedAt = time.Now().UTC()
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}},
			UpdateAll: true,
		}).
		Create(&e).Error
	if err != nil {
		return fmt.Errorf("failed to record asset %s: %w", e.AssetID, err)
	}
	return nil
}

// Remove deletes the entry for an asset. Removing a missing entry is not an error.
func (s *Store) Remove(ctx context.Context, assetID string) error {
	err := s.db.WithContext(ctx).Where("asset_id = ?", assetID).Delete(&Entry{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove asset %s: %w", assetID, err)
	}
	return nil
}

// Get returns the entry for an asset or ErrNotFound.
func (s *Store) Get(ctx context.Context, assetID string) (*Entry, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where("asset_id = ?", assetID).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load asset %s: %w", assetID, err)
	}
	return &e, nil
}

// List returns all entries of an album ordered by asset id. An empty album id lists everything.
func (s *Store) List(ctx context.Context, albumID string) ([]Entry, error) {
	q := s.db.WithContext(ctx).Order("asset_id")
	if albumID != "" {
		q = q.Where("album_id = ?", albumID)
	}

	var entries []Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list manifest: %w", err)
	}
	return entries, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB exposes the connection for schema inspection.
func (s *Store) DB() *gorm.DB {
	return s.db
}
