package manifest

import (
	"context"
	"errors"
	"testing"
	"time"

	"immich-album-sync/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), database.Config{Driver: database.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestStore_RecordAndGet(t *testing.T) {
	ctx := context.Background()
	store := openMemory(t)

	syncedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, Entry{
		AssetID:  "a1",
		AlbumID:  "album",
		FileName: "a1.png",
		Size:     3,
		SHA256:   "abc",
		SyncedAt: syncedAt,
	}))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1.png", got.FileName)
	assert.Equal(t, int64(3), got.Size)
	assert.True(t, syncedAt.Equal(got.SyncedAt))

	t.Run("Upsert replaces", func(t *testing.T) {
		require.NoError(t, store.Record(ctx, Entry{AssetID: "a1", AlbumID: "album", FileName: "a1.png", Size: 5, SHA256: "def"}))

		got, err := store.Get(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Size)
		assert.Equal(t, "def", got.SHA256)
		assert.False(t, got.SyncedAt.IsZero())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_RecordRequiresAssetID(t *testing.T) {
	store := openMemory(t)
	assert.Error(t, store.Record(context.Background(), Entry{FileName: "x.png"}))
}

func TestStore_ListAndRemove(t *testing.T) {
	ctx := context.Background()
	store := openMemory(t)

	for _, e := range []Entry{
		{AssetID: "b", AlbumID: "one", FileName: "b.jpg"},
		{AssetID: "a", AlbumID: "one", FileName: "a.jpg"},
		{AssetID: "c", AlbumID: "two", FileName: "c.jpg"},
	} {
		require.NoError(t, store.Record(ctx, e))
	}

	entries, err := store.List(ctx, "one")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].AssetID)
	assert.Equal(t, "b", entries[1].AssetID)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, store.Remove(ctx, "a"))
	require.NoError(t, store.Remove(ctx, "a"))

	entries, err = store.List(ctx, "one")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_MySQLErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)
	ctx := context.Background()

	t.Run("Record", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO `manifest_entries`").
			WillReturnError(errors.New("deadlock"))

		err := store.Record(ctx, Entry{AssetID: "a1"})
		assert.ErrorContains(t, err, "deadlock")
	})

	t.Run("Remove", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM `manifest_entries` WHERE asset_id = \\?").
			WithArgs("a1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.Remove(ctx, "a1"))
	})

	t.Run("List", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"asset_id", "album_id", "file_name", "size", "sha256", "synced_at"}).
			AddRow("a1", "album", "a1.png", 3, "abc", time.Now())
		mock.ExpectQuery("SELECT \\* FROM `manifest_entries` WHERE album_id = \\? ORDER BY asset_id").
			WithArgs("album").
			WillReturnRows(rows)

		entries, err := store.List(ctx, "album")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a1.png", entries[0].FileName)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
