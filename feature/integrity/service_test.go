package integrity

import (
	"context"
	"testing"

	"immich-album-sync/core/database"
	"immich-album-sync/core/manifest"
	"immich-album-sync/core/target"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupStore creates an in-memory manifest for testing.
func setupStore(t *testing.T, entries ...manifest.Entry) *manifest.Store {
	t.Helper()
	store, err := manifest.Open(context.Background(), database.Config{Driver: database.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	for _, e := range entries {
		require.NoError(t, store.Record(context.Background(), e))
	}
	return store
}

func setupDest(t *testing.T, files map[string]string) target.Target {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, "/album/"+name, []byte(content), 0o644))
	}
	return target.NewLocal(fs, "/album")
}

func TestService_CheckAll(t *testing.T) {
	store := setupStore(t,
		manifest.Entry{AssetID: "a1", AlbumID: "album", FileName: "a1.png", Size: 3},
		manifest.Entry{AssetID: "a2", AlbumID: "album", FileName: "a2.png", Size: 3},
		manifest.Entry{AssetID: "b1", AlbumID: "other", FileName: "b1.png", Size: 3},
	)
	dest := setupDest(t, map[string]string{"a1.png": "abc"})
	svc := NewService(dest, store, "album", zap.NewNop())

	report := svc.CheckAll(context.Background(), false)

	assert.Empty(t, report.Errors)
	require.NotNil(t, report.Manifest)
	assert.Equal(t, 2, report.Manifest.Checked)
	assert.Equal(t, []string{"a2.png"}, report.Manifest.Missing)
	assert.True(t, report.Schema.Matched)
	assert.False(t, report.Healthy())
}

func TestService_CheckAll_Healthy(t *testing.T) {
	store := setupStore(t, manifest.Entry{AssetID: "a1", AlbumID: "album", FileName: "a1.png", Size: 3})
	svc := NewService(setupDest(t, map[string]string{"a1.png": "abc"}), store, "album", nil)

	assert.True(t, svc.CheckAll(context.Background(), true).Healthy())
}

func TestService_WithoutManifest(t *testing.T) {
	svc := NewService(setupDest(t, map[string]string{"a1.png": "abc"}), nil, "album", nil)

	report := svc.CheckAll(context.Background(), false)
	assert.Nil(t, report.Manifest)
	assert.Nil(t, report.Schema)
	assert.True(t, report.Healthy())

	_, err := svc.CheckManifest(context.Background(), false)
	assert.ErrorIs(t, err, ErrNoManifest)
	_, err = svc.CheckSchema()
	assert.ErrorIs(t, err, ErrNoManifest)
}
