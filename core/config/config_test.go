package config

import (
	"os"
	"path/filepath"
	"testing"

	"immich-album-sync/core/target"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"api_url": "https://photos.example.com/",
		"api_key": "secret",
		"album_id": "album-1",
		"local_folder": "/srv/photos",
		"interval_minutes": 15
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://photos.example.com/api", cfg.APIURL)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "album-1", cfg.AlbumID)
	assert.Equal(t, "/srv/photos", cfg.LocalFolder)
	assert.Equal(t, 15, cfg.IntervalMinutes)
	assert.Equal(t, 0, cfg.BackgroundIntervalMinutes)

	// Defaults from struct tags
	assert.Equal(t, target.TypeLocal, cfg.Destination.Type)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.HTTP.TimeoutSeconds)
	assert.False(t, cfg.Manifest.Enabled)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, `{"api_url": "http://immich:2283/api", "api_key": "file", "album_id": "a", "local_folder": "/tmp/x"}`)

	t.Setenv("ALBUMSYNC_API_KEY", "from-env")
	t.Setenv("ALBUMSYNC_STORAGE_BUCKET", "photos")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "photos", cfg.Storage.Bucket)
	assert.Equal(t, "http://immich:2283/api", cfg.APIURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		var cfgErr *Error
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "read", cfgErr.Op)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		path := writeConfig(t, `{"api_url": `)
		_, err := LoadConfig(path)
		var cfgErr *Error
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "parse", cfgErr.Op)
	})

	t.Run("Missing keys", func(t *testing.T) {
		path := writeConfig(t, `{"api_url": "http://immich"}`)
		_, err := LoadConfig(path)
		var cfgErr *Error
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "validate", cfgErr.Op)
		assert.Contains(t, err.Error(), "api_key")
		assert.Contains(t, err.Error(), "album_id")
		assert.Contains(t, err.Error(), "local_folder")
	})
}

func TestNormalizeAPIURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://immich:2283", "http://immich:2283/api"},
		{"http://immich:2283/", "http://immich:2283/api"},
		{"http://immich:2283/api", "http://immich:2283/api"},
		{"http://immich:2283/api/", "http://immich:2283/api"},
		{"https://example.com/photos", "https://example.com/photos/api"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAPIURL(tt.in))
		})
	}
}
