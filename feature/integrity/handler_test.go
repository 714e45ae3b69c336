package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"immich-album-sync/core/manifest"
	"immich-album-sync/core/target"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, dest target.Target, store *manifest.Store) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(dest, store, "album", zap.NewNop())).RegisterRoutes(app)
	return app
}

func decode(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleIntegrityCheck(t *testing.T) {
	store := setupStore(t, manifest.Entry{AssetID: "a1", AlbumID: "album", FileName: "a1.png", Size: 3})
	app := setupTestApp(t, setupDest(t, map[string]string{"a1.png": "abc"}), store)

	status, body := decode(t, app, "/integrity?verify=true")
	assert.Equal(t, 200, status)
	assert.Contains(t, body, "destination")
	assert.Contains(t, body, "manifest")
	assert.Contains(t, body, "schema")
}

func TestHandleDestinationCheck(t *testing.T) {
	fs := afero.NewMemMapFs()
	app := setupTestApp(t, target.NewLocal(fs, "/album"), nil)

	status, body := decode(t, app, "/integrity/destination")
	assert.Equal(t, 200, status)
	assert.Equal(t, "checked", body["status"])

	status, body = decode(t, app, "/integrity/destination?fix=true")
	assert.Equal(t, 200, status)
	assert.Equal(t, "fixed", body["status"])

	exists, err := afero.DirExists(fs, "/album")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestHandleManifestCheck(t *testing.T) {
	store := setupStore(t, manifest.Entry{AssetID: "a1", AlbumID: "album", FileName: "a1.png", Size: 3})
	app := setupTestApp(t, setupDest(t, nil), store)

	// Destination does not exist yet
	status, _ := decode(t, app, "/integrity/manifest")
	assert.Equal(t, 500, status)
}

func TestHandleManifestCheck_Disabled(t *testing.T) {
	app := setupTestApp(t, setupDest(t, map[string]string{"a1.png": "abc"}), nil)

	status, body := decode(t, app, "/integrity/manifest")
	assert.Equal(t, 404, status)
	assert.Equal(t, ErrNoManifest.Error(), body["error"])

	status, _ = decode(t, app, "/integrity/schema")
	assert.Equal(t, 404, status)
}

func TestHandleSchemaCheck(t *testing.T) {
	app := setupTestApp(t, setupDest(t, nil), setupStore(t))

	status, body := decode(t, app, "/integrity/schema")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["matched"])
}
