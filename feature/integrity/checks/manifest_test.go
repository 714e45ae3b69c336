package checks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"immich-album-sync/core/manifest"
	"immich-album-sync/core/target"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func TestCheckManifest(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"ok.png":      "good",
		"resized.png": "longer-than-before",
		"edited.png":  "EDIT",
		"stray.jpg":   "x",
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, "/album/"+name, []byte(content), 0o644))
	}
	dest := target.NewLocal(fs, "/album")

	entries := []manifest.Entry{
		{AssetID: "ok", FileName: "ok.png", Size: 4, SHA256: sum("good")},
		{AssetID: "resized", FileName: "resized.png", Size: 3, SHA256: sum("old")},
		{AssetID: "edited", FileName: "edited.png", Size: 4, SHA256: sum("orig")},
		{AssetID: "gone", FileName: "gone.png", Size: 1},
	}
	local, err := dest.List(ctx)
	require.NoError(t, err)

	t.Run("Sizes only", func(t *testing.T) {
		report, err := CheckManifest(ctx, dest, entries, local, false)
		require.NoError(t, err)

		assert.Equal(t, 4, report.Checked)
		assert.Equal(t, []string{"gone.png"}, report.Missing)
		assert.Equal(t, []string{"resized.png"}, report.SizeMismatch)
		assert.Empty(t, report.HashMismatch)
		assert.Equal(t, []string{"stray.jpg"}, report.Untracked)
		assert.False(t, report.Verified)
	})

	t.Run("Verify hashes", func(t *testing.T) {
		report, err := CheckManifest(ctx, dest, entries, local, true)
		require.NoError(t, err)

		assert.Equal(t, []string{"edited.png"}, report.HashMismatch)
		assert.True(t, report.Verified)
	})
}
