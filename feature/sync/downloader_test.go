package sync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"immich-album-sync/core/immich"
	"immich-album-sync/core/target"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Download(t *testing.T) {
	fs, dest := newLocal(t, map[string]string{"a1.png": "stale"})
	source := &fakeSource{content: map[string]string{"a1": "fresh-bytes"}}

	fetched, err := NewDownloader(source, dest).Download(context.Background(), immich.Asset{ID: "a1"}, "a1.png")
	require.NoError(t, err)

	sum := sha256.Sum256([]byte("fresh-bytes"))
	assert.Equal(t, int64(len("fresh-bytes")), fetched.Size)
	assert.Equal(t, hex.EncodeToString(sum[:]), fetched.SHA256)

	data, err := afero.ReadFile(fs, destDir+"/a1.png")
	require.NoError(t, err)
	assert.Equal(t, "fresh-bytes", string(data))
}

func TestDownloader_EmptyOriginal(t *testing.T) {
	fs, dest := newLocal(t, nil)
	require.NoError(t, dest.Ensure(context.Background()))
	source := &fakeSource{content: map[string]string{"a1": ""}}

	fetched, err := NewDownloader(source, dest).Download(context.Background(), immich.Asset{ID: "a1"}, "a1.jpg")
	require.NoError(t, err)
	assert.Zero(t, fetched.Size)

	ok, err := afero.Exists(fs, destDir+"/a1.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDownloader_StatusErrorCreatesNothing(t *testing.T) {
	fs, dest := newLocal(t, nil)
	require.NoError(t, dest.Ensure(context.Background()))
	statusErr := &immich.DownloadError{AssetID: "a1", Kind: immich.KindStatus, StatusCode: 404, Err: errors.New("404 Not Found")}
	source := &fakeSource{failures: map[string]error{"a1": statusErr}}

	_, err := NewDownloader(source, dest).Download(context.Background(), immich.Asset{ID: "a1"}, "a1.png")

	var dlErr *immich.DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, immich.KindStatus, dlErr.Kind)

	ok, err := afero.Exists(fs, destDir+"/a1.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDownloader_InterruptedLeavesPartialFile(t *testing.T) {
	fs, dest := newLocal(t, nil)
	require.NoError(t, dest.Ensure(context.Background()))
	source := &fakeSource{
		content: map[string]string{"a1": "0123456789"},
		cut:     map[string]int{"a1": 4},
	}

	_, err := NewDownloader(source, dest).Download(context.Background(), immich.Asset{ID: "a1"}, "a1.png")

	var dlErr *immich.DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, immich.KindNetwork, dlErr.Kind)

	data, err := afero.ReadFile(fs, destDir+"/a1.png")
	require.NoError(t, err)
	assert.Equal(t, "0123", string(data))
}

func TestDownloader_CreateFailureIsIO(t *testing.T) {
	fs, dest := newLocal(t, nil)
	require.NoError(t, dest.Ensure(context.Background()))
	source := &fakeSource{content: map[string]string{"a1": "data"}}

	// A read-only filesystem refuses to create the entry
	ro := NewDownloader(source, readOnly(fs))
	_, err := ro.Download(context.Background(), immich.Asset{ID: "a1"}, "a1.png")
	assert.Error(t, err)
}

func readOnly(fs afero.Fs) *target.Local {
	return target.NewLocal(afero.NewReadOnlyFs(fs), destDir)
}
