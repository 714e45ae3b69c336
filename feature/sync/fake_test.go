package sync

import (
	"context"
	"io"
	"strings"
	"testing"

	"immich-album-sync/core/config"
	"immich-album-sync/core/immich"
	"immich-album-sync/core/target"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const destDir = "/photos/album"

// fakeSource serves an in-memory album.
type fakeSource struct {
	album    *immich.Album
	albumErr error
	content  map[string]string
	failures map[string]error
	// cut makes the body of an asset end after this many bytes with an error
	cut map[string]int
	// entered receives once per GetAlbum call; gate, when set, holds the call until closed
	entered chan struct{}
	gate    chan struct{}

	downloads []string
}

func (f *fakeSource) GetAlbum(ctx context.Context, albumID string) (*immich.Album, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	if f.albumErr != nil {
		return nil, f.albumErr
	}
	return f.album, nil
}

func (f *fakeSource) DownloadOriginal(ctx context.Context, assetID string, w io.Writer) (int64, error) {
	f.downloads = append(f.downloads, assetID)
	if err := f.failures[assetID]; err != nil {
		return 0, err
	}
	body := f.content[assetID]
	if n, ok := f.cut[assetID]; ok {
		written, _ := io.Copy(w, strings.NewReader(body[:n]))
		return written, &immich.DownloadError{AssetID: assetID, Kind: immich.KindNetwork, Err: io.ErrUnexpectedEOF}
	}
	return io.Copy(w, strings.NewReader(body))
}

func album(assets ...immich.Asset) *immich.Album {
	return &immich.Album{ID: "album-1", Name: "Holidays", Assets: assets}
}

func testConfig() *config.Config {
	return &config.Config{
		APIURL:      "http://immich.local/api",
		APIKey:      "key",
		AlbumID:     "album-1",
		LocalFolder: destDir,
	}
}

func newLocal(t *testing.T, files map[string]string) (afero.Fs, target.Target) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, destDir+"/"+name, []byte(content), 0o644))
	}
	return fs, target.NewLocal(fs, destDir)
}

func newRun() *RunContext {
	return NewRunContext(testConfig(), zap.NewNop())
}
