package sync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"

	"immich-album-sync/core/immich"
	"immich-album-sync/core/reconcile"
	"immich-album-sync/core/target"
)

// Source is the part of the Immich client a sync run uses.
type Source interface {
	GetAlbum(ctx context.Context, albumID string) (*immich.Album, error)
	DownloadOriginal(ctx context.Context, assetID string, w io.Writer) (int64, error)
}

// Downloader streams asset originals into the destination.
type Downloader struct {
	source Source
	dest   target.Target
}

// NewDownloader creates a downloader writing into dest.
func NewDownloader(source Source, dest target.Target) *Downloader {
	return &Downloader{source: source, dest: dest}
}

// Download writes the original of asset to name, creating or truncating it,
// and returns the written size and sha256.
//
// The entry is only created once the server has answered with a success
// status. A transfer interrupted after that leaves the partial entry behind.
func (d *Downloader) Download(ctx context.Context, asset immich.Asset, name string) (*reconcile.Fetched, error) {
	out := &lazyEntry{ctx: ctx, dest: d.dest, name: name}
	h := sha256.New()

	n, err := d.source.DownloadOriginal(ctx, asset.ID, io.MultiWriter(out, h))
	if err != nil {
		_ = out.Close()
		return nil, err
	}

	// Empty originals still produce an entry
	if err := out.open(); err != nil {
		return nil, &immich.DownloadError{AssetID: asset.ID, Kind: immich.KindIO, Err: err}
	}
	if err := out.Close(); err != nil {
		return nil, &immich.DownloadError{AssetID: asset.ID, Kind: immich.KindIO, Err: err}
	}

	return &reconcile.Fetched{Size: n, SHA256: hex.EncodeToString(h.Sum(nil))}, nil
}

// Fetch implements reconcile.Fetcher.
func (d *Downloader) Fetch(ctx context.Context, asset immich.Asset, name string) (*reconcile.Fetched, error) {
	return d.Download(ctx, asset, name)
}

// lazyEntry creates the destination entry on first write.
type lazyEntry struct {
	ctx  context.Context
	dest target.Target
	name string
	w    io.WriteCloser
	err  error
}

func (l *lazyEntry) open() error {
	if l.w != nil || l.err != nil {
		return l.err
	}
	l.w, l.err = l.dest.Create(l.ctx, l.name)
	return l.err
}

func (l *lazyEntry) Write(p []byte) (int, error) {
	if err := l.open(); err != nil {
		return 0, err
	}
	n, err := l.w.Write(p)
	if err != nil {
		l.err = err
	}
	return n, err
}

func (l *lazyEntry) Close() error {
	if l.w == nil {
		return nil
	}
	err := l.w.Close()
	l.w = nil
	if err != nil && l.err == nil {
		l.err = err
	}
	return err
}
