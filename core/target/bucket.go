package target

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"immich-album-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// uploadPartSize keeps memory bounded for uploads of unknown length.
const uploadPartSize = 16 << 20

// BucketOptions configures a Bucket destination.
type BucketOptions struct {
	Bucket string
	Prefix string
	Region string
}

// Bucket mirrors into a prefix of an object storage bucket.
type Bucket struct {
	client storage.Client
	opts   BucketOptions
}

// NewBucket creates an object storage destination.
func NewBucket(client storage.Client, opts BucketOptions) *Bucket {
	opts.Prefix = strings.Trim(opts.Prefix, "/")
	return &Bucket{client: client, opts: opts}
}

func (b *Bucket) Location() string {
	if b.opts.Prefix == "" {
		return "s3://" + b.opts.Bucket
	}
	return "s3://" + b.opts.Bucket + "/" + b.opts.Prefix
}

func (b *Bucket) Ensure(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.opts.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := b.client.MakeBucket(ctx, b.opts.Bucket, minio.MakeBucketOptions{Region: b.opts.Region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", b.opts.Bucket, err)
	}
	return nil
}

func (b *Bucket) List(ctx context.Context) ([]Entry, error) {
	prefix := b.listPrefix()
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}

	var entries []Entry
	for obj := range b.client.ListObjects(ctx, b.opts.Bucket, opts) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" {
			continue
		}
		// Common prefixes come back as keys ending in "/"
		isDir := strings.HasSuffix(name, "/")
		entries = append(entries, Entry{
			Name:    strings.TrimSuffix(name, "/"),
			Size:    obj.Size,
			Regular: !isDir,
		})
	}
	return entries, nil
}

func (b *Bucket) Exists(ctx context.Context, name string) (bool, error) {
	_, err := b.client.StatObject(ctx, b.opts.Bucket, b.key(name), minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if storage.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Create streams writes into a PutObject call running until Close.
func (b *Bucket) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	pr, pw := io.Pipe()
	done := make(chan error, 1)

	opts := minio.PutObjectOptions{
		PartSize:    uploadPartSize,
		ContentType: mime.TypeByExtension(path.Ext(name)),
	}

	go func() {
		_, err := b.client.PutObject(ctx, b.opts.Bucket, b.key(name), pr, -1, opts)
		pr.CloseWithError(err)
		done <- err
	}()

	return &upload{pw: pw, done: done}, nil
}

func (b *Bucket) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return b.client.GetObject(ctx, b.opts.Bucket, b.key(name), minio.GetObjectOptions{})
}

func (b *Bucket) Remove(ctx context.Context, name string) error {
	return b.client.RemoveObject(ctx, b.opts.Bucket, b.key(name), minio.RemoveObjectOptions{})
}

func (b *Bucket) key(name string) string {
	return b.listPrefix() + name
}

func (b *Bucket) listPrefix() string {
	if b.opts.Prefix == "" {
		return ""
	}
	return b.opts.Prefix + "/"
}

type upload struct {
	pw   *io.PipeWriter
	done chan error
}

func (u *upload) Write(p []byte) (int, error) {
	return u.pw.Write(p)
}

func (u *upload) Close() error {
	if err := u.pw.Close(); err != nil {
		return err
	}
	return <-u.done
}
