// Package storage connects to S3-compatible object storage.
//
// It wraps the MinIO Go client so the album can be mirrored into a bucket
// (AWS S3 or a self-hosted MinIO) instead of a local directory. Tests use the
// testify mock in core/storage/mocks.
//
// The endpoint may be a bare host:port or a URL; an http or https scheme
// overrides use_ssl.
//
// # Operations
//
//   - BucketExists / MakeBucket: Ensure the destination bucket.
//   - PutObject: Streams a downloaded asset into the bucket.
//   - StatObject: Checks whether an asset is already mirrored.
//   - ListObjects: Lists mirrored assets under the album prefix.
//   - RemoveObject: Deletes orphaned assets.
//   - GetObject: Reads an object back for integrity checks.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "photos")
package storage
