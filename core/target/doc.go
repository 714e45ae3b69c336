// Package target abstracts the destination an album is mirrored into.
//
// Two implementations exist:
//   - Local: a directory on an afero filesystem (the OS filesystem in production,
//     a memory filesystem in tests).
//   - Bucket: a prefix inside an S3-compatible bucket, through core/storage.
//
// Entries are flat: the destination's direct children only. Their names are
// <asset_id><ext>, and an entry's identity is the stem of its name.
package target
