// Package integrity checks that the destination matches what syncs wrote.
//
// # Checks Provided
//
//   - Destination: whether the destination can be listed, directories a sync
//     ignores, and files that share a stem.
//   - Manifest: recorded files that are missing, changed size or, with
//     verify, changed content (sha256). Also lists untracked files.
//   - Schema: the manifest table has every column of the gorm model.
//
// Manifest and schema checks need the manifest to be enabled.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks (supports ?verify=true).
//   - GET /integrity/destination : Destination check (supports ?fix=true).
//   - GET /integrity/manifest : Manifest check (supports ?verify=true).
//   - GET /integrity/schema : Manifest schema check.
package integrity
