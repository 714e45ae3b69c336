// Package sync runs one-way syncs of an Immich album into a destination.
//
// A run ensures the destination exists, fetches the album, lists the
// destination, then plans and applies the reconciliation from core/reconcile.
// Failures before reconciliation abort the run; per-file failures are logged
// and counted. Every run ends with a summary line:
//
//	Finished - new:2 skipped:10 failed:0
//
// # Components
//
//   - Service: Run (one sync, overlapping calls collapse into one) and Loop
//     (periodic runs for the serve command). Keeps the last Report.
//   - Downloader: streams an asset original into the destination while
//     computing its sha256 for the manifest.
//   - Handler/Feature: GET /sync returns the last report, POST /sync starts a run.
//   - Build: wires the Immich client, the destination and the optional
//     manifest from configuration.
package sync
