// Package reconcile mirrors one remote album into one destination by diffing
// two listings: the album's assets and the destination's entries.
//
// Identity is the file name. An asset with ID "a1" and original path
// "x/1.png" belongs in "a1.png"; a destination file belongs to the asset
// whose ID equals its stem (the part before the first dot). Matching is exact
// and case sensitive. No manifest is consulted.
//
// # Architecture
//
// Reconciliation is split in two steps:
//
// 1. BuildPlan: pure function over both listings. Regular files whose stem is
//    not an album ID become ActionDeleteOrphan, assets whose expected name is
//    listed become ActionSkip, every other asset becomes ActionDownload.
//
// 2. ApplyPlan: executes the plan sequentially. Deletions and downloads are
//    independent; a failure is logged, recorded in the Result and the loop
//    moves on. Existence is re-checked at apply time, so an asset is only
//    fetched when its expected name is still absent.
//
// Deletions must only ever be computed against a complete album. Callers that
// failed to fetch the album never build a plan.
//
// # Usage Example
//
//	plan := reconcile.BuildPlan(album.Assets, entries)
//	result, err := reconcile.ApplyPlan(ctx, plan, dest, downloader, reconcile.Options{
//	    Logger: log,
//	})
//	log.Info(fmt.Sprintf("Finished - new:%d skipped:%d failed:%d",
//	    result.New, result.Skipped, result.Failed))
package reconcile
