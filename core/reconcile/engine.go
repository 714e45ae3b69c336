package reconcile

import (
	"context"
	"errors"

	"immich-album-sync/core/target"

	"go.uber.org/zap"
)

// ApplyPlan executes a plan against the destination.
//
// Orphans are deleted first, each independently. Assets are then processed
// strictly one at a time in album order: an asset whose expected name exists
// at apply time is skipped without validating its content, any other asset is
// fetched. Per-item failures are logged and recorded in the result; they never
// stop the run. The returned error is non-nil only when ctx is cancelled, in
// which case the result covers the work done so far.
func ApplyPlan(ctx context.Context, plan *Plan, dest target.Target, fetcher Fetcher, opts Options) (*Result, error) {
	if plan == nil {
		return nil, errors.New("reconcile: nil plan")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	result := &Result{
		Deletions: make([]Deletion, 0, plan.Summary.Orphans),
		Outcomes:  make([]Outcome, 0, len(plan.Assets)),
		DryRun:    opts.DryRun,
	}

	if opts.DryRun {
		applyDryRun(plan, result, log)
		return result, nil
	}

	for _, name := range plan.Orphans() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		log.Info("Local file is not in the album, deleting", zap.String("file", name))

		deletion := Deletion{Name: name}
		if err := dest.Remove(ctx, name); err != nil {
			deletion.Err = err
			deletion.Error = err.Error()
			log.Error("Failed to delete orphaned file", zap.String("file", name), zap.Error(err))
		} else {
			log.Info("Deleted orphaned file", zap.String("file", name))
			if opts.OnDeleted != nil {
				opts.OnDeleted(ctx, name)
			}
		}
		result.Deletions = append(result.Deletions, deletion)
	}

	for _, asset := range plan.Assets {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name := ExpectedName(asset)
		outcome := Outcome{AssetID: asset.ID, Name: name}

		exists, err := dest.Exists(ctx, name)
		switch {
		case err != nil:
			outcome.Status = StatusFailed
			outcome.Err = err
			log.Error("Failed to check destination", zap.String("asset_id", asset.ID), zap.String("file", name), zap.Error(err))
		case exists:
			outcome.Status = StatusSkipped
		default:
			fetched, err := fetcher.Fetch(ctx, asset, name)
			if err != nil {
				outcome.Status = StatusFailed
				outcome.Err = err
				log.Error("Download failed", zap.String("asset_id", asset.ID), zap.Error(err))
				break
			}
			outcome.Status = StatusNew
			if fetched != nil {
				outcome.Size = fetched.Size
				outcome.SHA256 = fetched.SHA256
			}
			log.Info("Downloaded", zap.String("asset_id", asset.ID), zap.String("file", name))
			if opts.OnDownloaded != nil {
				opts.OnDownloaded(ctx, asset, outcome)
			}
		}

		result.record(outcome)
	}

	return result, nil
}

func applyDryRun(plan *Plan, result *Result, log *zap.Logger) {
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDeleteOrphan:
			log.Info("Would delete orphaned file", zap.String("file", action.Name))
			result.Deletions = append(result.Deletions, Deletion{Name: action.Name})
		case ActionSkip:
			result.record(Outcome{AssetID: action.AssetID, Name: action.Name, Status: StatusSkipped})
		case ActionDownload:
			log.Info("Would download", zap.String("asset_id", action.AssetID), zap.String("file", action.Name))
			result.record(Outcome{AssetID: action.AssetID, Name: action.Name, Status: StatusPlanned})
		}
	}
}

func (r *Result) record(o Outcome) {
	if o.Err != nil {
		o.Error = o.Err.Error()
	}
	switch o.Status {
	case StatusNew:
		r.New++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	case StatusPlanned:
		r.Planned++
	}
	r.Outcomes = append(r.Outcomes, o)
}

// Total is the number of assets accounted for.
func (r *Result) Total() int {
	return r.New + r.Skipped + r.Failed + r.Planned
}

// FailedDeletions counts orphans that could not be removed.
func (r *Result) FailedDeletions() int {
	n := 0
	for _, d := range r.Deletions {
		if d.Err != nil {
			n++
		}
	}
	return n
}
