package reconcile

import (
	"context"

	"immich-album-sync/core/immich"

	"go.uber.org/zap"
)

// ActionType represents the type of planned operation.
type ActionType string

const (
	// ActionDeleteOrphan removes a destination file whose stem matches no remote asset.
	ActionDeleteOrphan ActionType = "delete_orphan"
	// ActionSkip leaves an already present file untouched.
	ActionSkip ActionType = "skip"
	// ActionDownload fetches an asset that has no file in the destination.
	ActionDownload ActionType = "download"
)

// Action represents a planned operation against the destination.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Name is the destination entry the action applies to.
	Name string `json:"name"`

	// AssetID is the remote asset behind the action. Empty for orphans.
	AssetID string `json:"asset_id,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Plan is the diff between a complete album listing and a destination listing.
type Plan struct {
	// Assets is the album in remote order.
	Assets []immich.Asset `json:"-"`

	// Actions holds orphan deletions first, then one action per asset in album order.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Assets is the number of remote assets.
	Assets int `json:"assets"`

	// Orphans counts planned deletions.
	Orphans int `json:"orphans"`

	// Downloads counts assets without a destination file.
	Downloads int `json:"downloads"`

	// Skips counts assets whose expected file already exists.
	Skips int `json:"skips"`
}

// Status is the final state of one asset after ApplyPlan.
type Status string

const (
	StatusNew     Status = "new"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	// StatusPlanned marks a download that a dry run did not perform.
	StatusPlanned Status = "planned"
)

// Outcome records what happened to one asset.
type Outcome struct {
	AssetID string `json:"asset_id"`
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Size    int64  `json:"size,omitempty"`
	SHA256  string `json:"sha256,omitempty"`
	Error   string `json:"error,omitempty"`

	Err error `json:"-"`
}

// Deletion records one orphan removal attempt.
type Deletion struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`

	Err error `json:"-"`
}

// Result is the outcome of applying a plan.
// New + Skipped + Failed equals the number of assets for a completed run.
type Result struct {
	New     int `json:"new"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`

	// Planned counts downloads a dry run left out.
	Planned int `json:"planned,omitempty"`

	Deletions []Deletion `json:"deletions"`
	Outcomes  []Outcome  `json:"outcomes"`

	DryRun bool `json:"dry_run,omitempty"`
}

// Fetched describes a completed download.
type Fetched struct {
	Size   int64
	SHA256 string
}

// Fetcher writes the original content of an asset to the named destination entry.
type Fetcher interface {
	Fetch(ctx context.Context, asset immich.Asset, name string) (*Fetched, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, asset immich.Asset, name string) (*Fetched, error)

func (f FetcherFunc) Fetch(ctx context.Context, asset immich.Asset, name string) (*Fetched, error) {
	return f(ctx, asset, name)
}

// Options controls ApplyPlan behavior.
type Options struct {
	// DryRun prevents any deletion or download if true.
	DryRun bool

	// Logger receives one line per deletion and per download. Nil disables logging.
	Logger *zap.Logger

	// OnDownloaded is called after each successful download.
	OnDownloaded func(ctx context.Context, asset immich.Asset, outcome Outcome)

	// OnDeleted is called after each successful orphan deletion.
	OnDeleted func(ctx context.Context, name string)
}
