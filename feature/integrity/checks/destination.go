package checks

import (
	"context"
	"fmt"
	"sort"

	"immich-album-sync/core/reconcile"
	"immich-album-sync/core/target"

	"go.uber.org/zap"
)

// DestinationReport describes what the destination currently holds.
type DestinationReport struct {
	Location string `json:"location"`
	Readable bool   `json:"readable"`
	Error    string `json:"error,omitempty"`
	Files    int    `json:"files"`
	// NonRegular lists directories and other entries a sync never touches.
	NonRegular []string `json:"non_regular"`
	// DuplicateStems maps a stem to every file sharing it; only one can match its asset.
	DuplicateStems map[string][]string `json:"duplicate_stems"`
}

// CheckDestination lists the destination and reports entries that do not fit
// the <asset_id><ext> layout. An unreadable destination is reported, not returned as an error.
func CheckDestination(ctx context.Context, dest target.Target) *DestinationReport {
	report := &DestinationReport{
		Location:       dest.Location(),
		NonRegular:     []string{},
		DuplicateStems: map[string][]string{},
	}

	entries, err := dest.List(ctx)
	if err != nil {
		// Missing or unreadable; FixDestination can create it
		report.Error = fmt.Sprintf("failed to list destination: %v", err)
		return report
	}
	report.Readable = true

	byStem := map[string][]string{}
	for _, e := range entries {
		if !e.Regular {
			report.NonRegular = append(report.NonRegular, e.Name)
			continue
		}
		report.Files++
		stem := reconcile.Stem(e.Name)
		byStem[stem] = append(byStem[stem], e.Name)
	}
	for stem, names := range byStem {
		if len(names) > 1 {
			sort.Strings(names)
			report.DuplicateStems[stem] = names
		}
	}
	sort.Strings(report.NonRegular)

	return report
}

// FixDestination creates a missing destination.
func FixDestination(ctx context.Context, dest target.Target, logger *zap.Logger) error {
	if err := dest.Ensure(ctx); err != nil {
		logger.Error("Failed to create destination", zap.String("location", dest.Location()), zap.Error(err))
		return err
	}
	logger.Info("Created destination", zap.String("location", dest.Location()))
	return nil
}
