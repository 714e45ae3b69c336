package reconcile

import (
	"fmt"

	"immich-album-sync/core/immich"
	"immich-album-sync/core/target"
)

// BuildPlan diffs a complete album against a destination listing.
// It does NOT touch the destination; use ApplyPlan for that.
// Callers must only pass an album that was fetched in full.
func BuildPlan(assets []immich.Asset, local []target.Entry) *Plan {
	remote := make(map[string]struct{}, len(assets))
	for _, asset := range assets {
		remote[asset.ID] = struct{}{}
	}

	present := make(map[string]struct{}, len(local))
	for _, entry := range local {
		present[entry.Name] = struct{}{}
	}

	plan := &Plan{
		Assets:  assets,
		Actions: make([]Action, 0, len(assets)),
	}
	plan.Summary.Assets = len(assets)

	// Orphans: regular files whose stem matches no remote asset
	for _, entry := range local {
		if !entry.Regular {
			continue
		}
		stem := Stem(entry.Name)
		if _, ok := remote[stem]; ok {
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionDeleteOrphan,
			Name:   entry.Name,
			Reason: fmt.Sprintf("stem %q is not in the album", stem),
		})
		plan.Summary.Orphans++
	}

	for _, asset := range assets {
		name := ExpectedName(asset)
		if _, ok := present[name]; ok {
			plan.Actions = append(plan.Actions, Action{
				Type:    ActionSkip,
				Name:    name,
				AssetID: asset.ID,
				Reason:  "already present",
			})
			plan.Summary.Skips++
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Type:    ActionDownload,
			Name:    name,
			AssetID: asset.ID,
			Reason:  "missing in destination",
		})
		plan.Summary.Downloads++
	}

	return plan
}

// Orphans returns the names planned for deletion.
func (p *Plan) Orphans() []string {
	var names []string
	for _, action := range p.Actions {
		if action.Type == ActionDeleteOrphan {
			names = append(names, action.Name)
		}
	}
	return names
}
