package reconcile

import (
	"testing"

	"immich-album-sync/core/immich"
	"immich-album-sync/core/target"

	"github.com/stretchr/testify/assert"
)

func file(name string) target.Entry {
	return target.Entry{Name: name, Size: 1, Regular: true}
}

func TestStem(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a1.png", "a1"},
		{"a1", "a1"},
		{"a1.tar.gz", "a1"},
		{".hidden", ".hidden"},
		{"A1.PNG", "A1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.name))
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"foo/bar.png", ".png"},
		{"y/2", ".jpg"},
		{"", ".jpg"},
		{"upload/library/IMG_0001.HEIC", ".HEIC"},
		{"archive/clip.tar.mp4", ".mp4"},
		{"dir.with.dots/noext", ".jpg"},
		{"photos/.hidden", ".jpg"},
		{`C:\Users\me\Pictures\scan.tiff`, ".tiff"},
		{"trailing.", "."},
		{"y/2.", "."},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.path))
		})
	}
}

func TestExpectedName(t *testing.T) {
	assert.Equal(t, "abc.png", ExpectedName(immich.Asset{ID: "abc", OriginalPath: "foo/bar.png"}))
	assert.Equal(t, "abc.jpg", ExpectedName(immich.Asset{ID: "abc", OriginalPath: "foo/bar"}))
	assert.Equal(t, "abc.", ExpectedName(immich.Asset{ID: "abc", OriginalPath: "y/2."}))
}

// TestBuildPlan_EmptyDestination covers an album synced into an empty folder.
func TestBuildPlan_EmptyDestination(t *testing.T) {
	assets := []immich.Asset{
		{ID: "a1", OriginalPath: "x/1.png"},
		{ID: "a2", OriginalPath: "y/2"},
	}

	plan := BuildPlan(assets, nil)

	assert.Equal(t, PlanSummary{Assets: 2, Downloads: 2}, plan.Summary)
	assert.Equal(t, []Action{
		{Type: ActionDownload, Name: "a1.png", AssetID: "a1", Reason: "missing in destination"},
		{Type: ActionDownload, Name: "a2.jpg", AssetID: "a2", Reason: "missing in destination"},
	}, plan.Actions)
	assert.Empty(t, plan.Orphans())
}

// TestBuildPlan_OrphanAndSkip covers an orphan next to an already synced asset.
func TestBuildPlan_OrphanAndSkip(t *testing.T) {
	assets := []immich.Asset{{ID: "a1", OriginalPath: "x/1.png"}}
	local := []target.Entry{file("orphan.png"), file("a1.png")}

	plan := BuildPlan(assets, local)

	assert.Equal(t, PlanSummary{Assets: 1, Orphans: 1, Skips: 1}, plan.Summary)
	assert.Equal(t, []string{"orphan.png"}, plan.Orphans())
	assert.Equal(t, ActionDeleteOrphan, plan.Actions[0].Type)
	assert.Equal(t, ActionSkip, plan.Actions[1].Type)
	assert.Equal(t, "a1", plan.Actions[1].AssetID)
}

func TestBuildPlan_OrphanRegardlessOfExtension(t *testing.T) {
	local := []target.Entry{file("gone.png"), file("gone.jpg"), file("gone"), file("gone.tar.gz")}

	plan := BuildPlan(nil, local)

	assert.ElementsMatch(t, []string{"gone.png", "gone.jpg", "gone", "gone.tar.gz"}, plan.Orphans())
}

func TestBuildPlan_StemKeepsOtherExtensions(t *testing.T) {
	// A file with a matching stem but another extension is kept, and the
	// expected name is still downloaded next to it.
	assets := []immich.Asset{{ID: "a1", OriginalPath: "x/1.png"}}
	local := []target.Entry{file("a1.jpg")}

	plan := BuildPlan(assets, local)

	assert.Empty(t, plan.Orphans())
	assert.Equal(t, 1, plan.Summary.Downloads)
	assert.Equal(t, "a1.png", plan.Actions[0].Name)
}

func TestBuildPlan_CaseSensitive(t *testing.T) {
	assets := []immich.Asset{{ID: "a1", OriginalPath: "x/1.png"}}
	local := []target.Entry{file("A1.png")}

	plan := BuildPlan(assets, local)

	assert.Equal(t, []string{"A1.png"}, plan.Orphans())
	assert.Equal(t, 1, plan.Summary.Downloads)
}

func TestBuildPlan_IgnoresDirectories(t *testing.T) {
	local := []target.Entry{{Name: "subdir", Regular: false}, file("stray.txt")}

	plan := BuildPlan(nil, local)

	assert.Equal(t, []string{"stray.txt"}, plan.Orphans())
}

func TestBuildPlan_SameIDDifferentExtensions(t *testing.T) {
	assets := []immich.Asset{
		{ID: "dup", OriginalPath: "a.png"},
		{ID: "dup", OriginalPath: "b.mov"},
	}
	local := []target.Entry{file("dup.png")}

	plan := BuildPlan(assets, local)

	assert.Equal(t, 1, plan.Summary.Skips)
	assert.Equal(t, 1, plan.Summary.Downloads)
	assert.Equal(t, "dup.mov", plan.Actions[1].Name)
}
