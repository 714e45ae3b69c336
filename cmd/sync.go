package cmd

import (
	"fmt"

	albumsync "immich-album-sync/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunSync bool
	jsonSync   bool
)

// syncCmd runs one sync in the foreground.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the album into the destination once",
	Long: `Deletes files whose asset is no longer in the album, then downloads
every asset that has no file yet.

Examples:
  # Show what would change
  sync --dry-run

  # Sync and print the report as JSON
  sync --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, dryRunSync)
	},
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "plan without deleting or downloading")
	syncCmd.Flags().BoolVar(&jsonSync, "json", false, "print the run report as JSON")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, dryRun bool) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	comps, err := albumsync.Build(cmd.Context(), a.cfg, a.log)
	if err != nil {
		a.log.Error("CRITICAL: Failed to prepare sync. Exiting.", zap.Error(err))
		return err
	}
	defer comps.Close()

	rc := albumsync.NewRunContext(a.cfg, a.log)
	rc.DryRun = dryRun

	report, err := comps.Service.Run(cmd.Context(), rc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonSync {
		return printJSON(out, report)
	}
	if dryRun && report.Plan != nil {
		fmt.Fprintf(out, "Dry run: %d to delete, %d to download, %d already present\n",
			report.Plan.Orphans, report.Plan.Downloads, report.Plan.Skips)
	}
	return nil
}
