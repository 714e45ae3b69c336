package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"immich-album-sync/core/manifest"
	"immich-album-sync/feature/integrity"
	albumsync "immich-album-sync/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag    bool
	verifyFlag bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the destination and the download manifest",
	Long: `Checks that the destination is readable and only holds <asset_id><ext> files.
When the manifest is enabled it also compares every recorded download with the
destination (use --verify to hash each file).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIntegrity(cmd, func(ctx context.Context, svc *integrity.Service, log *zap.Logger) error {
			report := svc.CheckAll(ctx, verifyFlag)
			if !report.Healthy() {
				log.Warn("Integrity problems detected")
			}
			return printJSON(cmd.OutOrStdout(), report)
		})
	},
}

// destinationCmd represents the integrity destination command
var destinationCmd = &cobra.Command{
	Use:   "destination",
	Short: "Check and optionally create the destination",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIntegrity(cmd, func(ctx context.Context, svc *integrity.Service, log *zap.Logger) error {
			report := svc.CheckDestination(ctx)
			if !report.Readable && fixFlag {
				if err := svc.FixDestination(ctx); err != nil {
					return err
				}
				report = svc.CheckDestination(ctx)
			}
			return printJSON(cmd.OutOrStdout(), report)
		})
	},
}

// manifestCmd represents the integrity manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Compare the manifest with the destination",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIntegrity(cmd, func(ctx context.Context, svc *integrity.Service, log *zap.Logger) error {
			report, err := svc.CheckManifest(ctx, verifyFlag)
			if err != nil {
				return err
			}
			log.Info("Manifest check completed",
				zap.Int("checked", report.Checked),
				zap.Int("missing", len(report.Missing)),
				zap.Int("untracked", len(report.Untracked)))
			return printJSON(cmd.OutOrStdout(), report)
		})
	},
}

func init() {
	integrityCmd.PersistentFlags().BoolVar(&verifyFlag, "verify", false, "hash every recorded file")
	destinationCmd.Flags().BoolVar(&fixFlag, "fix", false, "create the destination when it is missing")

	integrityCmd.AddCommand(destinationCmd)
	integrityCmd.AddCommand(manifestCmd)
	RootCmd.AddCommand(integrityCmd)
}

func withIntegrity(cmd *cobra.Command, fn func(ctx context.Context, svc *integrity.Service, log *zap.Logger) error) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	dest, err := albumsync.NewDestination(a.cfg)
	if err != nil {
		return err
	}

	var store *manifest.Store
	if a.cfg.Manifest.Enabled {
		store, err = manifest.Open(cmd.Context(), a.cfg.Manifest)
		if err != nil {
			a.log.Warn("Manifest checks skipped, failed to open database", zap.Error(err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	svc := integrity.NewService(dest, store, a.cfg.AlbumID, a.log)
	return fn(cmd.Context(), svc, a.log)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
