package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"immich-album-sync/core/config"
	"immich-album-sync/core/logger"
	"immich-album-sync/feature/schedule"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// installCmd registers the startup task.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register a startup task that syncs in the background",
	Long: `Registers the program with the OS scheduler so it runs with --background
at every system start (Task Scheduler on Windows, launchd on macOS, cron elsewhere).
On Windows this requires administrator privileges.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd)
	},
}

func init() {
	RootCmd.AddCommand(installCmd)
}

// runInstall does not need a valid configuration; it only reads the repeat interval from it.
func runInstall(cmd *cobra.Command) error {
	configPath, err := resolveConfigPath(configFlag)
	if err != nil {
		return err
	}

	logCfg := &bootstrapLog
	configured := ""
	interval := 0
	cfg, cfgErr := config.LoadConfig(configPath)
	if cfgErr == nil {
		logCfg = &cfg.Log
		configured = cfg.Log.File
		interval = cfg.BackgroundIntervalMinutes
	}

	log, closeLog, err := logger.NewWithFile(logCfg, resolveLogPath(logFileFlag, configured))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer closeLog()

	if cfgErr != nil {
		log.Warn("Configuration not readable, installing a startup-only task", zap.Error(cfgErr))
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	forwarded := ""
	if configFlag != "" {
		if forwarded, err = filepath.Abs(configPath); err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	runner := schedule.ExecRunner{}
	registrar, err := schedule.Default(runner, schedule.Options{User: os.Getenv("USERNAME")})
	if err != nil {
		return err
	}

	job := schedule.NewJob(exe, forwarded, interval)
	installer := schedule.NewInstaller(registrar, schedule.NewWhoamiChecker(runner), log)
	if err := installer.Install(cmd.Context(), job); err != nil {
		var cmdErr *schedule.CommandError
		if errors.As(err, &cmdErr) {
			log.Error("Startup task registration failed",
				zap.Int("exit_code", cmdErr.ExitCode),
				zap.String("stdout", cmdErr.Stdout),
				zap.String("stderr", cmdErr.Stderr))
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Startup task %q installed with %s.\n", job.Name, registrar.Name())
	fmt.Fprintln(out, "It runs in the background at every system start.")
	return nil
}
