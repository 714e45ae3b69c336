package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"immich-album-sync/core/logger"
	"immich-album-sync/core/menu"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFlag     string
	logFileFlag    string
	backgroundFlag bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "immich-album-sync",
	Short: "Mirror an Immich album into a local folder",
	Long: `Immich Album Sync keeps a local folder identical to one Immich album.
Without arguments it shows a menu to install the startup task or sync now.
With --background it runs one sync and exits, as the startup task does.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if backgroundFlag {
			return runSync(cmd, false)
		}
		return runMenu(cmd)
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console-only logger; the file logger is gone by now
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config.json (default: next to the executable)")
	RootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "path to the log file (default: Documents/"+LogFileName+")")
	RootCmd.Flags().BoolVar(&backgroundFlag, "background", false, "run one sync without the menu and exit")
}

func runMenu(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	choice, err := menu.Run("Immich Album Sync", cmd.InOrStdin(), out)
	if err != nil {
		return fmt.Errorf("menu failed: %w", err)
	}

	switch choice {
	case menu.ChoiceInstall:
		err = runInstall(cmd)
	case menu.ChoiceSync:
		err = runSync(cmd, false)
	default:
		fmt.Fprintln(out, "Bye.")
		return nil
	}

	if err != nil {
		fmt.Fprintf(out, "\nError: %v\n", err)
	}
	waitForEnter(cmd.InOrStdin(), out)
	return nil
}

// waitForEnter keeps a double-clicked console window open until the user reads the result.
func waitForEnter(in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "\nPress Enter to continue...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}
