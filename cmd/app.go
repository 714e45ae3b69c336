package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"immich-album-sync/core/config"
	"immich-album-sync/core/database"
	"immich-album-sync/core/logger"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
)

const (
	// LogFileName is the log file written to the Documents folder.
	LogFileName = "ImmichAlbumSync.log"
	// ManifestFileName is the default sqlite manifest, stored next to the log file.
	ManifestFileName = "ImmichAlbumSync.db"
)

// bootstrapLog is used until the configuration has been read.
var bootstrapLog = logger.Config{Level: "info", Format: "console"}

// app holds what every command needs once startup succeeded.
type app struct {
	cfg        *config.Config
	log        *zap.Logger
	configPath string
	logPath    string
	close      func()
}

// setup loads the configuration and opens the console+file logger. A
// configuration failure is written to the log file before it is returned.
func setup() (*app, error) {
	configPath, err := resolveConfigPath(configFlag)
	if err != nil {
		return nil, err
	}

	cfg, cfgErr := config.LoadConfig(configPath)

	logCfg := &bootstrapLog
	configured := ""
	if cfgErr == nil {
		logCfg = &cfg.Log
		configured = cfg.Log.File
	}
	logPath := resolveLogPath(logFileFlag, configured)

	log, closeLog, err := logger.NewWithFile(logCfg, logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if cfgErr != nil {
		log.Error("CRITICAL: Failed to load configuration. Exiting.",
			zap.String("config", configPath),
			zap.Error(cfgErr))
		closeLog()
		return nil, cfgErr
	}

	if cfg.Manifest.Enabled && cfg.Manifest.Driver != database.DriverMySQL && cfg.Manifest.DSN == "" {
		cfg.Manifest.DSN = filepath.Join(filepath.Dir(logPath), ManifestFileName)
	}

	return &app{
		cfg:        cfg,
		log:        log,
		configPath: configPath,
		logPath:    logPath,
		close:      closeLog,
	}, nil
}

func resolveConfigPath(flag string) (string, error) {
	if flag != "" {
		return homedir.Expand(flag)
	}
	return config.DefaultPath()
}

// resolveLogPath picks the flag, then the configured file, then Documents,
// then the executable's directory.
func resolveLogPath(flag, configured string) string {
	for _, p := range []string{flag, configured} {
		if p == "" {
			continue
		}
		if expanded, err := homedir.Expand(p); err == nil {
			return expanded
		}
		return p
	}
	return defaultLogPath()
}

func defaultLogPath() string {
	if home, err := homedir.Dir(); err == nil {
		docs := filepath.Join(home, "Documents")
		if info, err := os.Stat(docs); err == nil && info.IsDir() {
			return filepath.Join(docs, LogFileName)
		}
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), LogFileName)
	}
	return LogFileName
}
