package sync

import (
	"time"

	"immich-album-sync/core/config"
	"immich-album-sync/core/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunContext carries everything one sync run needs. It is built once per run
// after configuration has been loaded and passed down explicitly.
type RunContext struct {
	// ID identifies the run in log lines and reports.
	ID string
	// Config is the loaded configuration.
	Config *config.Config
	// Logger writes to the console and the log file, tagged with the run ID.
	Logger *zap.Logger
	// Started is when the run was requested.
	Started time.Time
	// DryRun plans without deleting or downloading.
	DryRun bool
}

// NewRunContext creates a run context with a fresh ID.
func NewRunContext(cfg *config.Config, log *zap.Logger) *RunContext {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()
	return &RunContext{
		ID:      id,
		Config:  cfg,
		Logger:  logger.WithRunID(log, id),
		Started: time.Now(),
	}
}
