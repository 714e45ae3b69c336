package schedule

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNotElevated is returned when registration needs administrative rights the process lacks.
var ErrNotElevated = errors.New("administrator privileges are required to install the startup task; run the program as administrator")

// Installer registers the startup job after checking privileges.
type Installer struct {
	registrar Registrar
	elevation ElevationChecker
	logger    *zap.Logger
}

// NewInstaller creates an installer. elevation may be nil when the registrar needs no elevation.
func NewInstaller(registrar Registrar, elevation ElevationChecker, logger *zap.Logger) *Installer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Installer{registrar: registrar, elevation: elevation, logger: logger}
}

// Install registers job. When elevation is required and the check says the
// process is not elevated it fails with ErrNotElevated; when the check itself
// fails it logs a warning and attempts the registration anyway.
func (i *Installer) Install(ctx context.Context, job Job) error {
	log := i.logger.With(zap.String("facility", i.registrar.Name()), zap.String("task", job.Name))

	if i.registrar.RequiresElevation() && i.elevation != nil {
		elevated, err := i.elevation.IsElevated(ctx)
		switch {
		case err != nil:
			log.Warn("Could not determine whether the program runs as administrator, trying anyway", zap.Error(err))
		case !elevated:
			return ErrNotElevated
		default:
			log.Info("Running with administrator privileges")
		}
	}

	log.Info("Registering startup task",
		zap.String("command", job.Command),
		zap.Strings("args", job.Args),
		zap.Int("interval_minutes", job.IntervalMinutes),
	)
	if err := i.registrar.Register(ctx, job); err != nil {
		return fmt.Errorf("failed to register startup task with %s: %w", i.registrar.Name(), err)
	}

	log.Info("Startup task registered")
	return nil
}
