package schedule

import (
	"context"
	"fmt"
	"runtime"
)

const (
	// TaskName names the registered task on every platform.
	TaskName = "ImmichAlbumSync"
	// BackgroundFlag makes the executable run one sync and exit.
	BackgroundFlag = "--background"
)

// Job describes what to register.
type Job struct {
	// Name identifies the task so re-registering replaces it.
	Name string
	// Command is the absolute path of the executable.
	Command string
	// Args always contain BackgroundFlag.
	Args []string
	// IntervalMinutes adds a repeating trigger next to the startup one. Zero runs it at startup only.
	IntervalMinutes int
}

// NewJob creates the startup job for exe. configPath is forwarded when not empty.
func NewJob(exe, configPath string, intervalMinutes int) Job {
	args := []string{BackgroundFlag}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	return Job{
		Name:            TaskName,
		Command:         exe,
		Args:            args,
		IntervalMinutes: intervalMinutes,
	}
}

// Registrar registers a job with one OS scheduling facility.
type Registrar interface {
	Name() string
	RequiresElevation() bool
	Register(ctx context.Context, job Job) error
}

// Options tune the registrar chosen by ForOS.
type Options struct {
	// User runs the Windows task under this account. Empty uses the default context.
	User string
	// LaunchAgentsDir overrides ~/Library/LaunchAgents.
	LaunchAgentsDir string
}

// ForOS returns the registrar for goos.
func ForOS(goos string, runner CommandRunner, opts Options) (Registrar, error) {
	switch goos {
	case "windows":
		return NewSchtasks(runner, opts.User), nil
	case "darwin":
		l, err := NewLaunchd(runner, nil, opts.LaunchAgentsDir)
		if err != nil {
			return nil, err
		}
		return l, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix":
		return NewCron(runner), nil
	default:
		return nil, fmt.Errorf("no startup task support for %s", goos)
	}
}

// Default returns the registrar for the running OS.
func Default(runner CommandRunner, opts Options) (Registrar, error) {
	return ForOS(runtime.GOOS, runner, opts)
}
