package schedule

import (
	"context"
	"strings"
)

const (
	administratorsSID = "S-1-5-32-544"
	enabledGroup      = "Enabled group"
	highMandatorySID  = "S-1-16-12288"
)

// ElevationChecker reports whether the process runs with administrative rights.
type ElevationChecker interface {
	IsElevated(ctx context.Context) (bool, error)
}

// WhoamiChecker inspects "whoami /groups" on Windows.
type WhoamiChecker struct {
	runner CommandRunner
}

// NewWhoamiChecker creates a checker using runner.
func NewWhoamiChecker(runner CommandRunner) *WhoamiChecker {
	return &WhoamiChecker{runner: runner}
}

func (w *WhoamiChecker) IsElevated(ctx context.Context) (bool, error) {
	out, err := w.runner.Run(ctx, Command{Name: "whoami", Args: []string{"/groups"}})
	if err != nil {
		return false, err
	}
	return ParseWhoamiGroups(string(out)), nil
}

// ParseWhoamiGroups reports elevation from whoami /groups output: membership
// of an enabled Administrators group, or a high mandatory integrity level.
func ParseWhoamiGroups(out string) bool {
	return strings.Contains(out, administratorsSID) && strings.Contains(out, enabledGroup) ||
		strings.Contains(out, highMandatorySID)
}
