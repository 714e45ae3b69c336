package schedule

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// Launchd registers jobs as launchd user agents on macOS.
type Launchd struct {
	runner CommandRunner
	fs     afero.Fs
	dir    string
}

// NewLaunchd creates a launchd registrar writing plists into dir
// (~/Library/LaunchAgents when empty). A nil fs uses the OS filesystem.
func NewLaunchd(runner CommandRunner, fs afero.Fs, dir string) (*Launchd, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if dir == "" {
		expanded, err := homedir.Expand("~/Library/LaunchAgents")
		if err != nil {
			return nil, fmt.Errorf("failed to locate LaunchAgents: %w", err)
		}
		dir = expanded
	}
	return &Launchd{runner: runner, fs: fs, dir: dir}, nil
}

func (l *Launchd) Name() string {
	return "launchd"
}

func (l *Launchd) RequiresElevation() bool {
	return false
}

// Label is the launchd label of a job.
func Label(job Job) string {
	return "local." + strings.ToLower(job.Name)
}

// PlistPath returns where the agent definition for job is written.
func (l *Launchd) PlistPath(job Job) string {
	return filepath.Join(l.dir, Label(job)+".plist")
}

// Register writes the agent plist and loads it. A previously loaded agent is unloaded first.
func (l *Launchd) Register(ctx context.Context, job Job) error {
	if err := l.fs.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", l.dir, err)
	}

	path := l.PlistPath(job)
	if err := afero.WriteFile(l.fs, path, plist(job), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	// Not loaded yet is fine
	_, _ = l.runner.Run(ctx, Command{Name: "launchctl", Args: []string{"unload", path}})

	_, err := l.runner.Run(ctx, Command{Name: "launchctl", Args: []string{"load", "-w", path}})
	return err
}

func plist(job Job) []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString(`<plist version="1.0">` + "\n<dict>\n")

	b.WriteString("\t<key>Label</key>\n")
	fmt.Fprintf(&b, "\t<string>%s</string>\n", escape(Label(job)))

	b.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n")
	fmt.Fprintf(&b, "\t\t<string>%s</string>\n", escape(job.Command))
	for _, a := range job.Args {
		fmt.Fprintf(&b, "\t\t<string>%s</string>\n", escape(a))
	}
	b.WriteString("\t</array>\n")

	b.WriteString("\t<key>RunAtLoad</key>\n\t<true/>\n")
	if job.IntervalMinutes > 0 {
		b.WriteString("\t<key>StartInterval</key>\n")
		fmt.Fprintf(&b, "\t<integer>%d</integer>\n", job.IntervalMinutes*60)
	}

	b.WriteString("</dict>\n</plist>\n")
	return b.Bytes()
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
