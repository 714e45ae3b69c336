package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Cron registers jobs in the current user's crontab.
type Cron struct {
	runner CommandRunner
}

// NewCron creates a crontab registrar.
func NewCron(runner CommandRunner) *Cron {
	return &Cron{runner: runner}
}

func (c *Cron) Name() string {
	return "crontab"
}

func (c *Cron) RequiresElevation() bool {
	return false
}

// Register replaces any line tagged with the job name and installs an
// @reboot line, plus a repeating line when the job has an interval.
func (c *Cron) Register(ctx context.Context, job Job) error {
	if _, err := cronInterval(job.IntervalMinutes); err != nil {
		return err
	}

	current, err := c.runner.Run(ctx, Command{Name: "crontab", Args: []string{"-l"}})
	if err != nil {
		// An empty crontab makes "crontab -l" fail
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) || !strings.Contains(strings.ToLower(cmdErr.Stderr), "no crontab") {
			return err
		}
		current = nil
	}

	updated, err := cronTable(string(current), job)
	if err != nil {
		return err
	}
	_, err = c.runner.Run(ctx, Command{Name: "crontab", Args: []string{"-"}, Stdin: []byte(updated)})
	return err
}

func cronTable(current string, job Job) (string, error) {
	tag := "# " + job.Name

	var lines []string
	for _, line := range strings.Split(current, "\n") {
		if strings.HasSuffix(strings.TrimSpace(line), tag) {
			continue
		}
		lines = append(lines, line)
	}
	// Drop trailing blank lines before appending
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	command := cronCommand(job)
	lines = append(lines, "@reboot "+command+" "+tag)

	interval, err := cronInterval(job.IntervalMinutes)
	if err != nil {
		return "", err
	}
	if interval != "" {
		lines = append(lines, interval+" "+command+" "+tag)
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// cronInterval returns the schedule that repeats every minutes, or "" for none.
// Only intervals that divide an hour or a day evenly can be expressed.
func cronInterval(minutes int) (string, error) {
	switch {
	case minutes <= 0:
		return "", nil
	case minutes < 60:
		return fmt.Sprintf("*/%d * * * *", minutes), nil
	case minutes == 24*60:
		return "0 0 * * *", nil
	case minutes%60 == 0 && minutes < 24*60:
		return fmt.Sprintf("0 */%d * * *", minutes/60), nil
	default:
		return "", fmt.Errorf("an interval of %d minutes cannot be expressed in cron; use 1-59 minutes or whole hours up to 24", minutes)
	}
}

func cronCommand(job Job) string {
	parts := []string{shQuote(job.Command)}
	for _, a := range job.Args {
		parts = append(parts, shQuote(a))
	}
	return strings.Join(parts, " ")
}

// shQuote single-quotes s for sh when it contains anything but safe characters.
func shQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./=:@", r))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
