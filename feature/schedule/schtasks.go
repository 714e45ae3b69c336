package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Schtasks registers jobs with the Windows Task Scheduler.
type Schtasks struct {
	runner CommandRunner
	user   string
}

// NewSchtasks creates a Task Scheduler registrar. user is passed as /RU when set.
func NewSchtasks(runner CommandRunner, user string) *Schtasks {
	return &Schtasks{runner: runner, user: user}
}

func (s *Schtasks) Name() string {
	return "Windows Task Scheduler"
}

func (s *Schtasks) RequiresElevation() bool {
	return true
}

// MaxTaskIntervalMinutes is the largest /MO accepted for a MINUTE schedule.
const MaxTaskIntervalMinutes = 1439

// IntervalTaskName is the task that repeats a job while the machine is up.
func IntervalTaskName(job Job) string {
	return job.Name + "Interval"
}

// Register creates or replaces the startup task. A job with an interval gets a
// second, repeating task; without one a previous repeating task is removed.
// The executable is started through PowerShell with a hidden window.
func (s *Schtasks) Register(ctx context.Context, job Job) error {
	if job.IntervalMinutes > MaxTaskIntervalMinutes {
		return fmt.Errorf("interval of %d minutes exceeds the Task Scheduler limit of %d", job.IntervalMinutes, MaxTaskIntervalMinutes)
	}

	if _, err := s.runner.Run(ctx, s.command(job, job.Name, "/SC", "ONSTART")); err != nil {
		return err
	}

	if job.IntervalMinutes <= 0 {
		// Not found is expected
		_, _ = s.runner.Run(ctx, Command{Name: "schtasks", Args: []string{"/Delete", "/TN", IntervalTaskName(job), "/F"}})
		return nil
	}
	_, err := s.runner.Run(ctx, s.command(job, IntervalTaskName(job), "/SC", "MINUTE", "/MO", strconv.Itoa(job.IntervalMinutes)))
	return err
}

func (s *Schtasks) command(job Job, name string, trigger ...string) Command {
	args := []string{
		"/Create",
		"/TN", name,
		"/TR", taskRun(job),
	}
	args = append(args, trigger...)
	args = append(args, "/RL", "HIGHEST", "/F")
	if s.user != "" {
		args = append(args, "/RU", s.user)
	}
	return Command{Name: "schtasks", Args: args}
}

func taskRun(job Job) string {
	quoted := make([]string, len(job.Args))
	for i, a := range job.Args {
		quoted[i] = psQuote(a)
	}
	return fmt.Sprintf("powershell -Command Start-Process -WindowStyle Hidden -FilePath %s -ArgumentList %s",
		psQuote(job.Command), strings.Join(quoted, ","))
}

// psQuote wraps s in single quotes, doubling embedded ones.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
