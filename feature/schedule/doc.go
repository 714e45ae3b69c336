// Package schedule installs the program as an unattended startup task.
//
// The contract is small: run the executable with --background at system
// startup, and additionally every background_interval_minutes when set. Each
// OS facility has a Registrar:
//
//   - windows: schtasks /Create ... /SC ONSTART /RL HIGHEST /F (requires
//     elevation), plus a second /SC MINUTE task for the interval
//   - darwin: a launchd agent in ~/Library/LaunchAgents with RunAtLoad and StartInterval
//   - linux and other unix: an @reboot line in the user crontab, plus an interval line
//
// All tools are invoked through a CommandRunner so registrars can be tested
// without touching the host.
package schedule
