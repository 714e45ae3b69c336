// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for the console and, for sync runs,
// a second append-only text sink so that unattended runs leave a readable trail.
//
// # Log File
//
// NewWithFile tees every entry into a log file using the console encoder with
// ISO8601 timestamps and no colour codes. The file is opened in append mode and
// is never truncated.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context (set by the rayid middleware)
// and WithRunID tags entries with the identifier of a sync run.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (default) or json
//   - File: log file location (optional)
//
// # Usage
//
//	log, closeLog, err := logger.NewWithFile(&logger.Config{Level: "info", Format: "console"}, path)
//	defer closeLog()
//	log.Info("Sync started")
package logger
