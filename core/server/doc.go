// Package server holds the status HTTP server configuration.
//
// The serve command runs the sync periodically and exposes its state over HTTP.
// This package defines the port and API key settings and converts the
// interval_minutes hint into a ticker period.
package server
