package server

import "time"

// Config holds configuration for the status HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
}

// DefaultSyncInterval is used when interval_minutes is not configured.
const DefaultSyncInterval = time.Hour

// SyncInterval converts the configured interval in minutes into a duration,
// falling back to DefaultSyncInterval for zero or negative values.
func SyncInterval(minutes int) time.Duration {
	if minutes <= 0 {
		return DefaultSyncInterval
	}
	return time.Duration(minutes) * time.Minute
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + c.Port
}
