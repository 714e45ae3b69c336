package immich

// Config holds configuration for the Immich HTTP client.
type Config struct {
	// TimeoutSeconds bounds dialing and the TLS handshake.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ResponseHeaderTimeoutSeconds bounds the wait for response headers. Zero
	// waits as long as the server needs; bodies never have a deadline.
	ResponseHeaderTimeoutSeconds int `mapstructure:"response_header_timeout_seconds" default:"0"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"immich-album-sync"`
}
