package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"immich-album-sync/core/database"
	"immich-album-sync/core/immich"
	"immich-album-sync/core/logger"
	"immich-album-sync/core/server"
	"immich-album-sync/core/storage"
	"immich-album-sync/core/target"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// FileName is the configuration file looked up next to the executable.
	FileName = "config.json"
	// EnvPrefix prefixes environment overrides (e.g. ALBUMSYNC_API_KEY).
	EnvPrefix = "ALBUMSYNC"
	// APISuffix is the path every API URL must end with.
	APISuffix = "/api"
)

// Config holds all configuration for the application.
// The top-level keys mirror the config.json written by users; the nested
// sections are optional.
type Config struct {
	// APIURL is the Immich server URL, normalized to end with /api.
	APIURL string `mapstructure:"api_url" default:""`
	// APIKey is sent as the x-api-key header.
	APIKey string `mapstructure:"api_key" default:""`
	// AlbumID identifies the album to mirror.
	AlbumID string `mapstructure:"album_id" default:""`
	// LocalFolder is the destination directory (or bucket prefix fallback).
	LocalFolder string `mapstructure:"local_folder" default:""`
	// IntervalMinutes is the sync period used by the serve command.
	IntervalMinutes int `mapstructure:"interval_minutes" default:"0"`
	// BackgroundIntervalMinutes makes the installed startup task repeat.
	BackgroundIntervalMinutes int `mapstructure:"background_interval_minutes" default:"0"`

	// HTTP holds configuration for the Immich API client.
	HTTP immich.Config `mapstructure:"http"`
	// Destination selects where assets are mirrored to.
	Destination target.Config `mapstructure:"destination"`
	// Storage holds configuration for the object storage destination.
	Storage storage.Config `mapstructure:"storage"`
	// Manifest holds configuration for the optional download manifest.
	Manifest database.Config `mapstructure:"manifest"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the status server.
	Server server.Config `mapstructure:"server"`
}

// Error reports a configuration problem. Op is one of read, parse, validate.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DefaultPath returns config.json next to the running executable.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), FileName), nil
}

// LoadConfig loads configuration from the JSON file at path, a .env file next
// to it, and ALBUMSYNC_* environment variables.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist
	_ = godotenv.Overload(filepath.Join(filepath.Dir(path), ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. ALBUMSYNC_STORAGE_BUCKET -> storage.bucket)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return nil, &Error{Op: "parse", Path: path, Err: err}
		}
		return nil, &Error{Op: "read", Path: path, Err: err}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &Error{Op: "parse", Path: path, Err: err}
	}

	config.APIURL = NormalizeAPIURL(config.APIURL)

	if err := config.Validate(); err != nil {
		return nil, &Error{Op: "validate", Path: path, Err: err}
	}

	return &config, nil
}

// NormalizeAPIURL strips trailing slashes and appends /api when missing.
func NormalizeAPIURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return ""
	}
	if !strings.HasSuffix(u, APISuffix) {
		u += APISuffix
	}
	return u
}

// Validate checks that the required keys are present.
func (c *Config) Validate() error {
	var missing []string
	if c.APIURL == "" {
		missing = append(missing, "api_url")
	}
	if c.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if c.AlbumID == "" {
		missing = append(missing, "album_id")
	}
	if c.LocalFolder == "" && c.Destination.Type != target.TypeBucket {
		missing = append(missing, "local_folder")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required keys: %s", strings.Join(missing, ", "))
	}
	if !c.Destination.IsValid() {
		return fmt.Errorf("unknown destination type %q", c.Destination.Type)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
