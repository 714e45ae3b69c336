// Package config provides configuration management for the album sync client.
//
// It utilizes Viper for loading the JSON config file (config.json next to the
// executable by default), a sibling .env file, and ALBUMSYNC_* environment variables.
//
// # Configuration Structure
//
// The top-level keys are the ones users write by hand:
//   - api_url: Immich server URL, normalized to end with /api
//   - api_key: sent as the x-api-key header
//   - album_id: the album to mirror
//   - local_folder: the destination directory
//   - interval_minutes, background_interval_minutes: scheduling hints
//
// Optional sections tune the ambient pieces: http, destination, storage,
// manifest, log and server.
//
// # Usage
//
//	cfg, err := config.LoadConfig("/opt/albumsync/config.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.APIURL)
package config
