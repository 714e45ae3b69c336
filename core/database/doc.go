// Package database handles the connection used by the download manifest.
//
// It provides a wrapper around GORM to configure either a local SQLite file
// (pure Go driver, the default) or a MySQL server, based on the manifest section
// of the configuration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Manifest)
//	if err != nil {
//	    return fmt.Errorf("manifest unavailable: %w", err)
//	}
package database
