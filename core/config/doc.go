// Package config provides configuration management for refcheck.
//
// Values come from environment variables, optionally preloaded from a .env
// file, with defaults taken from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP server settings (port, API key, repair endpoint switch)
//   - Database: driver (mysql or sqlite) and connection details
//   - Storage: S3/MinIO credentials and bucket for the s3 content backend
//   - Log: logging level and format
//   - Content: content backend, root and exclude patterns
//   - Index: reference index profile and table override
//   - Refresh: external command rebuilding the reference index
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Content.Root)
package config
