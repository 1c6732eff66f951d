// Package config provides configuration management for license-sync.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (loaded with godotenv).
//
// # Configuration Structure
//
//   - Server: HTTP port and API key of the reporting API
//   - Database: MySQL (or SQLite) connection of the licensing table
//   - Storage: S3/MinIO credentials for the report archive
//   - Remote: remote reporting API endpoint, credentials, timeout and page bound
//   - Log: Logging level and format
//
// Every key maps to an upper-cased environment variable with dots replaced by
// underscores, e.g. remote.token is read from REMOTE_TOKEN.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Remote.BaseURL)
package config
