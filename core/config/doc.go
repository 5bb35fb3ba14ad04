// Package config provides configuration management for the inventory sync service.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP API server settings (port, API key)
//   - Registry: device registry URL and token
//   - Sync: pipeline concurrency and resolution options
//   - Sources: per-system collector settings (intune, fortigate, nagios)
//   - Storage: S3/MinIO credentials for report snapshots
//   - Database: MySQL connection for run history
//   - Log: logging level and format
//
// Environment variables map to nested keys with underscores, so
// REGISTRY_URL sets registry.url and SOURCES_INTUNE_TENANT_ID sets
// sources.intune.tenant_id.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Registry.URL)
package config
