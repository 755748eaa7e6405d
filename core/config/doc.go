// Package config provides configuration management for the service.
//
// It utilizes Viper for loading configuration from environment variables and
// a local .env file, with defaults filled from struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API keys, upload secret)
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials and bucket settings (CSV archive)
//   - Log: Logging level and format
//   - Sources: per-agency API credentials and base URLs
//   - RateLimit: tier limits and window for the request rate limiter
//
// All values are constructed once at startup and injected into adapters and
// the engine by reference; nothing in this package is mutated afterwards.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
