// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this
// package defines the configuration structures for server settings, such as
// the listener port and the configured API credentials.
//
// # Configuration
//
// The Config struct defines the HTTP port, the base API key, the elevated
// (paid plan) API keys, and the shared secret for CSV uploads.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the auth and rate-limit middleware to validate and classify
// credentials.
package server
