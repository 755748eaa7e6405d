package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// ElevatedKeys is a comma-separated list of additional API keys that
	// belong to paid plans and receive the elevated rate-limit tier.
	ElevatedKeys string `mapstructure:"elevated_keys" default:""`
	// UploadSecret is the shared secret required by the CSV upload endpoint.
	UploadSecret string `mapstructure:"upload_secret" default:""`
}

// IsAuthorized reports whether the presented key is any configured credential.
func (c Config) IsAuthorized(key string) bool {
	if key == "" {
		return false
	}
	if key == c.ApiKey {
		return true
	}
	return c.IsElevated(key)
}

// IsElevated reports whether the presented key belongs to a paid plan.
func (c Config) IsElevated(key string) bool {
	if key == "" {
		return false
	}
	for _, k := range strings.Split(c.ElevatedKeys, ",") {
		if strings.TrimSpace(k) == key {
			return true
		}
	}
	return false
}
