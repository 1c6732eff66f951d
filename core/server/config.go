package server

import "time"

// Config holds configuration for the HTTP reporting server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// DirectoryCacheSeconds is how long a built client directory index is reused by
	// the resolve endpoint. Zero rebuilds it on every request.
	DirectoryCacheSeconds int `mapstructure:"directory_cache_seconds" default:"300"`
}

// DirectoryCacheTTL returns the directory cache lifetime as a duration.
func (c Config) DirectoryCacheTTL() time.Duration {
	if c.DirectoryCacheSeconds <= 0 {
		return 0
	}
	return time.Duration(c.DirectoryCacheSeconds) * time.Second
}
