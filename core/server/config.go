package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Enabled toggles the API server; the sync command runs without it.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty
	// disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
}
