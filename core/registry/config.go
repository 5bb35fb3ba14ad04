package registry

// Config holds configuration for the registry API client.
type Config struct {
	// URL is the base API URL of the registry, e.g. "https://netbox.local/api".
	URL string `mapstructure:"url" default:"http://localhost:8000/api"`
	// Token is the static API token attached to every request.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
