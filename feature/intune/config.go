package intune

// Config holds configuration for the endpoint-management source.
type Config struct {
	// Enabled toggles this source for the run.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// URL is the Graph API base URL.
	URL string `mapstructure:"url" default:"https://graph.microsoft.com/v1.0"`
	// LoginURL is the identity platform base URL used for token requests.
	LoginURL string `mapstructure:"login_url" default:"https://login.microsoftonline.com"`
	// TenantID is the directory tenant to authenticate against.
	TenantID string `mapstructure:"tenant_id" default:""`
	// ClientID is the application (client) identifier.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the client credential.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// Site is the registry site devices from this source are assigned to.
	Site string `mapstructure:"site" default:"Main Office"`
	// Role is the registry role devices from this source are assigned to.
	Role string `mapstructure:"role" default:"Endpoint"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// StaleAfterDays marks a device offline when its last sync is older.
	StaleAfterDays int `mapstructure:"stale_after_days" default:"7"`
}
