package fortigate

// Config holds configuration for the network-fabric source.
type Config struct {
	// Enabled toggles this source for the run.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// URL is the controller's API base URL.
	URL string `mapstructure:"url" default:""`
	// Token is the static bearer credential.
	Token string `mapstructure:"token" default:""`
	// CACertFile optionally points at a PEM root certificate to trust.
	CACertFile string `mapstructure:"ca_cert_file" default:""`
	// InsecureSkipVerify disables certificate verification. Lab use only.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
	// Site is the registry site devices from this source are assigned to.
	Site string `mapstructure:"site" default:"Main Office"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
