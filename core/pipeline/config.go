package pipeline

// Config holds configuration for the sync pipeline.
type Config struct {
	// Concurrency bounds the number of devices pushed to the registry
	// simultaneously. This is the run's only backpressure mechanism.
	Concurrency int `mapstructure:"concurrency" default:"10"`
	// SkipLookup disables the resolver's race-fallback lookup after a
	// failed create. Cheaper, but only safe when this process is the
	// registry's sole writer.
	SkipLookup bool `mapstructure:"skip_lookup" default:"false"`
}
