package config

import (
	"reflect"
	"strings"

	"inventory-sync/core/database"
	"inventory-sync/core/logger"
	"inventory-sync/core/pipeline"
	"inventory-sync/core/registry"
	"inventory-sync/core/server"
	"inventory-sync/core/storage"
	"inventory-sync/feature/fortigate"
	"inventory-sync/feature/intune"
	"inventory-sync/feature/nagios"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Sources groups the per-system collector configurations.
type Sources struct {
	// Intune holds configuration for the endpoint management source.
	Intune intune.Config `mapstructure:"intune"`
	// Fortigate holds configuration for the network fabric source.
	Fortigate fortigate.Config `mapstructure:"fortigate"`
	// Nagios holds configuration for the monitoring source.
	Nagios nagios.Config `mapstructure:"nagios"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP API server.
	Server server.Config `mapstructure:"server"`
	// Registry holds configuration for the device registry API.
	Registry registry.Config `mapstructure:"registry"`
	// Sync holds configuration for the synchronization pipeline.
	Sync pipeline.Config `mapstructure:"sync"`
	// Sources holds configuration for the inventory sources.
	Sources Sources `mapstructure:"sources"`
	// Storage holds configuration for snapshot object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for run-history persistence.
	Database database.Config `mapstructure:"database"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists; absence is fine in production.
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. REGISTRY_URL -> registry.url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
