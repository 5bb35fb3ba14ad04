package config_test

import (
	"testing"

	"inventory-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000/api", cfg.Registry.URL)
	assert.Equal(t, 10, cfg.Sync.Concurrency)
	assert.Equal(t, "https://graph.microsoft.com/v1.0", cfg.Sources.Intune.URL)
	assert.Equal(t, "Main Office", cfg.Sources.Fortigate.Site)
	assert.Equal(t, 90, cfg.Storage.RetainRuns)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("REGISTRY_URL", "https://netbox.internal/api")
	t.Setenv("REGISTRY_TOKEN", "abc123")
	t.Setenv("SYNC_CONCURRENCY", "4")
	t.Setenv("SOURCES_INTUNE_TENANT_ID", "contoso")
	t.Setenv("SOURCES_NAGIOS_ENABLED", "false")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://netbox.internal/api", cfg.Registry.URL)
	assert.Equal(t, "abc123", cfg.Registry.Token)
	assert.Equal(t, 4, cfg.Sync.Concurrency)
	assert.Equal(t, "contoso", cfg.Sources.Intune.TenantID)
	assert.False(t, cfg.Sources.Nagios.Enabled)
}
