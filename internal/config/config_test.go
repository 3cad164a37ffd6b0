package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seldt/wellspring/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "wellspring.db", cfg.DB.Path)
	require.Equal(t, "UTC", cfg.Time.Zone)
	require.True(t, cfg.Refresh.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WELLSPRING_SERVER_PORT", "9090")
	t.Setenv("WELLSPRING_TIME_ZONE", "Europe/Oslo")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "Europe/Oslo", cfg.Time.Zone)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("WELLSPRING_SERVER_PORT", "not-a-port")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  path: /tmp/custom.db\ntime:\n  zone: Asia/Tokyo\n"), 0o644))
	t.Setenv("WELLSPRING_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom.db", cfg.DB.Path)
	require.Equal(t, "Asia/Tokyo", cfg.Time.Zone)
}
