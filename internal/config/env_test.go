package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears a variable for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	unsetEnv(t, EnvAddr)
	unsetEnv(t, EnvTables)
	unsetEnv(t, EnvOrigins)

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err, "a missing env file is not an error")

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Empty(t, cfg.TablesPath)
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:5173")
}

func TestLoadServerConfig_FromFile(t *testing.T) {
	unsetEnv(t, EnvAddr)
	unsetEnv(t, EnvTables)
	unsetEnv(t, EnvOrigins)

	path := writeFile(t, ".env", "VCPGO_TABLES=/etc/vcpgo/tables-2026.yaml\nVCPGO_ALLOWED_ORIGINS=https://a.example, ,https://b.example\n")

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, "/etc/vcpgo/tables-2026.yaml", cfg.TablesPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadServerConfig_EnvironmentWins(t *testing.T) {
	t.Setenv(EnvAddr, "127.0.0.1:9090")
	t.Setenv(EnvTables, "/srv/tables.yaml")
	unsetEnv(t, EnvOrigins)

	path := writeFile(t, ".env", "VCPGO_ADDR=:7000\nVCPGO_TABLES=/tmp/other.yaml\n")

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
	assert.Equal(t, "/srv/tables.yaml", cfg.TablesPath)
}
