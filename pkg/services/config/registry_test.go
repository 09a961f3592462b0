package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "controlatlascfg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGetProfiles(t *testing.T) {
	path := writeConfig(t, `
[ibmi-prod]
platform = ibmi
host = pub400.example.com
user = qauditor

[unix-dc1]
platform = unix
host = audit.dc1.example.com
user = root
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	profiles, err := registry.GetProfiles(context.Background())
	require.NoError(t, err)

	require.Len(t, profiles, 2)
	assert.Equal(t, "ibmi-prod", profiles[0].Name)
	assert.Equal(t, domain.PlatformIBMi, profiles[0].Platform)
	assert.Equal(t, "unix:unix-dc1", profiles[1].String())
}

func TestGetConfig(t *testing.T) {
	path := writeConfig(t, `
[snowflake-main]
platform = snowflake
dsn = user:pass@account/SNOWFLAKE/ACCOUNT_USAGE
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	cfg, err := registry.GetConfig(context.Background(), "snowflake-main")
	require.NoError(t, err)

	assert.Equal(t, domain.PlatformSnowflake, cfg.Platform)
	assert.Equal(t, "user:pass@account/SNOWFLAKE/ACCOUNT_USAGE", cfg.DSN)
}

func TestGetConfig_UnknownProfile(t *testing.T) {
	path := writeConfig(t, `
[jde-prod]
platform = jde
host = jde.example.com
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	_, err = registry.GetConfig(context.Background(), "missing")
	assert.Error(t, err)
}

func TestGetProfiles_RejectsUnknownPlatform(t *testing.T) {
	path := writeConfig(t, `
[mystery]
platform = vax
host = vax.example.com
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	_, err = registry.GetProfiles(context.Background())
	assert.Error(t, err)
}
