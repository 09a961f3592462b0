package mock

import (
	"context"
	"testing"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Deterministic(t *testing.T) {
	collector, err := UnixFactory(context.Background(), "unix-dc1", nil)
	require.NoError(t, err)

	first, err := collector.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := collector.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Config, second.Config)
	assert.Equal(t, domain.PlatformUnix, first.Platform)
	assert.Equal(t, "unix-dc1", first.Profile)
}

func TestSnapshot_VariesByProfile(t *testing.T) {
	a, err := IBMiFactory(context.Background(), "ibmi-prod", nil)
	require.NoError(t, err)
	b, err := IBMiFactory(context.Background(), "ibmi-dev", nil)
	require.NoError(t, err)

	snapA, err := a.Snapshot(context.Background())
	require.NoError(t, err)
	snapB, err := b.Snapshot(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, snapA.Config, snapB.Config)
}

func TestSnapshot_CoversCatalogKeys(t *testing.T) {
	collector, err := JDEFactory(context.Background(), "jde-prod", nil)
	require.NoError(t, err)

	snapshot, err := collector.Snapshot(context.Background())
	require.NoError(t, err)

	for _, key := range []string{
		"security_server_enabled",
		"f00950_open_access_count",
		"sod_violation_count",
		"integrity_report_age_days",
	} {
		assert.Contains(t, snapshot.Config, key)
	}
}
