package compliance

import (
	"testing"
	"time"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := ParseCatalog("test.yaml", []byte(`
platform: unix
controls:
  - id: T-001
    name: Root login disabled
    framework: sox
    severity: critical
    rule: config.ssh_root_login == false
    remediation: Set PermitRootLogin no.
  - id: T-002
    name: Password aging
    framework: sox
    severity: medium
    rule: config.password_max_days <= 90.0
    remediation: Set PASS_MAX_DAYS 90.
  - id: T-003
    name: Audit daemon
    framework: pci_dss
    severity: high
    rule: config.auditd_enabled == true
    remediation: Enable auditd.
`))
	require.NoError(t, err)
	return catalog
}

func unixSnapshot(config map[string]any) domain.PlatformSnapshot {
	return domain.PlatformSnapshot{
		Platform:   domain.PlatformUnix,
		Profile:    "unix-dc1",
		Config:     config,
		CapturedAt: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestEvaluate_PassAndFail(t *testing.T) {
	evaluator, err := NewEvaluator(testCatalog(t))
	require.NoError(t, err)

	report, err := evaluator.Evaluate(unixSnapshot(map[string]any{
		"ssh_root_login":    false,
		"password_max_days": 180.0,
		"auditd_enabled":    true,
	}), "")
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	statuses := map[string]domain.ControlStatus{}
	for _, result := range report.Results {
		statuses[result.Control.ID] = result.Status
	}
	assert.Equal(t, domain.ControlStatusPass, statuses["T-001"])
	assert.Equal(t, domain.ControlStatusFail, statuses["T-002"])
	assert.Equal(t, domain.ControlStatusPass, statuses["T-003"])

	assert.Equal(t, report.CapturedAt, report.Period.Start)
	assert.False(t, report.Period.End.Before(report.Period.Start))
}

func TestEvaluate_ScoreIsPassedOverTotal(t *testing.T) {
	evaluator, err := NewEvaluator(testCatalog(t))
	require.NoError(t, err)

	report, err := evaluator.Evaluate(unixSnapshot(map[string]any{
		"ssh_root_login":    false,
		"password_max_days": 180.0,
		"auditd_enabled":    true,
	}), domain.FrameworkSOX)
	require.NoError(t, err)

	require.Len(t, report.Scores, 1)
	score := report.Scores[0]
	assert.Equal(t, domain.FrameworkSOX, score.Framework)
	assert.Equal(t, 1, score.Passed)
	assert.Equal(t, 1, score.Failed)
	assert.InDelta(t, 50.0, score.Score, 0.001)
}

func TestEvaluate_MissingConfigKeyIsError(t *testing.T) {
	evaluator, err := NewEvaluator(testCatalog(t))
	require.NoError(t, err)

	report, err := evaluator.Evaluate(unixSnapshot(map[string]any{
		"ssh_root_login": false,
	}), "")
	require.NoError(t, err)

	statuses := map[string]domain.ControlStatus{}
	for _, result := range report.Results {
		statuses[result.Control.ID] = result.Status
	}
	assert.Equal(t, domain.ControlStatusPass, statuses["T-001"])
	assert.Equal(t, domain.ControlStatusError, statuses["T-002"])
	assert.Equal(t, domain.ControlStatusError, statuses["T-003"])

	// Errored controls still count toward the framework total.
	for _, score := range report.Scores {
		if score.Framework == domain.FrameworkSOX {
			assert.Equal(t, 2, score.Total())
			assert.InDelta(t, 50.0, score.Score, 0.001)
		}
	}
}

func TestEvaluate_FailCarriesRemediation(t *testing.T) {
	evaluator, err := NewEvaluator(testCatalog(t))
	require.NoError(t, err)

	report, err := evaluator.Evaluate(unixSnapshot(map[string]any{
		"ssh_root_login":    true,
		"password_max_days": 60.0,
		"auditd_enabled":    true,
	}), "")
	require.NoError(t, err)

	for _, result := range report.Results {
		if result.Control.ID == "T-001" {
			assert.Equal(t, domain.ControlStatusFail, result.Status)
			assert.Equal(t, "Set PermitRootLogin no.", result.Detail)
		}
	}
}

func TestEvaluate_UnauditablePlatform(t *testing.T) {
	evaluator, err := NewEvaluator(testCatalog(t))
	require.NoError(t, err)

	_, err = evaluator.Evaluate(domain.PlatformSnapshot{Platform: domain.PlatformAWS}, "")
	assert.Error(t, err)
}

func TestEvaluate_EmptyCatalogPlatform(t *testing.T) {
	evaluator, err := NewEvaluator(testCatalog(t))
	require.NoError(t, err)

	report, err := evaluator.Evaluate(domain.PlatformSnapshot{
		Platform: domain.PlatformIBMi,
		Profile:  "ibmi-prod",
		Config:   map[string]any{},
	}, "")
	require.NoError(t, err)

	assert.Empty(t, report.Results)
	assert.Empty(t, report.Scores)
}

func TestNewEvaluator_RejectsNonBoolRule(t *testing.T) {
	catalog, err := ParseCatalog("bad.yaml", []byte(`
platform: unix
controls:
  - id: B-001
    name: Bad rule
    framework: sox
    severity: low
    rule: config.password_max_days + 1.0
`))
	require.NoError(t, err)

	_, err = NewEvaluator(catalog)
	assert.Error(t, err)
}
