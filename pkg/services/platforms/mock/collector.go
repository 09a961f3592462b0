package mock

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/platforms"
)

// Collector produces deterministic sample snapshots for the platforms
// we never connect to for real (IBM i, JDE, Unix). The same profile
// name always yields the same snapshot, so repeated scans and tests
// are stable.
type Collector struct {
	platform domain.Platform
	profile  string
}

func IBMiFactory(_ context.Context, profile string, _ *domain.PlatformConfig) (platforms.Collector, error) {
	return &Collector{platform: domain.PlatformIBMi, profile: profile}, nil
}

func JDEFactory(_ context.Context, profile string, _ *domain.PlatformConfig) (platforms.Collector, error) {
	return &Collector{platform: domain.PlatformJDE, profile: profile}, nil
}

func UnixFactory(_ context.Context, profile string, _ *domain.PlatformConfig) (platforms.Collector, error) {
	return &Collector{platform: domain.PlatformUnix, profile: profile}, nil
}

func (c *Collector) Platform() domain.Platform {
	return c.platform
}

func (c *Collector) Snapshot(_ context.Context) (domain.PlatformSnapshot, error) {
	rng := rand.New(rand.NewSource(seed(string(c.platform) + "/" + c.profile)))

	var config map[string]any
	switch c.platform {
	case domain.PlatformJDE:
		config = jdeConfig(rng)
	case domain.PlatformUnix:
		config = unixConfig(rng)
	default:
		config = ibmiConfig(rng)
	}

	return domain.PlatformSnapshot{
		Platform:   c.platform,
		Profile:    c.profile,
		Config:     config,
		CapturedAt: time.Now().UTC(),
	}, nil
}

func ibmiConfig(rng *rand.Rand) map[string]any {
	return map[string]any{
		"QSECURITY":            pick(rng, 30.0, 40.0, 40.0, 50.0),
		"QAUDCTL":              pickString(rng, "*AUDLVL", "*AUDLVL", "*NONE"),
		"QMAXSIGN":             pick(rng, 3.0, 5.0, 15.0),
		"QPWDMINLEN":           pick(rng, 6.0, 8.0, 10.0),
		"QPWDEXPITV":           pick(rng, 60.0, 90.0, 180.0),
		"QINACTITV":            pick(rng, 15.0, 30.0, 60.0),
		"QALWOBJRST":           pickString(rng, "*NONE", "*ALWPGMADP", "*ALL"),
		"audit_journal_active": rng.Float64() > 0.2,
		"default_password_count": pick(rng, 0.0, 0.0, 3.0, 12.0),
		"secofr_profile_count": pick(rng, 2.0, 4.0, 9.0),
		"audlvl_security":      rng.Float64() > 0.25,
		"audlvl_autfail":       rng.Float64() > 0.25,
		"production_journaling": rng.Float64() > 0.3,
	}
}

func jdeConfig(rng *rand.Rand) map[string]any {
	return map[string]any{
		"security_server_enabled": rng.Float64() > 0.15,
		"f00950_open_access_count": pick(rng, 0.0, 0.0, 2.0, 7.0),
		"sod_violation_count":      pick(rng, 0.0, 1.0, 5.0),
		"unified_logon_enabled":    rng.Float64() > 0.3,
		"data_privacy_enabled":     rng.Float64() > 0.4,
		"omw_logging_enabled":      rng.Float64() > 0.25,
		"shared_profile_count":     pick(rng, 0.0, 0.0, 4.0),
		"table_audit_enabled":      rng.Float64() > 0.35,
		"integrity_report_age_days": pick(rng, 2.0, 6.0, 21.0),
	}
}

func unixConfig(rng *rand.Rand) map[string]any {
	return map[string]any{
		"auditd_enabled":       rng.Float64() > 0.2,
		"ssh_root_login":       rng.Float64() < 0.3,
		"password_max_days":    pick(rng, 60.0, 90.0, 99999.0),
		"failed_login_count_7d": pick(rng, 4.0, 23.0, 117.0),
		"world_writable_count": pick(rng, 0.0, 0.0, 6.0),
		"sudo_nopasswd_count":  pick(rng, 0.0, 1.0, 3.0),
		"unowned_file_count":   pick(rng, 0.0, 0.0, 14.0),
		"selinux_mode":         pickString(rng, "enforcing", "enforcing", "permissive", "disabled"),
		"patch_age_days":       pick(rng, 7.0, 25.0, 112.0),
		"tmp_noexec":           rng.Float64() > 0.4,
	}
}

func pick(rng *rand.Rand, values ...float64) float64 {
	return values[rng.Intn(len(values))]
}

func pickString(rng *rand.Rand, values ...string) string {
	return values[rng.Intn(len(values))]
}

func seed(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64())
}
