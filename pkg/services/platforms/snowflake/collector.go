package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/platforms"
	storesql "github.com/grc-tools/control-atlas/pkg/store/sql"
	_ "github.com/snowflakedb/gosnowflake"
)

// metricQueries read the ACCOUNT_USAGE share; latency there is up to
// a couple of hours, which is fine for compliance scanning.
var metricQueries = []storesql.MetricQuery{
	{
		Key: "failed_login_count_7d",
		Query: `SELECT COUNT(*) FROM snowflake.account_usage.login_history
			WHERE is_success = 'NO'
			  AND event_timestamp > dateadd(day, -7, current_timestamp())`,
	},
	{
		Key: "users_without_mfa",
		Query: `SELECT COUNT(*) FROM snowflake.account_usage.users
			WHERE deleted_on IS NULL
			  AND has_password = true
			  AND ext_authn_duo = false`,
	},
	{
		Key:   "network_policy_count",
		Query: `SELECT COUNT(*) FROM snowflake.account_usage.network_policies`,
	},
	{
		Key: "password_service_accounts",
		Query: `SELECT COUNT(*) FROM snowflake.account_usage.users
			WHERE deleted_on IS NULL
			  AND has_password = true
			  AND has_rsa_public_key = false
			  AND login_name ILIKE 'SVC%'`,
	},
}

type Collector struct {
	profile  string
	analyzer storesql.SecurityAnalyzer
	db       *sql.DB
}

func Factory(_ context.Context, profile string, cfg *domain.PlatformConfig) (platforms.Collector, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("profile %s: snowflake collector requires a dsn", profile)
	}

	db, err := sql.Open("snowflake", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open snowflake connection: %w", err)
	}

	analyzer, err := storesql.NewSecurityAnalyzer(db, metricQueries)
	if err != nil {
		return nil, err
	}

	return &Collector{profile: profile, analyzer: analyzer, db: db}, nil
}

func (c *Collector) Platform() domain.Platform {
	return domain.PlatformSnowflake
}

func (c *Collector) Snapshot(ctx context.Context) (domain.PlatformSnapshot, error) {
	metrics, err := c.analyzer.CollectMetrics(ctx)
	if err != nil {
		return domain.PlatformSnapshot{}, fmt.Errorf("collect snowflake metrics: %w", err)
	}

	config := map[string]any{}
	for key, value := range metrics {
		config[key] = value
	}
	if count, ok := config["network_policy_count"].(float64); ok {
		config["network_policy_enabled"] = count > 0
	}

	return domain.PlatformSnapshot{
		Platform:   domain.PlatformSnowflake,
		Profile:    c.profile,
		Config:     config,
		CapturedAt: time.Now().UTC(),
	}, nil
}

func (c *Collector) Close() error {
	return c.db.Close()
}
