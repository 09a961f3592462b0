package databricks

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/databricks/databricks-sdk-go"
	"github.com/databricks/databricks-sdk-go/service/iam"
	"github.com/databricks/databricks-sdk-go/service/settings"
	_ "github.com/databricks/databricks-sql-go"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/platforms"
	storesql "github.com/grc-tools/control-atlas/pkg/store/sql"
	"github.com/rs/zerolog"
)

var auditQueries = []storesql.MetricQuery{
	{
		Key: "failed_login_count_7d",
		Query: `SELECT COUNT(*) FROM system.access.audit
			WHERE action_name = 'login'
			  AND response.status_code = 401
			  AND event_time > date_sub(current_timestamp(), 7)`,
	},
}

// Collector reads live workspace metadata through the Databricks SDK
// and flattens it into the snapshot keys the databricks catalog
// checks. When the profile carries a SQL warehouse DSN, login
// evidence from the system tables is added to the snapshot.
type Collector struct {
	profile  string
	client   *databricks.WorkspaceClient
	analyzer storesql.SecurityAnalyzer // nil without a DSN
}

func Factory(_ context.Context, profile string, cfg *domain.PlatformConfig) (platforms.Collector, error) {
	client, err := databricks.NewWorkspaceClient(&databricks.Config{
		Host:  cfg.Host,
		Token: cfg.Token,
	})
	if err != nil {
		return nil, fmt.Errorf("create workspace client: %w", err)
	}

	collector := &Collector{profile: profile, client: client}
	if cfg.DSN != "" {
		db, err := sql.Open("databricks", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sql warehouse connection: %w", err)
		}
		analyzer, err := storesql.NewSecurityAnalyzer(db, auditQueries)
		if err != nil {
			return nil, err
		}
		collector.analyzer = analyzer
	}

	return collector, nil
}

func (c *Collector) Platform() domain.Platform {
	return domain.PlatformDatabricks
}

func (c *Collector) Snapshot(ctx context.Context) (domain.PlatformSnapshot, error) {
	logger := zerolog.Ctx(ctx)
	config := map[string]any{}

	admins, err := c.countWorkspaceAdmins(ctx)
	if err != nil {
		return domain.PlatformSnapshot{}, fmt.Errorf("count workspace admins: %w", err)
	}
	config["workspace_admin_count"] = admins

	conf, err := c.client.WorkspaceConf.GetStatus(ctx, settings.GetStatusRequest{
		Keys: "maxTokenLifetimeDays,enableDeprecatedGlobalInitScripts",
	})
	if err != nil {
		return domain.PlatformSnapshot{}, fmt.Errorf("read workspace conf: %w", err)
	}
	if conf != nil {
		if raw, ok := (*conf)["maxTokenLifetimeDays"]; ok {
			if days, err := strconv.ParseFloat(raw, 64); err == nil && days > 0 {
				config["token_max_lifetime_days"] = days
			}
		}
		if raw, ok := (*conf)["enableDeprecatedGlobalInitScripts"]; ok {
			config["legacy_init_scripts_enabled"] = raw == "true"
		}
	}

	// A workspace without a metastore assignment errors here; that is
	// a finding, not a collection failure.
	if _, err := c.client.Metastores.Current(ctx); err != nil {
		logger.Debug().Err(err).Msg("no metastore assignment")
		config["unity_catalog_enabled"] = false
	} else {
		config["unity_catalog_enabled"] = true
	}

	if c.analyzer != nil {
		metrics, err := c.analyzer.CollectMetrics(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("system table evidence unavailable")
		} else {
			for key, value := range metrics {
				config[key] = value
			}
		}
	}

	return domain.PlatformSnapshot{
		Platform:   domain.PlatformDatabricks,
		Profile:    c.profile,
		Config:     config,
		CapturedAt: time.Now().UTC(),
	}, nil
}

func (c *Collector) countWorkspaceAdmins(ctx context.Context) (float64, error) {
	groups, err := c.client.Groups.ListAll(ctx, iam.ListGroupsRequest{
		Filter: `displayName eq "admins"`,
	})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, group := range groups {
		count += len(group.Members)
	}
	return float64(count), nil
}
