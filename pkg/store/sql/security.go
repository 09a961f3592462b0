package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// MetricQuery maps one snapshot config key to a query that must
// return a single numeric value.
type MetricQuery struct {
	Key   string
	Query string
}

// SecurityAnalyzer collects snapshot metrics from a SQL-speaking
// audit source (Snowflake ACCOUNT_USAGE, Databricks system tables).
type SecurityAnalyzer interface {
	CollectMetrics(ctx context.Context) (map[string]any, error)
}

type analyzer struct {
	db      *sql.DB
	queries []MetricQuery
}

func NewSecurityAnalyzer(db *sql.DB, queries []MetricQuery) (SecurityAnalyzer, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &analyzer{db: db, queries: queries}, nil
}

func (a *analyzer) CollectMetrics(ctx context.Context) (map[string]any, error) {
	logger := zerolog.Ctx(ctx)

	metrics := make(map[string]any, len(a.queries))
	for _, metric := range a.queries {
		var value float64
		if err := a.db.QueryRowContext(ctx, metric.Query).Scan(&value); err != nil {
			return nil, fmt.Errorf("%s query failed: %w", metric.Key, err)
		}
		logger.Debug().Str("metric", metric.Key).Float64("value", value).Msg("collected metric")
		metrics[metric.Key] = value
	}
	return metrics, nil
}
