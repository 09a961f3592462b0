package compliance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/grc-tools/control-atlas/pkg/models/store"
	"github.com/grc-tools/control-atlas/pkg/store/duckdb"
)

// Store persists platform snapshots and control results. The scan
// runner writes a snapshot and its results in one transaction passed
// through the context.
type Store interface {
	AddSnapshot(ctx context.Context, snapshot store.PlatformSnapshot) error
	GetLatestSnapshot(ctx context.Context, platform, profile string) (*store.PlatformSnapshot, error)
	AddResults(ctx context.Context, results []store.ControlResult) error
	GetLatestResults(ctx context.Context, platform, profile string) ([]store.ControlResult, error)
}

type complianceStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &complianceStore{db: db}, nil
}

func (s *complianceStore) AddSnapshot(ctx context.Context, snapshot store.PlatformSnapshot) error {
	config, err := json.Marshal(snapshot.Config)
	if err != nil {
		return fmt.Errorf("marshal snapshot config: %w", err)
	}

	query := `INSERT INTO platform_snapshots (platform, profile, config, captured_at) VALUES (?, ?, ?, ?)`
	args := []any{snapshot.Platform, snapshot.Profile, config, snapshot.CapturedAt}

	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = s.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (s *complianceStore) GetLatestSnapshot(ctx context.Context, platform, profile string) (*store.PlatformSnapshot, error) {
	query := `
		SELECT config, captured_at
		FROM platform_snapshots
		WHERE platform = ? AND profile = ?
		ORDER BY captured_at DESC
		LIMIT 1
	`

	var configRaw []byte
	var capturedAt time.Time
	err := s.db.QueryRowContext(ctx, query, platform, profile).Scan(&configRaw, &capturedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	config := map[string]any{}
	if len(configRaw) > 0 {
		if err := json.Unmarshal(configRaw, &config); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot config: %w", err)
		}
	}

	return &store.PlatformSnapshot{
		Platform:   platform,
		Profile:    profile,
		Config:     config,
		CapturedAt: capturedAt,
	}, nil
}

func (s *complianceStore) AddResults(ctx context.Context, results []store.ControlResult) error {
	if len(results) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO control_results (
			scan_id, profile, platform, framework, control_id, severity, status, detail, evaluated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, result := range results {
		_, err = stmt.ExecContext(ctx,
			result.ScanID,
			result.Profile,
			result.Platform,
			result.Framework,
			result.ControlID,
			result.Severity,
			result.Status,
			result.Detail,
			result.EvaluatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert control result: %w", err)
		}
	}
	return nil
}

func (s *complianceStore) GetLatestResults(ctx context.Context, platform, profile string) ([]store.ControlResult, error) {
	query := `
		SELECT scan_id, framework, control_id, severity, status, detail, evaluated_at
		FROM control_results
		WHERE platform = ? AND profile = ?
		  AND scan_id = (
			SELECT scan_id FROM control_results
			WHERE platform = ? AND profile = ?
			ORDER BY evaluated_at DESC LIMIT 1
		  )
		ORDER BY framework, control_id
	`
	rows, err := s.db.QueryContext(ctx, query, platform, profile, platform, profile)
	if err != nil {
		return nil, fmt.Errorf("query latest results: %w", err)
	}
	defer rows.Close()

	results := make([]store.ControlResult, 0)
	for rows.Next() {
		result := store.ControlResult{Platform: platform, Profile: profile}
		if err := rows.Scan(
			&result.ScanID,
			&result.Framework,
			&result.ControlID,
			&result.Severity,
			&result.Status,
			&result.Detail,
			&result.EvaluatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
