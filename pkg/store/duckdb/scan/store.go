package scan

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grc-tools/control-atlas/pkg/models/store"
	"github.com/grc-tools/control-atlas/pkg/store/duckdb"
)

type Store interface {
	ListScans(ctx context.Context, statuses []string) ([]*store.Scan, error)
	CreateScan(ctx context.Context, identity store.ScanIdentity) (*store.Scan, error)
	UpdateScanStatus(ctx context.Context, profile string, status string, scanErr *string) error
	ProgressScan(ctx context.Context, profile string, lastScanAt time.Time) error
}

type scanStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &scanStore{db: db}, nil
}

func (s *scanStore) ListScans(ctx context.Context, statuses []string) ([]*store.Scan, error) {
	query := `SELECT id, profile, platform, status, created_at, updated_at, last_scan_at, error FROM scan_state`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := ""
		for i, status := range statuses {
			if i > 0 {
				placeholders += ", "
			}
			placeholders += "?"
			args = append(args, status)
		}
		query += fmt.Sprintf(" WHERE status IN (%s)", placeholders)
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	scans := make([]*store.Scan, 0)
	for rows.Next() {
		var scan store.Scan
		var lastScanAt sql.NullTime
		var scanErr sql.NullString
		if err := rows.Scan(
			&scan.ID,
			&scan.Profile,
			&scan.Platform,
			&scan.Status,
			&scan.CreatedAt,
			&scan.UpdatedAt,
			&lastScanAt,
			&scanErr,
		); err != nil {
			return nil, err
		}
		if lastScanAt.Valid {
			scan.LastScanAt = lastScanAt.Time
		}
		if scanErr.Valid {
			msg := scanErr.String
			scan.Error = &msg
		}
		scans = append(scans, &scan)
	}
	return scans, rows.Err()
}

func (s *scanStore) CreateScan(ctx context.Context, identity store.ScanIdentity) (*store.Scan, error) {
	now := time.Now().UTC()
	scan := &store.Scan{
		ID:        uuid.NewString(),
		Profile:   identity.Profile,
		Platform:  identity.Platform,
		Status:    "pending",
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO scan_state (id, profile, platform, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		scan.ID, scan.Profile, scan.Platform, scan.Status, scan.CreatedAt, scan.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create scan: %w", err)
	}
	return scan, nil
}

func (s *scanStore) UpdateScanStatus(ctx context.Context, profile string, status string, scanErr *string) error {
	query := `UPDATE scan_state SET status = ?, error = ?, updated_at = ? WHERE profile = ?`

	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, query, status, scanErr, time.Now().UTC(), profile)
	} else {
		_, err = s.db.ExecContext(ctx, query, status, scanErr, time.Now().UTC(), profile)
	}
	if err != nil {
		return fmt.Errorf("update scan status: %w", err)
	}
	return nil
}

func (s *scanStore) ProgressScan(ctx context.Context, profile string, lastScanAt time.Time) error {
	query := `UPDATE scan_state SET last_scan_at = ?, updated_at = ? WHERE profile = ?`

	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, query, lastScanAt, time.Now().UTC(), profile)
	} else {
		_, err = s.db.ExecContext(ctx, query, lastScanAt, time.Now().UTC(), profile)
	}
	if err != nil {
		return fmt.Errorf("progress scan: %w", err)
	}
	return nil
}
