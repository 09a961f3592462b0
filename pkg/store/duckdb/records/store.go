package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/grc-tools/control-atlas/pkg/models/store"
	"github.com/grc-tools/control-atlas/pkg/store/duckdb"
)

// Store supports both ingestion (Add) and read operations for register
// records in DuckDB. Add participates in a context transaction when
// one is present.
type Store interface {
	Add(ctx context.Context, register string, records []store.RegisterRecord) error
	GetRecords(ctx context.Context, register string) ([]store.RegisterRecord, error)
	GetStats(ctx context.Context, register string) (*store.RegisterStats, error)
	DeleteRegister(ctx context.Context, register string) error
}

type recordStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recordStore{db: db}, nil
}

func (s *recordStore) Add(ctx context.Context, register string, records []store.RegisterRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO register_records (
			id, register, name, dims, measures, created_at, due_at, closed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

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

	for _, record := range records {
		dims, err := json.Marshal(record.Dims)
		if err != nil {
			return fmt.Errorf("marshal dims: %w", err)
		}
		measures, err := json.Marshal(record.Measures)
		if err != nil {
			return fmt.Errorf("marshal measures: %w", err)
		}

		_, err = stmt.ExecContext(ctx,
			record.ID,
			register,
			record.Name,
			dims,
			measures,
			record.CreatedAt,
			record.DueAt,
			record.ClosedAt,
		)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return nil
}

func (s *recordStore) GetRecords(ctx context.Context, register string) ([]store.RegisterRecord, error) {
	query := `
		SELECT id, name, dims, measures, created_at, due_at, closed_at
		FROM register_records
		WHERE register = ?
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, register)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	return scanRecordRows(rows, register)
}

func (s *recordStore) GetStats(ctx context.Context, register string) (*store.RegisterStats, error) {
	query := `SELECT COUNT(*), MIN(created_at) FROM register_records WHERE register = ?`

	var total int64
	var earliest sql.NullTime
	if err := s.db.QueryRowContext(ctx, query, register).Scan(&total, &earliest); err != nil {
		return nil, fmt.Errorf("get register stats: %w", err)
	}

	var first *time.Time
	if earliest.Valid {
		t := earliest.Time
		first = &t
	}
	return &store.RegisterStats{RecordsCount: total, FirstRecordTime: first}, nil
}

func (s *recordStore) DeleteRegister(ctx context.Context, register string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM register_records WHERE register = ?`, register)
	if err != nil {
		return fmt.Errorf("delete register: %w", err)
	}
	return nil
}

func scanRecordRows(rows *sql.Rows, register string) ([]store.RegisterRecord, error) {
	records := make([]store.RegisterRecord, 0)
	for rows.Next() {
		var (
			id, name                 string
			dimsRaw, measuresRaw     []byte
			createdAt                time.Time
			dueAt, closedAt          sql.NullTime
		)
		if err := rows.Scan(&id, &name, &dimsRaw, &measuresRaw, &createdAt, &dueAt, &closedAt); err != nil {
			return nil, err
		}

		dims := map[string]string{}
		if len(dimsRaw) > 0 {
			_ = json.Unmarshal(dimsRaw, &dims)
		}
		measures := map[string]float64{}
		if len(measuresRaw) > 0 {
			_ = json.Unmarshal(measuresRaw, &measures)
		}

		record := store.RegisterRecord{
			ID:        id,
			Register:  register,
			Name:      name,
			Dims:      dims,
			Measures:  measures,
			CreatedAt: createdAt,
		}
		if dueAt.Valid {
			t := dueAt.Time
			record.DueAt = &t
		}
		if closedAt.Valid {
			t := closedAt.Time
			record.ClosedAt = &t
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
