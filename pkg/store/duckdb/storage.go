package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const RegisterRecordsSchema = `
	CREATE TABLE IF NOT EXISTS register_records (
		id VARCHAR NOT NULL,
		register VARCHAR NOT NULL,
		name VARCHAR,
		dims JSON,
		measures JSON,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		due_at TIMESTAMP NULL,
		closed_at TIMESTAMP NULL,
		PRIMARY KEY (register, id)
	);
`

const PlatformSnapshotsSchema = `
	CREATE TABLE IF NOT EXISTS platform_snapshots (
		platform VARCHAR NOT NULL,
		profile VARCHAR NOT NULL,
		config JSON,
		captured_at TIMESTAMP NOT NULL
	);
`

const ControlResultsSchema = `
	CREATE TABLE IF NOT EXISTS control_results (
		scan_id VARCHAR NOT NULL,
		profile VARCHAR NOT NULL,
		platform VARCHAR NOT NULL,
		framework VARCHAR NOT NULL,
		control_id VARCHAR NOT NULL,
		severity VARCHAR,
		status VARCHAR NOT NULL,
		detail VARCHAR,
		evaluated_at TIMESTAMP NOT NULL
	);
`

const ScanStateSchema = `
	CREATE TABLE IF NOT EXISTS scan_state (
		id VARCHAR NOT NULL,
		profile VARCHAR NOT NULL,
		platform VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_scan_at TIMESTAMP NULL,
		error VARCHAR NULL,
		PRIMARY KEY (profile)
	);
`

var bootQueries = []string{
	RegisterRecordsSchema,
	PlatformSnapshotsSchema,
	ControlResultsSchema,
	ScanStateSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
