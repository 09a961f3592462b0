package store

import "time"

// RegisterRecord is the DuckDB row shape for register records.
// Dimensions and Measures are stored as JSON columns.
type RegisterRecord struct {
	ID        string
	Register  string
	Name      string
	Dims      map[string]string
	Measures  map[string]float64
	CreatedAt time.Time
	DueAt     *time.Time
	ClosedAt  *time.Time
}

type RegisterStats struct {
	RecordsCount    int64
	FirstRecordTime *time.Time
}
