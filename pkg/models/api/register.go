package api

import "time"

type Register struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Dimensions []string `json:"dimensions"`
	Measures   []string `json:"measures"`
}

type RegisterRecord struct {
	ID        string             `json:"id"`
	Register  string             `json:"register"`
	Name      string             `json:"name"`
	Dims      map[string]string  `json:"dimensions,omitempty"`
	Measures  map[string]float64 `json:"measures,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	DueAt     *time.Time         `json:"due_at,omitempty"`
	ClosedAt  *time.Time         `json:"closed_at,omitempty"`
}

// CreateRecordRequest is the POST body for adding a record. ID and
// CreatedAt are assigned server-side.
type CreateRecordRequest struct {
	Name     string             `json:"name"`
	Dims     map[string]string  `json:"dimensions,omitempty"`
	Measures map[string]float64 `json:"measures,omitempty"`
	DueAt    *time.Time         `json:"due_at,omitempty"`
}

type SummaryGroup struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Count int64   `json:"count"`
	Value float64 `json:"value"`
}

type RegisterSummary struct {
	Register    string         `json:"register"`
	Measure     string         `json:"measure,omitempty"`
	Aggregation string         `json:"aggregation"`
	Total       float64        `json:"total"`
	RecordCount int64          `json:"record_count"`
	Groups      []SummaryGroup `json:"groups"`
}
