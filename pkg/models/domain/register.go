package domain

import "time"

// Register identifies one of the flat GRC record collections
// (assets, incidents, vendors, ...) served by the API and the CLI.
type Register struct {
	Name        string
	Title       string
	Dimensions  []string
	Measures    []string
}

// RegisterRecord is the generic shape every register record reduces to.
// Dimensions hold the string fields usable in filters and group-by,
// Measures the numeric fields usable in aggregates. Soft references
// (audit_id, vendor_id) live in Dimensions and are never join-enforced.
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

// Dimension returns the named dimension value, "" when absent.
func (r RegisterRecord) Dimension(name string) string {
	return r.Dims[name]
}

// Measure returns the named measure value, 0 when absent.
func (r RegisterRecord) Measure(name string) float64 {
	return r.Measures[name]
}

// Filters are equality predicates over record dimensions.
// Dimensions are AND-combined; values within one dimension are
// OR-combined. Matching is case-insensitive.
type Filters struct {
	Dimensions map[string][]string
}

func (f Filters) IsEmpty() bool {
	for _, values := range f.Dimensions {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

type Aggregation string

const (
	AggregationCount Aggregation = "count"
	AggregationSum   Aggregation = "sum"
	AggregationAvg   Aggregation = "avg"
)

func (a Aggregation) IsValid() bool {
	switch a {
	case AggregationCount, AggregationSum, AggregationAvg:
		return true
	default:
		return false
	}
}

// SummaryQuery describes one aggregate pass over a register:
// group by zero or more dimensions, aggregate a measure, sort, limit.
type SummaryQuery struct {
	GroupBy     []string
	Measure     string
	Aggregation Aggregation
	SortBy      string
	Limit       int
	Filters     Filters
}

// SummaryGroup is one group produced by a SummaryQuery.
type SummaryGroup struct {
	Key   string
	Label string
	Count int64
	Value float64
}

type RegisterSummary struct {
	Register    string
	Measure     string
	Aggregation Aggregation
	Total       float64
	RecordCount int64
	Groups      []SummaryGroup
}

type RegisterStats struct {
	RecordsCount    int64
	FirstRecordTime *time.Time
}
