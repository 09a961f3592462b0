package analytics

import (
	"testing"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecords() []domain.RegisterRecord {
	return []domain.RegisterRecord{
		{ID: "1", Name: "web-01", Dims: map[string]string{"status": "active", "category": "server"}, Measures: map[string]float64{"value": 1200}},
		{ID: "2", Name: "web-02", Dims: map[string]string{"status": "retired", "category": "server"}, Measures: map[string]float64{"value": 800}},
		{ID: "3", Name: "lt-14", Dims: map[string]string{"status": "active", "category": "laptop"}, Measures: map[string]float64{"value": 2100}},
		{ID: "4", Name: "db-01", Dims: map[string]string{"status": "active", "category": "database"}, Measures: map[string]float64{"value": 5000}},
		{ID: "5", Name: "lt-15", Dims: map[string]string{"status": "in_repair", "category": "laptop"}, Measures: map[string]float64{"value": 1900}},
	}
}

func TestApplyFilters_EqualityAcrossDimensions(t *testing.T) {
	records := makeRecords()

	filtered := ApplyFilters(records, domain.Filters{Dimensions: map[string][]string{
		"status":   {"active"},
		"category": {"laptop"},
	}})

	require.Len(t, filtered, 1)
	assert.Equal(t, "3", filtered[0].ID)
}

func TestApplyFilters_ValuesWithinDimensionAreORCombined(t *testing.T) {
	records := makeRecords()

	filtered := ApplyFilters(records, domain.Filters{Dimensions: map[string][]string{
		"category": {"laptop", "database"},
	}})

	assert.Len(t, filtered, 3)
}

func TestApplyFilters_CaseInsensitive(t *testing.T) {
	records := makeRecords()

	filtered := ApplyFilters(records, domain.Filters{Dimensions: map[string][]string{
		"status": {"ACTIVE"},
	}})

	assert.Len(t, filtered, 3)
}

func TestApplyFilters_CommutativeAndIdempotent(t *testing.T) {
	records := makeRecords()
	byStatus := domain.Filters{Dimensions: map[string][]string{"status": {"active"}}}
	byCategory := domain.Filters{Dimensions: map[string][]string{"category": {"server"}}}

	statusFirst := ApplyFilters(ApplyFilters(records, byStatus), byCategory)
	categoryFirst := ApplyFilters(ApplyFilters(records, byCategory), byStatus)
	assert.Equal(t, statusFirst, categoryFirst)

	again := ApplyFilters(statusFirst, byStatus)
	assert.Equal(t, statusFirst, again)
}

func TestApplyFilters_EmptyFilterReturnsInput(t *testing.T) {
	records := makeRecords()

	filtered := ApplyFilters(records, domain.Filters{})

	assert.Len(t, filtered, len(records))
}

func TestSummarize_CountByDimension(t *testing.T) {
	records := makeRecords()

	summary, err := Summarize(records, domain.SummaryQuery{
		GroupBy:     []string{"category"},
		Aggregation: domain.AggregationCount,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), summary.RecordCount)

	// Sum of per-group counts equals the unfiltered total.
	var total int64
	for _, g := range summary.Groups {
		total += g.Count
	}
	assert.Equal(t, summary.RecordCount, total)
}

func TestSummarize_SumAndAvg(t *testing.T) {
	records := makeRecords()

	sum, err := Summarize(records, domain.SummaryQuery{
		Measure:     "value",
		Aggregation: domain.AggregationSum,
	})
	require.NoError(t, err)
	require.Len(t, sum.Groups, 1)
	assert.InDelta(t, 11000.0, sum.Groups[0].Value, 0.001)

	avg, err := Summarize(records, domain.SummaryQuery{
		GroupBy:     []string{"category"},
		Measure:     "value",
		Aggregation: domain.AggregationAvg,
		SortBy:      "key",
	})
	require.NoError(t, err)
	require.Len(t, avg.Groups, 3)
	assert.Equal(t, "database", avg.Groups[0].Key)
	assert.InDelta(t, 5000.0, avg.Groups[0].Value, 0.001)
	assert.Equal(t, "laptop", avg.Groups[1].Key)
	assert.InDelta(t, 2000.0, avg.Groups[1].Value, 0.001)
}

func TestSummarize_SortAndLimit(t *testing.T) {
	records := makeRecords()

	summary, err := Summarize(records, domain.SummaryQuery{
		GroupBy:     []string{"category"},
		Measure:     "value",
		Aggregation: domain.AggregationSum,
		Limit:       2,
	})
	require.NoError(t, err)

	require.Len(t, summary.Groups, 2)
	assert.Equal(t, "database", summary.Groups[0].Key)
	assert.Equal(t, "laptop", summary.Groups[1].Key)
}

func TestSummarize_MissingDimensionGroupsAsUnknown(t *testing.T) {
	records := []domain.RegisterRecord{
		{ID: "1", Dims: map[string]string{"status": "active"}},
		{ID: "2"},
	}

	summary, err := Summarize(records, domain.SummaryQuery{
		GroupBy:     []string{"status"},
		Aggregation: domain.AggregationCount,
	})
	require.NoError(t, err)

	require.Len(t, summary.Groups, 2)
	labels := []string{summary.Groups[0].Label, summary.Groups[1].Label}
	assert.Contains(t, labels, "unknown")
}

func TestSummarize_RejectsInvalidQueries(t *testing.T) {
	_, err := Summarize(makeRecords(), domain.SummaryQuery{Aggregation: "median"})
	assert.Error(t, err)

	_, err = Summarize(makeRecords(), domain.SummaryQuery{Aggregation: domain.AggregationSum})
	assert.Error(t, err)
}
