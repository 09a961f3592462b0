package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
)

// ApplyFilters returns the records matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are
// OR-combined; matching is case-insensitive. An empty filter returns
// the input unchanged, which makes filtering idempotent and
// commutative across independent dimensions.
func ApplyFilters(records []domain.RegisterRecord, filters domain.Filters) []domain.RegisterRecord {
	if filters.IsEmpty() {
		return records
	}

	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			sets[dim] = toLowerSet(allowed)
		}
	}
	if len(sets) == 0 {
		return records
	}

	matched := make([]domain.RegisterRecord, 0, len(records))
	for _, record := range records {
		pass := true
		for dim, set := range sets {
			if !set[strings.ToLower(record.Dimension(dim))] {
				pass = false
				break
			}
		}
		if pass {
			matched = append(matched, record)
		}
	}
	return matched
}

// Summarize runs one aggregate pass: filter, group, aggregate, sort,
// limit. With no group-by dimensions it produces a single "Total"
// group, so the unfiltered total always equals the sum of per-group
// counts for any grouping.
func Summarize(records []domain.RegisterRecord, query domain.SummaryQuery) (domain.RegisterSummary, error) {
	if !query.Aggregation.IsValid() {
		return domain.RegisterSummary{}, fmt.Errorf("unsupported aggregation: %s", query.Aggregation)
	}
	if query.Aggregation != domain.AggregationCount && query.Measure == "" {
		return domain.RegisterSummary{}, fmt.Errorf("aggregation %s requires a measure", query.Aggregation)
	}

	filtered := ApplyFilters(records, query.Filters)

	groups := groupRecords(filtered, query.GroupBy)
	for i := range groups {
		aggregateGroup(&groups[i], query.Measure, query.Aggregation)
	}

	sortGroups(groups, query.SortBy)
	if query.Limit > 0 && len(groups) > query.Limit {
		groups = groups[:query.Limit]
	}

	summary := domain.RegisterSummary{
		Measure:     query.Measure,
		Aggregation: query.Aggregation,
		RecordCount: int64(len(filtered)),
		Groups:      make([]domain.SummaryGroup, 0, len(groups)),
	}
	for _, g := range groups {
		summary.Groups = append(summary.Groups, g.SummaryGroup)
		summary.Total += g.Value
	}
	return summary, nil
}

type group struct {
	domain.SummaryGroup
	members []domain.RegisterRecord
}

func groupRecords(records []domain.RegisterRecord, groupBy []string) []group {
	if len(groupBy) == 0 {
		return []group{{
			SummaryGroup: domain.SummaryGroup{Key: "all", Label: "Total"},
			members:      records,
		}}
	}

	grouped := make(map[string]int)
	groups := make([]group, 0)
	for _, record := range records {
		parts := make([]string, 0, len(groupBy))
		for _, dim := range groupBy {
			value := record.Dimension(dim)
			if value == "" {
				value = "unknown"
			}
			parts = append(parts, value)
		}
		label := strings.Join(parts, " / ")
		key := strings.ToLower(label)

		idx, exists := grouped[key]
		if !exists {
			idx = len(groups)
			grouped[key] = idx
			groups = append(groups, group{
				SummaryGroup: domain.SummaryGroup{Key: key, Label: label},
			})
		}
		groups[idx].members = append(groups[idx].members, record)
	}
	return groups
}

func aggregateGroup(g *group, measure string, aggregation domain.Aggregation) {
	g.Count = int64(len(g.members))

	switch aggregation {
	case domain.AggregationCount:
		g.Value = float64(g.Count)
	case domain.AggregationSum:
		for _, record := range g.members {
			g.Value += record.Measure(measure)
		}
	case domain.AggregationAvg:
		if g.Count == 0 {
			return
		}
		var sum float64
		for _, record := range g.members {
			sum += record.Measure(measure)
		}
		g.Value = sum / float64(g.Count)
	}
}

func sortGroups(groups []group, sortBy string) {
	switch sortBy {
	case "key":
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Key < groups[j].Key
		})
	default: // value, descending
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Value > groups[j].Value
		})
	}
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
