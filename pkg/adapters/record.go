package adapters

import (
	"maps"

	"github.com/grc-tools/control-atlas/pkg/models/api"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/models/store"
)

func MapStoreRecordToDomain(record store.RegisterRecord) domain.RegisterRecord {
	return domain.RegisterRecord{
		ID:        record.ID,
		Register:  record.Register,
		Name:      record.Name,
		Dims:      maps.Clone(record.Dims),
		Measures:  maps.Clone(record.Measures),
		CreatedAt: record.CreatedAt,
		DueAt:     record.DueAt,
		ClosedAt:  record.ClosedAt,
	}
}

func MapDomainRecordToStore(record domain.RegisterRecord) store.RegisterRecord {
	return store.RegisterRecord{
		ID:        record.ID,
		Register:  record.Register,
		Name:      record.Name,
		Dims:      maps.Clone(record.Dims),
		Measures:  maps.Clone(record.Measures),
		CreatedAt: record.CreatedAt,
		DueAt:     record.DueAt,
		ClosedAt:  record.ClosedAt,
	}
}

func MapDomainRecordToApi(record domain.RegisterRecord) api.RegisterRecord {
	return api.RegisterRecord{
		ID:        record.ID,
		Register:  record.Register,
		Name:      record.Name,
		Dims:      record.Dims,
		Measures:  record.Measures,
		CreatedAt: record.CreatedAt,
		DueAt:     record.DueAt,
		ClosedAt:  record.ClosedAt,
	}
}

func MapRegisterDomainToApi(register domain.Register) api.Register {
	return api.Register{
		Name:       register.Name,
		Title:      register.Title,
		Dimensions: register.Dimensions,
		Measures:   register.Measures,
	}
}

func MapSummaryDomainToApi(summary domain.RegisterSummary) api.RegisterSummary {
	out := api.RegisterSummary{
		Register:    summary.Register,
		Measure:     summary.Measure,
		Aggregation: string(summary.Aggregation),
		Total:       summary.Total,
		RecordCount: summary.RecordCount,
		Groups:      make([]api.SummaryGroup, 0, len(summary.Groups)),
	}
	for _, group := range summary.Groups {
		out.Groups = append(out.Groups, api.SummaryGroup{
			Key:   group.Key,
			Label: group.Label,
			Count: group.Count,
			Value: group.Value,
		})
	}
	return out
}
