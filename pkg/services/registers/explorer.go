package registers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/models/store"
	"github.com/grc-tools/control-atlas/pkg/services/analytics"
	"github.com/grc-tools/control-atlas/pkg/services/export"
	"github.com/grc-tools/control-atlas/pkg/store/duckdb/records"
)

// Explorer is the service layer behind both the HTTP handlers and the
// CLI commands: list registers, read/filter records, aggregate,
// append, export.
type Explorer interface {
	ListRegisters(ctx context.Context) []domain.Register
	GetRecords(ctx context.Context, register string, filters domain.Filters) ([]domain.RegisterRecord, error)
	AddRecord(ctx context.Context, register string, record domain.RegisterRecord) (domain.RegisterRecord, error)
	AddRecords(ctx context.Context, register string, recs []domain.RegisterRecord) error
	GetSummary(ctx context.Context, register string, query domain.SummaryQuery) (domain.RegisterSummary, error)
	Export(ctx context.Context, register string, format domain.ExportFormat, filters domain.Filters, w io.Writer) (string, error)
	GetStats(ctx context.Context, register string) (*domain.RegisterStats, error)
	ResetRegister(ctx context.Context, register string) error
}

type defaultExplorer struct {
	store records.Store
	now   func() time.Time
}

func NewExplorer(store records.Store) Explorer {
	return &defaultExplorer{store: store, now: time.Now}
}

func (e *defaultExplorer) ListRegisters(_ context.Context) []domain.Register {
	return Catalog()
}

func (e *defaultExplorer) GetRecords(ctx context.Context, register string, filters domain.Filters) ([]domain.RegisterRecord, error) {
	if _, err := Lookup(register); err != nil {
		return nil, err
	}

	rows, err := e.store.GetRecords(ctx, register)
	if err != nil {
		return nil, fmt.Errorf("get %s records: %w", register, err)
	}

	domainRecords := make([]domain.RegisterRecord, 0, len(rows))
	for _, row := range rows {
		domainRecords = append(domainRecords, adapters.MapStoreRecordToDomain(row))
	}
	return analytics.ApplyFilters(domainRecords, filters), nil
}

func (e *defaultExplorer) AddRecord(ctx context.Context, register string, record domain.RegisterRecord) (domain.RegisterRecord, error) {
	def, err := Lookup(register)
	if err != nil {
		return domain.RegisterRecord{}, err
	}
	if record.Name == "" {
		return domain.RegisterRecord{}, fmt.Errorf("record name is required")
	}
	for dim := range record.Dims {
		if !contains(def.Dimensions, dim) {
			return domain.RegisterRecord{}, fmt.Errorf("register %s has no dimension %q", register, dim)
		}
	}
	for measure := range record.Measures {
		if !contains(def.Measures, measure) {
			return domain.RegisterRecord{}, fmt.Errorf("register %s has no measure %q", register, measure)
		}
	}

	record.ID = uuid.NewString()
	record.Register = register
	record.CreatedAt = e.now().UTC()

	err = e.store.Add(ctx, register, []store.RegisterRecord{adapters.MapDomainRecordToStore(record)})
	if err != nil {
		return domain.RegisterRecord{}, fmt.Errorf("add %s record: %w", register, err)
	}
	return record, nil
}

func (e *defaultExplorer) AddRecords(ctx context.Context, register string, recs []domain.RegisterRecord) error {
	if _, err := Lookup(register); err != nil {
		return err
	}

	rows := make([]store.RegisterRecord, 0, len(recs))
	for _, record := range recs {
		rows = append(rows, adapters.MapDomainRecordToStore(record))
	}
	if err := e.store.Add(ctx, register, rows); err != nil {
		return fmt.Errorf("add %s records: %w", register, err)
	}
	return nil
}

func (e *defaultExplorer) GetSummary(ctx context.Context, register string, query domain.SummaryQuery) (domain.RegisterSummary, error) {
	domainRecords, err := e.GetRecords(ctx, register, domain.Filters{})
	if err != nil {
		return domain.RegisterSummary{}, err
	}

	summary, err := analytics.Summarize(domainRecords, query)
	if err != nil {
		return domain.RegisterSummary{}, err
	}
	summary.Register = register
	return summary, nil
}

func (e *defaultExplorer) Export(ctx context.Context, register string, format domain.ExportFormat, filters domain.Filters, w io.Writer) (string, error) {
	def, err := Lookup(register)
	if err != nil {
		return "", err
	}
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported export format: %s", format)
	}

	domainRecords, err := e.GetRecords(ctx, register, filters)
	if err != nil {
		return "", err
	}

	if err := export.NewExporter(def).Write(w, format, domainRecords); err != nil {
		return "", fmt.Errorf("export %s: %w", register, err)
	}
	return export.Filename(register, format, e.now()), nil
}

func (e *defaultExplorer) GetStats(ctx context.Context, register string) (*domain.RegisterStats, error) {
	if _, err := Lookup(register); err != nil {
		return nil, err
	}

	stats, err := e.store.GetStats(ctx, register)
	if err != nil {
		return nil, err
	}
	return &domain.RegisterStats{
		RecordsCount:    stats.RecordsCount,
		FirstRecordTime: stats.FirstRecordTime,
	}, nil
}

// ResetRegister drops every record of the register, typically before
// reseeding sample data.
func (e *defaultExplorer) ResetRegister(ctx context.Context, register string) error {
	if _, err := Lookup(register); err != nil {
		return err
	}
	return e.store.DeleteRegister(ctx, register)
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
