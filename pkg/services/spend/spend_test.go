package spend

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExplorer struct {
	vendors []domain.RegisterRecord
	added   []domain.RegisterRecord
}

func (f *fakeExplorer) ListRegisters(_ context.Context) []domain.Register { return nil }

func (f *fakeExplorer) GetRecords(_ context.Context, _ string, _ domain.Filters) ([]domain.RegisterRecord, error) {
	return f.vendors, nil
}

func (f *fakeExplorer) AddRecord(_ context.Context, _ string, record domain.RegisterRecord) (domain.RegisterRecord, error) {
	return record, nil
}

func (f *fakeExplorer) AddRecords(_ context.Context, _ string, recs []domain.RegisterRecord) error {
	f.added = append(f.added, recs...)
	return nil
}

func (f *fakeExplorer) GetSummary(_ context.Context, _ string, _ domain.SummaryQuery) (domain.RegisterSummary, error) {
	return domain.RegisterSummary{}, nil
}

func (f *fakeExplorer) Export(_ context.Context, _ string, _ domain.ExportFormat, _ domain.Filters, _ io.Writer) (string, error) {
	return "", nil
}

func (f *fakeExplorer) GetStats(_ context.Context, _ string) (*domain.RegisterStats, error) {
	return &domain.RegisterStats{}, nil
}

func (f *fakeExplorer) ResetRegister(_ context.Context, _ string) error { return nil }

func sampleSpends() []domain.VendorSpend {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return []domain.VendorSpend{
		{Vendor: "AWS", Service: "Amazon EC2", Region: "us-east-1", Amount: 120.5, Currency: "USD", StartTime: start},
		{Vendor: "AWS", Service: "Amazon EC2", Region: "eu-west-1", Amount: 30, Currency: "USD", StartTime: start.AddDate(0, 0, 1)},
		{Vendor: "AWS", Service: "Amazon S3", Region: "us-east-1", Amount: 12, Currency: "USD", StartTime: start},
		{Vendor: "Azure", Service: "Virtual Machines", Amount: 88, Currency: "USD", StartTime: start},
	}
}

func TestTotalByService(t *testing.T) {
	groups := TotalByService(sampleSpends())

	require.Len(t, groups, 3)
	assert.Equal(t, "Amazon EC2", groups[0].Key)
	assert.InDelta(t, 150.5, groups[0].Value, 0.001)
	assert.Equal(t, "Amazon S3", groups[1].Key)
	assert.Equal(t, "Virtual Machines", groups[2].Key)
}

func TestSyncVendorSpendAddsMissingVendors(t *testing.T) {
	explorer := &fakeExplorer{}

	err := SyncVendorSpend(context.Background(), explorer, sampleSpends())
	require.NoError(t, err)

	require.Len(t, explorer.added, 2)
	byName := map[string]domain.RegisterRecord{}
	for _, record := range explorer.added {
		byName[record.Name] = record
	}
	assert.InDelta(t, 162.5, byName["AWS"].Measures["annual_spend"], 0.001)
	assert.InDelta(t, 88, byName["Azure"].Measures["annual_spend"], 0.001)
	assert.Equal(t, "cloud", byName["AWS"].Dims["category"])
}

func TestSyncVendorSpendSkipsKnownVendors(t *testing.T) {
	explorer := &fakeExplorer{
		vendors: []domain.RegisterRecord{{Name: "AWS"}},
	}

	err := SyncVendorSpend(context.Background(), explorer, sampleSpends())
	require.NoError(t, err)

	require.Len(t, explorer.added, 1)
	assert.Equal(t, "Azure", explorer.added[0].Name)
}
