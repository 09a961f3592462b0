package seed

import (
	"context"
	"io"
	"testing"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExplorer struct {
	stats   map[string]int
	batches map[string][]domain.RegisterRecord
}

func newFakeExplorer() *fakeExplorer {
	return &fakeExplorer{
		stats:   map[string]int{},
		batches: map[string][]domain.RegisterRecord{},
	}
}

func (f *fakeExplorer) ListRegisters(_ context.Context) []domain.Register { return nil }

func (f *fakeExplorer) GetRecords(_ context.Context, _ string, _ domain.Filters) ([]domain.RegisterRecord, error) {
	return nil, nil
}

func (f *fakeExplorer) AddRecord(_ context.Context, _ string, record domain.RegisterRecord) (domain.RegisterRecord, error) {
	return record, nil
}

func (f *fakeExplorer) AddRecords(_ context.Context, register string, recs []domain.RegisterRecord) error {
	f.batches[register] = recs
	return nil
}

func (f *fakeExplorer) GetSummary(_ context.Context, _ string, _ domain.SummaryQuery) (domain.RegisterSummary, error) {
	return domain.RegisterSummary{}, nil
}

func (f *fakeExplorer) Export(_ context.Context, _ string, _ domain.ExportFormat, _ domain.Filters, _ io.Writer) (string, error) {
	return "", nil
}

func (f *fakeExplorer) GetStats(_ context.Context, register string) (*domain.RegisterStats, error) {
	return &domain.RegisterStats{RecordsCount: int64(f.stats[register])}, nil
}

func (f *fakeExplorer) ResetRegister(_ context.Context, register string) error {
	delete(f.batches, register)
	f.stats[register] = 0
	return nil
}

func TestSeederPopulatesEveryRegister(t *testing.T) {
	explorer := newFakeExplorer()
	seeder := NewSeeder(explorer, 42)

	err := seeder.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, explorer.batches, 9)
	assert.Len(t, explorer.batches["assets"], 40)
	assert.Len(t, explorer.batches["audits"], 12)
	assert.Len(t, explorer.batches["findings"], 25)
	assert.Len(t, explorer.batches["vendors"], 16)
}

func TestSeederSkipsPopulatedRegisters(t *testing.T) {
	explorer := newFakeExplorer()
	explorer.stats["assets"] = 5

	err := NewSeeder(explorer, 42).Run(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, explorer.batches, "assets")
	assert.Contains(t, explorer.batches, "audits")
}

func TestSeederIsDeterministic(t *testing.T) {
	first := NewSeeder(newFakeExplorer(), 7).Assets()
	second := NewSeeder(newFakeExplorer(), 7).Assets()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

func TestSeededRecordsFitTheirRegister(t *testing.T) {
	seeder := NewSeeder(newFakeExplorer(), 1)

	for _, finding := range seeder.Findings() {
		assert.Equal(t, "findings", finding.Register)
		assert.NotEmpty(t, finding.ID)
		assert.NotEmpty(t, finding.Dims["severity"])
		severity := domain.Severity(finding.Dims["severity"])
		assert.Equal(t, severity.Weight(), finding.Measures["risk_score"])
	}
}
