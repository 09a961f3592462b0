package registers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/grc-tools/control-atlas/pkg/models/api"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExplorer struct {
	registers []domain.Register
	records   []domain.RegisterRecord

	lastFilters domain.Filters
	lastQuery   domain.SummaryQuery
}

func (f *fakeExplorer) ListRegisters(_ context.Context) []domain.Register {
	return f.registers
}

func (f *fakeExplorer) GetRecords(_ context.Context, register string, filters domain.Filters) ([]domain.RegisterRecord, error) {
	if register == "unknown" {
		return nil, fmt.Errorf("unknown register: %s", register)
	}
	f.lastFilters = filters
	return f.records, nil
}

func (f *fakeExplorer) AddRecord(_ context.Context, register string, record domain.RegisterRecord) (domain.RegisterRecord, error) {
	if record.Name == "" {
		return domain.RegisterRecord{}, fmt.Errorf("record name is required")
	}
	record.ID = "generated-id"
	record.Register = register
	record.CreatedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return record, nil
}

func (f *fakeExplorer) AddRecords(_ context.Context, _ string, _ []domain.RegisterRecord) error {
	return nil
}

func (f *fakeExplorer) GetSummary(_ context.Context, register string, query domain.SummaryQuery) (domain.RegisterSummary, error) {
	if !query.Aggregation.IsValid() {
		return domain.RegisterSummary{}, fmt.Errorf("unsupported aggregation: %s", query.Aggregation)
	}
	f.lastQuery = query
	return domain.RegisterSummary{Register: register, Aggregation: query.Aggregation}, nil
}

func (f *fakeExplorer) Export(_ context.Context, register string, format domain.ExportFormat, _ domain.Filters, w io.Writer) (string, error) {
	_, _ = w.Write([]byte("id,name\n"))
	return register + "_20260601_120000" + format.FileExtension(), nil
}

func (f *fakeExplorer) GetStats(_ context.Context, _ string) (*domain.RegisterStats, error) {
	return &domain.RegisterStats{}, nil
}

func (f *fakeExplorer) ResetRegister(_ context.Context, _ string) error { return nil }

func newTestRouter(explorer *fakeExplorer) *chi.Mux {
	handler := NewHandler(explorer)

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/registers", handler.ListRegisters)
		r.Get("/registers/{register}/records", handler.ListRecords)
		r.Post("/registers/{register}/records", handler.CreateRecord)
		r.Get("/registers/{register}/summary", handler.GetSummary)
		r.Get("/registers/{register}/export", handler.ExportRecords)
	})
	return router
}

func TestListRegisters(t *testing.T) {
	explorer := &fakeExplorer{
		registers: []domain.Register{
			{Name: "assets", Title: "Asset Register"},
			{Name: "incidents", Title: "Incident Register"},
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(explorer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/registers", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response []api.Register
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response, 2)
	assert.Equal(t, "assets", response[0].Name)
}

func TestListRecordsAppliesQueryFilters(t *testing.T) {
	explorer := &fakeExplorer{
		records: []domain.RegisterRecord{{ID: "1", Name: "web-01"}},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/registers/assets/records?status=active&status=retired&owner=m.okafor", nil)
	newTestRouter(explorer).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, []string{"active", "retired"}, explorer.lastFilters.Dimensions["status"])
	assert.Equal(t, []string{"m.okafor"}, explorer.lastFilters.Dimensions["owner"])
}

func TestListRecordsUnknownRegister(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/registers/unknown/records", nil)
	newTestRouter(&fakeExplorer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRecord(t *testing.T) {
	body := `{"name":"web-02","dimensions":{"status":"active"},"measures":{"risk_score":4.2}}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registers/assets/records", strings.NewReader(body))
	newTestRouter(&fakeExplorer{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var response api.RegisterRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "generated-id", response.ID)
	assert.Equal(t, "assets", response.Register)
	assert.Equal(t, "active", response.Dims["status"])
}

func TestCreateRecordRejectsBadBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registers/assets/records", strings.NewReader("not json"))
	newTestRouter(&fakeExplorer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSummaryParsesQuery(t *testing.T) {
	explorer := &fakeExplorer{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/registers/incidents/summary?group_by=severity,status&agg=sum&measure=impact_cost&limit=5&category=phishing", nil)
	newTestRouter(explorer).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"severity", "status"}, explorer.lastQuery.GroupBy)
	assert.Equal(t, domain.AggregationSum, explorer.lastQuery.Aggregation)
	assert.Equal(t, "impact_cost", explorer.lastQuery.Measure)
	assert.Equal(t, 5, explorer.lastQuery.Limit)
	assert.Equal(t, []string{"phishing"}, explorer.lastQuery.Filters.Dimensions["category"])
	assert.NotContains(t, explorer.lastQuery.Filters.Dimensions, "group_by")
}

func TestGetSummaryRejectsBadAggregation(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/registers/incidents/summary?agg=median", nil)
	newTestRouter(&fakeExplorer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportSetsHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/registers/assets/export?format=csv", nil)
	newTestRouter(&fakeExplorer{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "assets_20260601_120000.csv")
	assert.Contains(t, rec.Body.String(), "id,name")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/registers/assets/export?format=pdf", nil)
	newTestRouter(&fakeExplorer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
