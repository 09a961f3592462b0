package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/grc-tools/control-atlas/pkg/models/api"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExplorer struct {
	snapshot domain.PlatformSnapshot
	report   domain.ComplianceReport
	err      error
}

func (f *fakeExplorer) ListPlatforms(_ context.Context) []domain.Platform {
	return []domain.Platform{domain.PlatformIBMi, domain.PlatformUnix}
}

func (f *fakeExplorer) ListFrameworks(_ context.Context) []domain.Framework {
	return domain.Frameworks()
}

func (f *fakeExplorer) GetSnapshot(_ context.Context, _ domain.Platform) (domain.PlatformSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeExplorer) GetReport(_ context.Context, _ domain.Platform, _ domain.Framework) (domain.ComplianceReport, error) {
	return f.report, f.err
}

func (f *fakeExplorer) Scoreboard(_ context.Context, _ domain.Framework) ([]domain.ComplianceReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.ComplianceReport{f.report}, nil
}

func newTestRouter(explorer *fakeExplorer) *chi.Mux {
	handler := NewHandler(explorer)

	router := chi.NewRouter()
	router.Route("/api/v1/compliance", func(r chi.Router) {
		r.Get("/platforms", handler.ListPlatforms)
		r.Get("/frameworks", handler.ListFrameworks)
		r.Get("/scoreboard", handler.GetScoreboard)
		r.Get("/platforms/{platform}/snapshot", handler.GetSnapshot)
		r.Get("/platforms/{platform}/report", handler.GetReport)
	})
	return router
}

func TestListPlatforms(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&fakeExplorer{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compliance/platforms", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []string{"ibmi", "unix"}, response)
}

func TestListFrameworks(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&fakeExplorer{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compliance/frameworks", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Contains(t, response, "sox")
	assert.Contains(t, response, "hitrust")
}

func TestGetSnapshot(t *testing.T) {
	explorer := &fakeExplorer{
		snapshot: domain.PlatformSnapshot{
			Platform:   domain.PlatformIBMi,
			Profile:    "ibmi-prod",
			Config:     map[string]any{"QSECURITY": 40.0},
			CapturedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(explorer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compliance/platforms/ibmi/snapshot", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response api.PlatformSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "ibmi", response.Platform)
	assert.Equal(t, 40.0, response.Config["QSECURITY"])
}

func TestGetSnapshotUnknownPlatform(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&fakeExplorer{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compliance/platforms/mainframe/snapshot", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetReport(t *testing.T) {
	explorer := &fakeExplorer{
		report: domain.ComplianceReport{
			Platform: domain.PlatformUnix,
			Profile:  "unix-prod",
			Scores: []domain.FrameworkScore{
				{Framework: domain.FrameworkSOX, Passed: 3, Failed: 1, Score: 75},
			},
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(explorer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compliance/platforms/unix/report?framework=sox", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response api.ComplianceReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response.Scores, 1)
	assert.Equal(t, 75.0, response.Scores[0].Score)
}

func TestGetReportFailure(t *testing.T) {
	explorer := &fakeExplorer{err: fmt.Errorf("collector unreachable")}

	rec := httptest.NewRecorder()
	newTestRouter(explorer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compliance/platforms/unix/report", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetScoreboard(t *testing.T) {
	explorer := &fakeExplorer{
		report: domain.ComplianceReport{Platform: domain.PlatformUnix},
	}

	rec := httptest.NewRecorder()
	newTestRouter(explorer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compliance/scoreboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response []api.ComplianceReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response, 1)
}
