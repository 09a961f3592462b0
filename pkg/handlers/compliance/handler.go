package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/api"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/compliance"
	"github.com/rs/zerolog"
)

type Handler struct {
	explorer compliance.Explorer
}

func NewHandler(explorer compliance.Explorer) *Handler {
	return &Handler{explorer: explorer}
}

func (h *Handler) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	platforms := h.explorer.ListPlatforms(ctx)
	response := make([]string, 0, len(platforms))
	for _, platform := range platforms {
		response = append(response, string(platform))
	}
	respondJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) ListFrameworks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	frameworks := h.explorer.ListFrameworks(ctx)
	response := make([]string, 0, len(frameworks))
	for _, framework := range frameworks {
		response = append(response, string(framework))
	}
	respondJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	platform := domain.Platform(chi.URLParam(r, "platform"))
	if !platform.Auditable() {
		respondError(ctx, w, http.StatusNotFound, fmt.Errorf("unknown platform: %s", platform))
		return
	}

	snapshot, err := h.explorer.GetSnapshot(ctx, platform)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, adapters.MapSnapshotDomainToApi(snapshot))
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	platform := domain.Platform(chi.URLParam(r, "platform"))
	if !platform.Auditable() {
		respondError(ctx, w, http.StatusNotFound, fmt.Errorf("unknown platform: %s", platform))
		return
	}

	framework := domain.Framework(r.URL.Query().Get("framework"))
	report, err := h.explorer.GetReport(ctx, platform, framework)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, adapters.MapComplianceReportDomainToApi(report))
}

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	framework := domain.Framework(r.URL.Query().Get("framework"))
	reports, err := h.explorer.Scoreboard(ctx, framework)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, err)
		return
	}

	response := make([]api.ComplianceReport, 0, len(reports))
	for _, report := range reports {
		response = append(response, adapters.MapComplianceReportDomainToApi(report))
	}
	respondJSON(ctx, w, http.StatusOK, response)
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	zerolog.Ctx(ctx).Error().Err(err).Int("status", status).Msg("request failed")
	respondJSON(ctx, w, status, map[string]string{"error": err.Error()})
}
