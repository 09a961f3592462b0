package scans

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/api"
	"github.com/grc-tools/control-atlas/pkg/services/scan"
	"github.com/rs/zerolog"
)

type Handler struct {
	controller scan.Controller
}

func NewHandler(controller scan.Controller) *Handler {
	return &Handler{controller: controller}
}

func (h *Handler) ListScans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scans, err := h.controller.List(ctx)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, err)
		return
	}

	response := make([]api.Scan, 0, len(scans))
	for _, s := range scans {
		response = append(response, adapters.MapScanDomainToApi(s))
	}
	respondJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) StartScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request api.StartScanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(ctx, w, http.StatusBadRequest, err)
		return
	}
	if request.Profile == "" {
		respondError(ctx, w, http.StatusBadRequest, fmt.Errorf("profile is required"))
		return
	}

	started, err := h.controller.Start(ctx, request.Profile)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, adapters.MapScanDomainToApi(started))
}

func (h *Handler) CancelScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile := chi.URLParam(r, "profile")

	if err := h.controller.Cancel(ctx, profile); err != nil {
		respondError(ctx, w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetScanResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile := chi.URLParam(r, "profile")

	results, err := h.controller.Results(ctx, profile)
	if err != nil {
		respondError(ctx, w, http.StatusNotFound, err)
		return
	}

	response := make([]api.ControlResult, 0, len(results))
	for _, result := range results {
		response = append(response, adapters.MapControlResultDomainToApi(result))
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
