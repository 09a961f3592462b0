package registers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/api"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/rs/zerolog"
)

const defaultSummaryLimit = 25

// Query params with a meaning of their own; everything else is read
// as a dimension filter.
var reservedParams = map[string]struct{}{
	"group_by": {},
	"measure":  {},
	"agg":      {},
	"sort_by":  {},
	"limit":    {},
	"format":   {},
}

type Handler struct {
	explorer registers.Explorer
}

func NewHandler(explorer registers.Explorer) *Handler {
	return &Handler{explorer: explorer}
}

func (h *Handler) ListRegisters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := make([]api.Register, 0)
	for _, register := range h.explorer.ListRegisters(ctx) {
		response = append(response, adapters.MapRegisterDomainToApi(register))
	}
	respondJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	register := chi.URLParam(r, "register")

	records, err := h.explorer.GetRecords(ctx, register, filtersFromQuery(r))
	if err != nil {
		respondError(ctx, w, http.StatusNotFound, err)
		return
	}

	response := make([]api.RegisterRecord, 0, len(records))
	for _, record := range records {
		response = append(response, adapters.MapDomainRecordToApi(record))
	}
	respondJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	register := chi.URLParam(r, "register")

	var request api.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(ctx, w, http.StatusBadRequest, err)
		return
	}

	record, err := h.explorer.AddRecord(ctx, register, domain.RegisterRecord{
		Name:     request.Name,
		Dims:     request.Dims,
		Measures: request.Measures,
		DueAt:    request.DueAt,
	})
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, adapters.MapDomainRecordToApi(record))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	register := chi.URLParam(r, "register")

	query := domain.SummaryQuery{
		Measure:     r.URL.Query().Get("measure"),
		Aggregation: domain.AggregationCount,
		SortBy:      r.URL.Query().Get("sort_by"),
		Limit:       defaultSummaryLimit,
		Filters:     filtersFromQuery(r),
	}
	if groupBy := r.URL.Query().Get("group_by"); groupBy != "" {
		query.GroupBy = strings.Split(groupBy, ",")
	}
	if agg := r.URL.Query().Get("agg"); agg != "" {
		query.Aggregation = domain.Aggregation(agg)
	}
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			respondError(ctx, w, http.StatusBadRequest, err)
			return
		}
		query.Limit = limit
	}

	summary, err := h.explorer.GetSummary(ctx, register, query)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, adapters.MapSummaryDomainToApi(summary))
}

func (h *Handler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	register := chi.URLParam(r, "register")

	format := domain.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = domain.ExportFormatCSV
	}
	if !format.IsValid() {
		respondError(ctx, w, http.StatusBadRequest, fmt.Errorf("unsupported export format: %s", format))
		return
	}

	var buf bytes.Buffer
	filename, err := h.explorer.Export(ctx, register, format, filtersFromQuery(r), &buf)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", format.MimeType())
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error().Err(err).Str("register", register).Msg("failed to write export")
	}
}

func filtersFromQuery(r *http.Request) domain.Filters {
	dims := make(map[string][]string)
	for key, values := range r.URL.Query() {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}
		dims[key] = values
	}
	return domain.Filters{Dimensions: dims}
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
