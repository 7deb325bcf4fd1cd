package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"healthdata/internal/dispatch"
	"healthdata/internal/model"
	"healthdata/internal/providers"
	"healthdata/internal/resolver"
)

const defaultHistoryLimit = 50

type Handler struct {
	Service *dispatch.Service
}

type providerResponse struct {
	ID      model.ProviderID `json:"id"`
	Metrics []model.MetricID `json:"metrics"`
}

type metricResponse struct {
	ID       model.MetricID   `json:"id"`
	Provider model.ProviderID `json:"provider"`
}

type planResponse struct {
	Metrics        []model.MetricID   `json:"metrics"`
	Candidates     []model.ProviderID `json:"candidates"`
	Providers      []model.ProviderID `json:"providers"`
	SingleProvider bool               `json:"singleProvider"`
}

type resolutionResponse struct {
	ID         string             `json:"id"`
	Metrics    []model.MetricID   `json:"metrics"`
	Candidates []model.ProviderID `json:"candidates"`
	Providers  []model.ProviderID `json:"providers"`
	Outcome    model.Outcome      `json:"outcome"`
	Error      string             `json:"error,omitempty"`
	ResolvedAt time.Time          `json:"resolvedAt"`
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	list := h.Service.Resolver().Providers()
	resp := make([]providerResponse, 0, len(list))
	for _, provider := range list {
		resp = append(resp, toProviderResponse(provider))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetProvider(w http.ResponseWriter, r *http.Request) {
	id := model.ProviderID(chi.URLParam(r, "id"))
	provider, ok := h.Service.Resolver().Provider(id)
	if !ok {
		writeError(w, http.StatusNotFound, "provider not found")
		return
	}
	writeJSON(w, http.StatusOK, toProviderResponse(provider))
}

func (h *Handler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	res := h.Service.Resolver()
	metricIDs := res.Metrics()
	resp := make([]metricResponse, 0, len(metricIDs))
	for _, metricID := range metricIDs {
		providerID, _ := res.AuthoritativeProvider(metricID)
		resp = append(resp, metricResponse{ID: metricID, Provider: providerID})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Resolve accepts metrics as a comma-separated "metrics" parameter, repeated
// "metric" parameters, or both.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	metricIDs := metricsFromQuery(r)
	if len(metricIDs) == 0 {
		writeError(w, http.StatusBadRequest, "at least one metric is required")
		return
	}

	plan, err := h.Service.Resolve(r.Context(), metricIDs)
	if err != nil {
		switch {
		case errors.Is(err, resolver.ErrNoProviderFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, resolver.ErrUnsupportedJoinCardinality):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			log.WithError(err).Error("resolve failed")
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, planResponse{
		Metrics:        plan.Metrics,
		Candidates:     resolver.ProviderIDs(plan.Candidates),
		Providers:      resolver.ProviderIDs(plan.Providers),
		SingleProvider: plan.SingleProvider,
	})
}

func (h *Handler) ListResolutions(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	resolutions, err := h.Service.History(r.Context(), limit)
	if err != nil {
		log.WithError(err).Error("list resolutions failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]resolutionResponse, 0, len(resolutions))
	for _, resolution := range resolutions {
		resp = append(resp, resolutionResponse(resolution))
	}
	writeJSON(w, http.StatusOK, resp)
}

func metricsFromQuery(r *http.Request) []model.MetricID {
	query := r.URL.Query()
	var values []string
	for _, raw := range query["metrics"] {
		values = append(values, strings.Split(raw, ",")...)
	}
	values = append(values, query["metric"]...)

	ids := make([]model.MetricID, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		ids = append(ids, model.MetricID(value))
	}
	return ids
}

func toProviderResponse(provider providers.Provider) providerResponse {
	return providerResponse{ID: provider.ID(), Metrics: provider.ProvidesMetrics()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
