package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/3dimaging/personal-website-analytics/config"
	"github.com/3dimaging/personal-website-analytics/model"
	"github.com/3dimaging/personal-website-analytics/storage"
	"github.com/rs/zerolog/log"
)

const defaultRequestTimeout = 10 * time.Second

// AnalyticsHandler handles beacon ingestion and aggregate reads
type AnalyticsHandler struct {
	store  *storage.Store
	config config.Config
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(store *storage.Store, cfg config.Config) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:  store,
		config: cfg,
	}
}

// requestTimeout returns the per-request storage deadline from the
// configuration, falling back to the built-in default.
func (h *AnalyticsHandler) requestTimeout() time.Duration {
	if h.config.WebServer.RequestTimeout > 0 {
		return time.Duration(h.config.WebServer.RequestTimeout) * time.Second
	}
	return defaultRequestTimeout
}

// Root handles GET /
// @Summary Service status
// @Description Returns a liveness marker so uptime monitors have something to poll
// @Tags System
// @Produce json
// @Success 200 {object} model.StatusResponse "Service is up"
// @Router / [get]
func (h *AnalyticsHandler) Root(w http.ResponseWriter, r *http.Request) {
	SendJSONSuccess(w, http.StatusOK, model.StatusResponse{
		Status:  "ok",
		Message: "analytics service running",
	})
}

// HealthCheck handles GET /health
// @Summary Health check
// @Description Returns service health status and database connectivity
// @Tags System
// @Produce json
// @Success 200 {object} model.StatusResponse "Service is healthy"
// @Failure 503 {object} model.StatusResponse "Service is unhealthy"
// @Router /health [get]
func (h *AnalyticsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		SendJSONError(w, http.StatusServiceUnavailable, err)
		return
	}

	SendJSONSuccess(w, http.StatusOK, model.StatusResponse{
		Status:  "ok",
		Message: "database connected",
	})
}
