package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/3dimaging/personal-website-analytics/model"
	"github.com/rs/zerolog/log"
)

const defaultScreenResolution = "unknown"

// decodeBody decodes an optional JSON request body. An empty body is valid
// and leaves dst untouched so field defaults apply.
func decodeBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// TrackVisit handles POST /api/track-visit
// @Summary Record a page visit
// @Description Stores one visit beacon. Missing fields fall back to defaults; nothing is rejected.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param visit body model.TrackVisitRequest false "Visit beacon"
// @Success 200 {object} model.StatusResponse "Visit stored"
// @Failure 500 {object} model.StatusResponse "Decode or storage failure"
// @Router /api/track-visit [post]
func (h *AnalyticsHandler) TrackVisit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var payload model.TrackVisitRequest
	if err := decodeBody(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Malformed track-visit payload")
		SendJSONError(w, http.StatusInternalServerError, err)
		return
	}

	visit := model.Visit{
		Timestamp:        time.Now().UTC(),
		IsMobile:         false,
		ScreenResolution: defaultScreenResolution,
	}
	if payload.IsMobile != nil {
		visit.IsMobile = *payload.IsMobile
	}
	if payload.ScreenResolution != nil {
		visit.ScreenResolution = *payload.ScreenResolution
	}

	if err := h.store.InsertVisit(ctx, visit); err != nil {
		log.Error().Err(err).Msg("Failed to store visit")
		SendJSONError(w, http.StatusInternalServerError, err)
		return
	}

	log.Debug().
		Bool("is_mobile", visit.IsMobile).
		Str("screen_resolution", visit.ScreenResolution).
		Msg("Visit recorded")

	SendJSONSuccess(w, http.StatusOK, model.StatusResponse{Status: "success"})
}

// TrackEvent handles POST /api/track-event
// @Summary Record a client event
// @Description Stores one event beacon. Type and data are optional; data is stored opaquely without validation.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param event body model.TrackEventRequest false "Event beacon"
// @Success 200 {object} model.StatusResponse "Event stored"
// @Failure 500 {object} model.StatusResponse "Decode or storage failure"
// @Router /api/track-event [post]
func (h *AnalyticsHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var payload model.TrackEventRequest
	if err := decodeBody(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Malformed track-event payload")
		SendJSONError(w, http.StatusInternalServerError, err)
		return
	}

	event := model.Event{
		Timestamp: time.Now().UTC(),
		EventType: payload.Type,
		EventData: payload.Data,
	}

	if err := h.store.InsertEvent(ctx, event); err != nil {
		log.Error().Err(err).Msg("Failed to store event")
		SendJSONError(w, http.StatusInternalServerError, err)
		return
	}

	SendJSONSuccess(w, http.StatusOK, model.StatusResponse{Status: "success"})
}
