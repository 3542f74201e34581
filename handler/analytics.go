package handler

import (
	"context"
	"net/http"
	"sort"

	"github.com/3dimaging/personal-website-analytics/model"
	"github.com/rs/zerolog/log"
)

// GetAnalytics handles GET /api/analytics
// @Summary Get aggregate analytics
// @Description Returns total/mobile/desktop visit counts and the full event list
// @Tags Analytics
// @Produce json
// @Success 200 {object} model.AnalyticsSummary "Aggregated analytics"
// @Failure 500 {object} model.StatusResponse "Storage read failure"
// @Router /api/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	visits, err := h.store.ListVisits(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read visits")
		SendJSONError(w, http.StatusInternalServerError, err)
		return
	}

	events, err := h.store.ListEvents(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read events")
		SendJSONError(w, http.StatusInternalServerError, err)
		return
	}

	summary := model.AnalyticsSummary{
		TotalVisits: len(visits),
		Events:      make([]model.EventRecord, 0, len(events)),
	}
	for _, visit := range visits {
		if visit.IsMobile {
			summary.MobileVisits++
		} else {
			summary.DesktopVisits++
		}
	}
	for _, event := range events {
		summary.Events = append(summary.Events, model.EventRecord{
			Type: event.EventType,
			Data: event.EventData,
		})
	}

	SendJSONSuccess(w, http.StatusOK, summary)
}

// visitSeries groups visits by the calendar date of their stored timestamp
// and returns ascending distinct dates with a parallel count list.
func visitSeries(visits []model.Visit) []model.TimeSeriesPoint {
	countsByDate := make(map[string]int)
	for _, visit := range visits {
		date := visit.Timestamp.Format("2006-01-02")
		countsByDate[date]++
	}

	dates := make([]string, 0, len(countsByDate))
	for date := range countsByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]model.TimeSeriesPoint, 0, len(dates))
	for _, date := range dates {
		series = append(series, model.TimeSeriesPoint{Date: date, Count: countsByDate[date]})
	}
	return series
}
