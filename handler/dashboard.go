package handler

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/3dimaging/personal-website-analytics/model"
	"github.com/rs/zerolog/log"
)

//go:embed dashboard.html
var dashboardHTML string

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardHTML))

type dashboardData struct {
	TotalVisits   int
	MobileVisits  int
	DesktopVisits int
	TotalEvents   int
	Dates         template.JS
	Counts        template.JS
}

// Dashboard handles GET /dashboard
// @Summary Analytics dashboard
// @Description Renders the dashboard page with visit totals and a visits-per-day chart
// @Tags Analytics
// @Produce html
// @Success 200 {string} html "Dashboard page"
// @Failure 500 {string} string "Storage read or render failure"
// @Router /dashboard [get]
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	visits, err := h.store.ListVisits(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read visits for dashboard")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	events, err := h.store.ListEvents(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read events for dashboard")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := buildDashboardData(visits, len(events))
	if err != nil {
		log.Error().Err(err).Msg("Failed to build dashboard data")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Render to a buffer first so a template failure never emits a torn page.
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		log.Error().Err(err).Msg("Failed to render dashboard")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Write(buf.Bytes())
}

func buildDashboardData(visits []model.Visit, totalEvents int) (dashboardData, error) {
	data := dashboardData{
		TotalVisits: len(visits),
		TotalEvents: totalEvents,
	}
	for _, visit := range visits {
		if visit.IsMobile {
			data.MobileVisits++
		} else {
			data.DesktopVisits++
		}
	}

	series := visitSeries(visits)
	dates := make([]string, 0, len(series))
	counts := make([]int, 0, len(series))
	for _, point := range series {
		dates = append(dates, point.Date)
		counts = append(counts, point.Count)
	}

	datesJSON, err := json.Marshal(dates)
	if err != nil {
		return data, err
	}
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return data, err
	}
	data.Dates = template.JS(datesJSON)
	data.Counts = template.JS(countsJSON)
	return data, nil
}
