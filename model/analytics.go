package model

import (
	"encoding/json"
	"time"
)

// Visit represents one recorded page-load beacon. Visits are append-only:
// nothing in the service updates or deletes them after insertion.
type Visit struct {
	ID               int64     `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	IsMobile         bool      `json:"is_mobile"`
	ScreenResolution string    `json:"screen_resolution"`
}

// Event represents one arbitrary client-side event. Type and Data are
// nullable; clients may submit untyped events and that is accepted as-is.
type Event struct {
	ID        int64           `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	EventType *string         `json:"event_type"`
	EventData json.RawMessage `json:"event_data"`
}

// TrackVisitRequest is the POST /api/track-visit payload. Pointer fields
// distinguish an absent value from a zero value so defaults apply only
// when the client omitted the field.
type TrackVisitRequest struct {
	IsMobile         *bool   `json:"isMobile"`
	ScreenResolution *string `json:"screenResolution"`
}

// TrackEventRequest is the POST /api/track-event payload. Data is kept as
// raw JSON and stored opaquely; no shape validation is performed.
type TrackEventRequest struct {
	Type *string         `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EventRecord is the event projection returned by the analytics endpoint.
type EventRecord struct {
	Type *string         `json:"type"`
	Data json.RawMessage `json:"data"`
}

// AnalyticsSummary is the GET /api/analytics response body.
type AnalyticsSummary struct {
	TotalVisits   int           `json:"total_visits"`
	MobileVisits  int           `json:"mobile_visits"`
	DesktopVisits int           `json:"desktop_visits"`
	Events        []EventRecord `json:"events"`
}

// TimeSeriesPoint represents a point in time-series data
type TimeSeriesPoint struct {
	Date  string `json:"date"`  // Date in "YYYY-MM-DD" format
	Count int    `json:"count"` // Number of visits on this date
}

// StatusResponse is the generic success/error wire shape shared by the
// ingestion endpoints and the root liveness check.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
