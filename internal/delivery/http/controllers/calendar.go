package controllers

import (
	"log/slog"
	"net/http"

	"eventbuddy/internal/adapters/ical"
	"eventbuddy/internal/domain"
)

type CalendarController struct {
	Logger   *slog.Logger
	Store    domain.EventStore
	Exporter *ical.Exporter
}

func NewCalendarController(logger *slog.Logger, store domain.EventStore, exporter *ical.Exporter) *CalendarController {
	return &CalendarController{
		Logger:   logger,
		Store:    store,
		Exporter: exporter,
	}
}

// ExportEvents godoc
// @Summary Export events as iCalendar
// @Description Events without a parseable datetime are skipped. With filtered=true only events passing the current filters are exported.
// @Tags events
// @Produce text/calendar
// @Param filtered query bool false "Apply the current filters"
// @Success 200 {string} string "text/calendar feed"
// @Router /events.ics [get]
func (c *CalendarController) ExportEvents(w http.ResponseWriter, r *http.Request) {
	events := c.Store.Events()
	if r.URL.Query().Get("filtered") == "true" {
		events = c.Store.FilteredEvents()
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="events.ics"`)
	if err := c.Exporter.Encode(w, events); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}
