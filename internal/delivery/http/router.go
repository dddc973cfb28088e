package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventbuddy/internal/adapters/ical"
	"eventbuddy/internal/delivery/http/controllers"
	"eventbuddy/internal/delivery/http/middleware"
	"eventbuddy/internal/domain"
)

// RouterConfig carries what the router needs beyond the store.
type RouterConfig struct {
	// Verifier guards mutating routes. Nil leaves them open.
	Verifier       domain.TokenVerifier
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(logger *slog.Logger, store domain.PlannerService, cfg RouterConfig) http.Handler {
	events := controllers.NewEventController(logger, store)
	participants := controllers.NewParticipantController(logger, store)
	tags := controllers.NewTagController(logger, store)
	filters := controllers.NewFilterController(logger, store)
	selection := controllers.NewSelectionController(logger, store)
	calendar := controllers.NewCalendarController(logger, store, ical.NewExporter(store))
	notifications := controllers.NewNotificationController(logger, store)
	status := controllers.NewStatusController(store)
	auth := middleware.RequireAuth(cfg.Verifier)

	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", events.ListEvents)
	mux.HandleFunc("POST /events", auth(events.CreateEvent))
	mux.HandleFunc("GET /events.ics", calendar.ExportEvents)
	mux.HandleFunc("GET /events/{eventID}", events.GetEvent)
	mux.HandleFunc("PATCH /events/{eventID}", auth(events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(events.DeleteEvent))

	// Participants
	mux.HandleFunc("GET /participants", participants.ListParticipants)
	mux.HandleFunc("POST /participants", auth(participants.CreateParticipant))
	mux.HandleFunc("GET /participants/{participantID}", participants.GetParticipant)
	mux.HandleFunc("PATCH /participants/{participantID}", auth(participants.UpdateParticipant))
	mux.HandleFunc("DELETE /participants/{participantID}", auth(participants.DeleteParticipant))
	mux.HandleFunc("GET /participants/{participantID}/events", participants.ListParticipantEvents)

	// Tags
	mux.HandleFunc("GET /tags", tags.ListTags)
	mux.HandleFunc("POST /tags", auth(tags.CreateTag))
	mux.HandleFunc("GET /tags/{tagID}", tags.GetTag)
	mux.HandleFunc("PATCH /tags/{tagID}", auth(tags.UpdateTag))
	mux.HandleFunc("DELETE /tags/{tagID}", auth(tags.DeleteTag))
	mux.HandleFunc("GET /tags/{tagID}/events", tags.ListTagEvents)

	// View state
	mux.HandleFunc("GET /filters", filters.GetFilters)
	mux.HandleFunc("PUT /filters", auth(filters.UpdateFilters))
	mux.HandleFunc("GET /selection/{kind}", selection.GetSelection)
	mux.HandleFunc("PUT /selection/{kind}", auth(selection.UpdateSelection))
	mux.HandleFunc("GET /notifications", notifications.Stream)
	mux.HandleFunc("GET /status", status.GetStatus)

	// Metrics
	if cfg.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))
}
