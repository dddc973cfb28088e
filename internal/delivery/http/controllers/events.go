package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventbuddy/internal/delivery/http/helpers"
	"eventbuddy/internal/domain"
)

// CreateEventRequest is the request body for POST /events. The id is
// generated when omitted.
type CreateEventRequest struct {
	ID           string                   `json:"id"`
	Title        string                   `json:"title"`
	Description  string                   `json:"description"`
	Datetime     string                   `json:"datetime"`
	Location     string                   `json:"location"`
	Status       domain.EventStatus       `json:"status"`
	TagIDs       []string                 `json:"tagIds"`
	Participants []domain.ParticipantLink `json:"participants"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	return errs
}

func (c CreateEventRequest) toDomain() domain.Event {
	return domain.Event{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Datetime:     c.Datetime,
		Location:     c.Location,
		Status:       c.Status,
		TagIDs:       c.TagIDs,
		Participants: c.Participants,
	}
}

// EventSuccessResponse is the success envelope for single event responses.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsResponse is the data for GET /events.
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success envelope for event lists.
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type EventController struct {
	Logger *slog.Logger
	Store  domain.PlannerService
}

func NewEventController(logger *slog.Logger, store domain.PlannerService) *EventController {
	return &EventController{
		Logger: logger,
		Store:  store,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns events in insertion order. With filtered=true the current status, tag and participant filters are applied.
// @Tags events
// @Produce json
// @Param filtered query bool false "Apply the current filters"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filtered := false
	if s := r.URL.Query().Get("filtered"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid filtered parameter")
			return
		}
		filtered = v
	}
	var events []*domain.Event
	if filtered {
		events = c.Store.FilteredEvents()
	} else {
		events = c.Store.Events()
	}
	writeEventList(w, r, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Adds an event and selects it. Tag and participant ids must exist.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Store.AddEvent(req.toDomain())
	if err != nil {
		writeStoreError(c.Logger, w, r, domain.KindEvent, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := c.Store.GetEventByID(r.PathValue("eventID"))
	if !ok {
		writeNotFound(w, domain.KindEvent)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies the fields present in the body. tagIds and participants replace the stored lists wholesale.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body domain.EventPatch true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch domain.EventPatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	event, err := c.Store.UpdateEvent(r.PathValue("eventID"), patch)
	if err != nil {
		writeStoreError(c.Logger, w, r, domain.KindEvent, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "deleted"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := c.Store.DeleteEvent(r.PathValue("eventID")); err != nil {
		writeStoreError(c.Logger, w, r, domain.KindEvent, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeEventList answers reverse lookups with a paginated event list.
func writeEventList(w http.ResponseWriter, r *http.Request, events []*domain.Event) {
	items, meta := helpers.Page(events, helpers.ParsePagination(r))
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: items, Pagination: meta})
}
