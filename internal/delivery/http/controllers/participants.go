package controllers

import (
	"log/slog"
	"net/http"

	"eventbuddy/internal/delivery/http/helpers"
	"eventbuddy/internal/domain"
)

// CreateParticipantRequest is the request body for POST /participants.
type CreateParticipantRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Validate implements Validator.
func (c CreateParticipantRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Email == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// ParticipantSuccessResponse is the success envelope for single participant responses.
type ParticipantSuccessResponse struct {
	Data  *domain.Participant `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListParticipantsResponse is the data for GET /participants.
type ListParticipantsResponse struct {
	Items      []*domain.Participant  `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type ParticipantController struct {
	Logger *slog.Logger
	Store  domain.PlannerService
}

func NewParticipantController(logger *slog.Logger, store domain.PlannerService) *ParticipantController {
	return &ParticipantController{
		Logger: logger,
		Store:  store,
	}
}

// ListParticipants godoc
// @Summary List participants
// @Tags participants
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListParticipantsResponse
// @Router /participants [get]
func (c *ParticipantController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	items, meta := helpers.Page(c.Store.Participants(), helpers.ParsePagination(r))
	helpers.WriteJSONSuccess(w, http.StatusOK, ListParticipantsResponse{Items: items, Pagination: meta})
}

// CreateParticipant godoc
// @Summary Create a participant
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participant body CreateParticipantRequest true "Participant data"
// @Success 201 {object} controllers.ParticipantSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /participants [post]
func (c *ParticipantController) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req CreateParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participant, err := c.Store.AddParticipant(domain.Participant{ID: req.ID, Name: req.Name, Email: req.Email, Avatar: req.Avatar})
	if err != nil {
		writeStoreError(c.Logger, w, r, domain.KindParticipant, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, participant)
}

// GetParticipant godoc
// @Summary Get a participant by ID
// @Tags participants
// @Produce json
// @Param participantID path string true "Participant ID"
// @Success 200 {object} controllers.ParticipantSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /participants/{participantID} [get]
func (c *ParticipantController) GetParticipant(w http.ResponseWriter, r *http.Request) {
	participant, ok := c.Store.GetParticipantByID(r.PathValue("participantID"))
	if !ok {
		writeNotFound(w, domain.KindParticipant)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}

// UpdateParticipant godoc
// @Summary Update a participant
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participantID path string true "Participant ID"
// @Param participant body domain.ParticipantPatch true "Fields to change"
// @Success 200 {object} controllers.ParticipantSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /participants/{participantID} [patch]
func (c *ParticipantController) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	var patch domain.ParticipantPatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	participant, err := c.Store.UpdateParticipant(r.PathValue("participantID"), patch)
	if err != nil {
		writeStoreError(c.Logger, w, r, domain.KindParticipant, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}

// DeleteParticipant godoc
// @Summary Delete a participant
// @Description Refused with 409 while any event links to the participant.
// @Tags participants
// @Security BearerAuth
// @Param participantID path string true "Participant ID"
// @Success 204 "deleted"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /participants/{participantID} [delete]
func (c *ParticipantController) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	if err := c.Store.DeleteParticipant(r.PathValue("participantID")); err != nil {
		writeStoreError(c.Logger, w, r, domain.KindParticipant, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListParticipantEvents godoc
// @Summary List the events a participant is linked to
// @Tags participants
// @Produce json
// @Param participantID path string true "Participant ID"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /participants/{participantID}/events [get]
func (c *ParticipantController) ListParticipantEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("participantID")
	if _, ok := c.Store.GetParticipantByID(id); !ok {
		writeNotFound(w, domain.KindParticipant)
		return
	}
	writeEventList(w, r, c.Store.EventsForParticipant(id))
}
