package controllers

import (
	"log/slog"
	"net/http"

	"eventbuddy/internal/delivery/http/helpers"
	"eventbuddy/internal/domain"
)

// SelectionRequest is the request body for PUT /selection/{kind}.
type SelectionRequest struct {
	Mode domain.SelectionMode `json:"mode" swaggertype:"string" enums:"none,create,selected"`
	ID   string               `json:"id"`
}

// Validate implements Validator.
func (s SelectionRequest) Validate() []string {
	if s.Mode == domain.SelectionRecord && s.ID == "" {
		return []string{"id is required when mode is selected"}
	}
	return nil
}

func (s SelectionRequest) toDomain() domain.Selection {
	switch s.Mode {
	case domain.SelectionCreate:
		return domain.CreateNew()
	case domain.SelectionRecord:
		return domain.SelectID(s.ID)
	}
	return domain.Unselected()
}

// SelectionResponse is the effective selection of one kind. Record is set only
// when a live record is selected.
type SelectionResponse struct {
	Kind   domain.EntityKind    `json:"kind"`
	Mode   domain.SelectionMode `json:"mode" swaggertype:"string" enums:"none,create,selected"`
	ID     string               `json:"id,omitempty"`
	Record any                  `json:"record,omitempty"`
}

type SelectionController struct {
	Logger *slog.Logger
	Store  domain.PlannerService
}

func NewSelectionController(logger *slog.Logger, store domain.PlannerService) *SelectionController {
	return &SelectionController{
		Logger: logger,
		Store:  store,
	}
}

// GetSelection godoc
// @Summary Get the selection of a kind
// @Tags selection
// @Produce json
// @Param kind path string true "events, participants or tags"
// @Success 200 {object} controllers.SelectionResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /selection/{kind} [get]
func (c *SelectionController) GetSelection(w http.ResponseWriter, r *http.Request) {
	kind, ok := domain.ParseEntityKind(r.PathValue("kind"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "unknown kind")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.current(kind))
}

// UpdateSelection godoc
// @Summary Change the selection of a kind
// @Description Selecting an unknown id clears the selection.
// @Tags selection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "events, participants or tags"
// @Param selection body SelectionRequest true "Selection"
// @Success 200 {object} controllers.SelectionResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /selection/{kind} [put]
func (c *SelectionController) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	kind, ok := domain.ParseEntityKind(r.PathValue("kind"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "unknown kind")
		return
	}
	var req SelectionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sel := req.toDomain()
	switch kind {
	case domain.KindEvent:
		c.Store.SelectEvent(sel)
	case domain.KindParticipant:
		c.Store.SelectParticipant(sel)
	case domain.KindTag:
		c.Store.SelectTag(sel)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.current(kind))
}

func (c *SelectionController) current(kind domain.EntityKind) SelectionResponse {
	var (
		record any
		sel    domain.Selection
	)
	switch kind {
	case domain.KindEvent:
		var e *domain.Event
		if e, sel = c.Store.CurrentEvent(); e != nil {
			record = e
		}
	case domain.KindParticipant:
		var p *domain.Participant
		if p, sel = c.Store.CurrentParticipant(); p != nil {
			record = p
		}
	case domain.KindTag:
		var t *domain.Tag
		if t, sel = c.Store.CurrentTag(); t != nil {
			record = t
		}
	}
	return SelectionResponse{Kind: kind, Mode: sel.Mode, ID: sel.ID, Record: record}
}
