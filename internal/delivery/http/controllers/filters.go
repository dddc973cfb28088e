package controllers

import (
	"log/slog"
	"net/http"

	"eventbuddy/internal/delivery/http/helpers"
	"eventbuddy/internal/domain"
)

// UpdateFiltersRequest is the request body for PUT /filters. Omitted fields
// keep their current value; "all" disables a dimension.
type UpdateFiltersRequest struct {
	Status      *string `json:"status"`
	Tag         *string `json:"tag"`
	Participant *string `json:"participant"`
}

// FiltersSuccessResponse is the success envelope for filter responses.
type FiltersSuccessResponse struct {
	Data  domain.EventFilter `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type FilterController struct {
	Logger *slog.Logger
	Store  domain.FilterStore
}

func NewFilterController(logger *slog.Logger, store domain.FilterStore) *FilterController {
	return &FilterController{
		Logger: logger,
		Store:  store,
	}
}

// GetFilters godoc
// @Summary Get the current event filters
// @Tags filters
// @Produce json
// @Success 200 {object} controllers.FiltersSuccessResponse
// @Router /filters [get]
func (c *FilterController) GetFilters(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Store.Filters())
}

// UpdateFilters godoc
// @Summary Change event filters
// @Description Sets the given dimensions. The status must be all, planned or done.
// @Tags filters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param filters body UpdateFiltersRequest true "Filter values"
// @Success 200 {object} controllers.FiltersSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /filters [put]
func (c *FilterController) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var req UpdateFiltersRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.Status != nil {
		if err := c.Store.SetStatusFilter(*req.Status); err != nil {
			writeStoreError(c.Logger, w, r, domain.KindEvent, err)
			return
		}
	}
	if req.Tag != nil {
		c.Store.SetTagFilter(*req.Tag)
	}
	if req.Participant != nil {
		c.Store.SetParticipantFilter(*req.Participant)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Store.Filters())
}
