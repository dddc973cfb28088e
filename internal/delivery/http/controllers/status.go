package controllers

import (
	"net/http"

	"eventbuddy/internal/delivery/http/helpers"
	"eventbuddy/internal/domain"
)

// StatusResponse reports readiness and collection sizes.
type StatusResponse struct {
	Ready        bool `json:"ready"`
	Events       int  `json:"events"`
	Participants int  `json:"participants"`
	Tags         int  `json:"tags"`
}

type StatusController struct {
	Store domain.PlannerService
}

func NewStatusController(store domain.PlannerService) *StatusController {
	return &StatusController{Store: store}
}

// GetStatus godoc
// @Summary Store readiness
// @Tags status
// @Produce json
// @Success 200 {object} controllers.StatusResponse
// @Router /status [get]
func (c *StatusController) GetStatus(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{
		Ready:        c.Store.Ready(),
		Events:       c.Store.Count(domain.KindEvent),
		Participants: c.Store.Count(domain.KindParticipant),
		Tags:         c.Store.Count(domain.KindTag),
	})
}
