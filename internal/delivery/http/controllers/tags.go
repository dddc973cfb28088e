package controllers

import (
	"log/slog"
	"net/http"

	"eventbuddy/internal/delivery/http/helpers"
	"eventbuddy/internal/domain"
)

// CreateTagRequest is the request body for POST /tags.
type CreateTagRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Validate implements Validator.
func (c CreateTagRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	return errs
}

// TagSuccessResponse is the success envelope for single tag responses.
type TagSuccessResponse struct {
	Data  *domain.Tag       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListTagsResponse is the data for GET /tags.
type ListTagsResponse struct {
	Items      []*domain.Tag          `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type TagController struct {
	Logger *slog.Logger
	Store  domain.PlannerService
}

func NewTagController(logger *slog.Logger, store domain.PlannerService) *TagController {
	return &TagController{
		Logger: logger,
		Store:  store,
	}
}

// ListTags godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListTagsResponse
// @Router /tags [get]
func (c *TagController) ListTags(w http.ResponseWriter, r *http.Request) {
	items, meta := helpers.Page(c.Store.Tags(), helpers.ParsePagination(r))
	helpers.WriteJSONSuccess(w, http.StatusOK, ListTagsResponse{Items: items, Pagination: meta})
}

// CreateTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tag body CreateTagRequest true "Tag data"
// @Success 201 {object} controllers.TagSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /tags [post]
func (c *TagController) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tag, err := c.Store.AddTag(domain.Tag{ID: req.ID, Title: req.Title})
	if err != nil {
		writeStoreError(c.Logger, w, r, domain.KindTag, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, tag)
}

// GetTag godoc
// @Summary Get a tag by ID
// @Tags tags
// @Produce json
// @Param tagID path string true "Tag ID"
// @Success 200 {object} controllers.TagSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tags/{tagID} [get]
func (c *TagController) GetTag(w http.ResponseWriter, r *http.Request) {
	tag, ok := c.Store.GetTagByID(r.PathValue("tagID"))
	if !ok {
		writeNotFound(w, domain.KindTag)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tag)
}

// UpdateTag godoc
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tagID path string true "Tag ID"
// @Param tag body domain.TagPatch true "Fields to change"
// @Success 200 {object} controllers.TagSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tags/{tagID} [patch]
func (c *TagController) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var patch domain.TagPatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	tag, err := c.Store.UpdateTag(r.PathValue("tagID"), patch)
	if err != nil {
		writeStoreError(c.Logger, w, r, domain.KindTag, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary Delete a tag
// @Description Refused with 409 while any event carries the tag.
// @Tags tags
// @Security BearerAuth
// @Param tagID path string true "Tag ID"
// @Success 204 "deleted"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /tags/{tagID} [delete]
func (c *TagController) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := c.Store.DeleteTag(r.PathValue("tagID")); err != nil {
		writeStoreError(c.Logger, w, r, domain.KindTag, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTagEvents godoc
// @Summary List the events carrying a tag
// @Tags tags
// @Produce json
// @Param tagID path string true "Tag ID"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tags/{tagID}/events [get]
func (c *TagController) ListTagEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("tagID")
	if _, ok := c.Store.GetTagByID(id); !ok {
		writeNotFound(w, domain.KindTag)
		return
	}
	writeEventList(w, r, c.Store.EventsForTag(id))
}
