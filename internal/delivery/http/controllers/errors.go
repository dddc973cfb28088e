package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventbuddy/internal/delivery/http/helpers"
	"eventbuddy/internal/domain"
)

// writeStoreError maps store errors to the API envelope. Anything unexpected
// is logged and reported as internal_error.
func writeStoreError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, kind domain.EntityKind, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, string(kind)+" not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrReferenced):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

func writeNotFound(w http.ResponseWriter, kind domain.EntityKind) {
	helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, string(kind)+" not found")
}
