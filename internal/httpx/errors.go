package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"libraryapi/internal/apperr"
)

// Error writes the response for a service error. Known kinds map to 4xx with
// the error text as message; anything else is logged and answered with 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		JSONError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, apperr.ErrUnauthorized):
		Unauthorized(w, r)
	case errors.Is(err, apperr.ErrForbidden):
		JSONError(w, r, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, apperr.ErrInvalidOperation):
		JSONError(w, r, http.StatusBadRequest, "INVALID_OPERATION", err.Error(), nil)
	case errors.Is(err, apperr.ErrConflict):
		JSONError(w, r, http.StatusConflict, "CONFLICT", err.Error(), nil)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r),
			"error", err,
		)
		JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// Unauthorized answers 401 with a bearer challenge. The message never says why.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials", nil)
}
