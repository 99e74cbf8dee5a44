package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventadmission/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Checked in order; the first sentinel matched by errors.Is wins.
var serviceErrors = []errorMapping{
	{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
	{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
	{domain.ErrCapacityExceeded, http.StatusConflict, ErrCodeCapacityExceeded},
	{domain.ErrInvalidTransition, http.StatusConflict, ErrCodeInvalidTransition},
	{domain.ErrConflict, http.StatusConflict, ErrCodeConflict},
	{domain.ErrUnsupportedAction, http.StatusBadRequest, ErrCodeUnsupportedAction},
	{domain.ErrValidation, http.StatusBadRequest, ErrCodeBadRequest},
	{domain.ErrBusy, http.StatusServiceUnavailable, ErrCodeBusy},
}

// WriteServiceError translates a service error into the JSON error envelope.
// Known domain errors keep their message; anything else is logged and answered with 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			if m.status == http.StatusServiceUnavailable {
				w.Header().Set("Retry-After", "1")
			}
			WriteJSONError(w, m.status, m.code, err.Error())
			return
		}
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}
