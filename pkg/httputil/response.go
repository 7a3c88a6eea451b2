package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/utafrali/ShopReviews/pkg/errors"
	"github.com/utafrali/ShopReviews/pkg/logger"
	"github.com/utafrali/ShopReviews/pkg/validator"
)

// Envelope is the standard JSON response shape for every endpoint: a
// boolean Ok flag, an error message when Ok is false, and an arbitrary
// payload merged in by the caller via the Extra map.
type Envelope struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Extra map[string]any
}

// MarshalJSON flattens Extra into the top-level object alongside ok/error.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Extra)+2)
	for k, v := range e.Extra {
		out[k] = v
	}
	out["ok"] = e.Ok
	if e.Error != "" {
		out["error"] = e.Error
	}
	return json.Marshal(out)
}

// WriteJSON writes a JSON response with the given status code.
// Headers are already sent if encoding fails, so the error is dropped.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteOK writes a 200 success envelope, merging payload into the top level.
func WriteOK(w http.ResponseWriter, payload map[string]any) {
	WriteJSON(w, http.StatusOK, Envelope{Ok: true, Extra: payload})
}

// WriteError writes a standardized error envelope based on the error type.
// Internal errors are logged with full detail and surfaced with a generic
// message; client errors pass their message through. It prefers the
// request-scoped logger from context over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	if status != http.StatusInternalServerError {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
		} else {
			message = err.Error()
		}
	} else {
		// Detail stays in the logs; the caller only sees the generic message.
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, Envelope{Ok: false, Error: message})
}

// WriteValidationError writes a 400 envelope for a failed request validation.
// ValidationError from the validator package produces a field-level message.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Envelope{Ok: false, Error: valErr.Error()})
		return
	}
	WriteJSON(w, http.StatusBadRequest, Envelope{Ok: false, Error: err.Error()})
}
