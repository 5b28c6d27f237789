package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/sportkit/pkg/session"
)

type errorResponse struct {
	Error   string     `json:"error"`
	Details url.Values `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError translates domain errors into HTTP statuses. Conflicts with the
// session's current state map to 409, a lost retry budget maps to 503 so
// clients know the request may succeed if repeated.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, errBadRequest):
		status, code = http.StatusBadRequest, "bad_request"
	case errors.Is(err, errNoIdentity):
		status, code = http.StatusUnauthorized, "no_identity"
	case errors.Is(err, session.ErrNotFound):
		status, code = http.StatusNotFound, session.ErrNotFound.Error()
	case errors.Is(err, session.ErrUnauthorized):
		status, code = http.StatusForbidden, session.ErrUnauthorized.Error()
	case errors.Is(err, session.ErrValidation):
		status, code = http.StatusUnprocessableEntity, session.ErrValidation.Error()
	case errors.Is(err, session.ErrClosed):
		status, code = http.StatusConflict, session.ErrClosed.Error()
	case errors.Is(err, session.ErrSlotsFull):
		status, code = http.StatusConflict, session.ErrSlotsFull.Error()
	case errors.Is(err, session.ErrAlreadyJoined):
		status, code = http.StatusConflict, session.ErrAlreadyJoined.Error()
	case errors.Is(err, session.ErrAlreadyClosed):
		status, code = http.StatusConflict, session.ErrAlreadyClosed.Error()
	case errors.Is(err, session.ErrContention):
		status, code = http.StatusServiceUnavailable, session.ErrContention.Error()
	}

	resp := errorResponse{Error: code}

	var ve session.ValidationError
	if errors.As(err, &ve) {
		resp.Details = url.Values(ve)
	}

	writeJSON(w, status, resp)
}
