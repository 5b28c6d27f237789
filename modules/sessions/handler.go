package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sportkit/pkg/session"
)

// identityHeader carries the authenticated participant id, set by the
// authenticating layer in front of this service.
const identityHeader = "X-Participant-ID"

// Handler exposes the session service over HTTP.
type Handler struct {
	svc *session.Service
}

// NewHandler creates an HTTP handler backed by the given service.
func NewHandler(svc *session.Service) *Handler {
	return &Handler{svc: svc}
}

// Handle returns the module router, ready to mount:
//
//	r.Mount("/sessions", sessions.NewHandler(svc).Handle())
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/sports", h.sports)
	r.Post("/{sessionID}/join", h.join)
	r.Post("/{sessionID}/cancel", h.cancel)

	return r
}

type createRequest struct {
	Title         string    `json:"title"`
	Sport         string    `json:"sport"`
	Venue         string    `json:"venue"`
	TeamA         string    `json:"team_a"`
	TeamB         string    `json:"team_b"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	CapacityTotal int       `json:"capacity_total"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type sessionResponse struct {
	Session *session.Session `json:"session"`
	Warning string           `json:"warning,omitempty"`
}

type listResponse struct {
	Sessions []*session.Session `json:"sessions"`
}

type sportsResponse struct {
	Sports []string `json:"sports"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.svc.ListSessions(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Sessions: out})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actorID, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}

	result, err := h.svc.CreateSession(r.Context(), session.CreateSessionParams{
		Title:         req.Title,
		Sport:         req.Sport,
		Venue:         req.Venue,
		TeamA:         req.TeamA,
		TeamB:         req.TeamB,
		ScheduledAt:   req.ScheduledAt,
		CapacityTotal: req.CapacityTotal,
		CreatorID:     actorID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resultResponse(result))
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request) {
	actorID, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.JoinSession(r.Context(), chi.URLParam(r, "sessionID"), actorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse(result))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	actorID, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}

	result, err := h.svc.CancelSession(r.Context(), chi.URLParam(r, "sessionID"), actorID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse(result))
}

func (h *Handler) sports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.svc.Sports(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sportsResponse{Sports: sports})
}

func resultResponse(result session.Result) sessionResponse {
	resp := sessionResponse{Session: result.Session}
	if result.Warning != nil {
		resp.Warning = result.Warning.Error()
	}
	return resp
}

// filterFromQuery maps the list query parameters onto a session filter.
// The status parameter accepts the display statuses plus the temporal
// shortcuts "upcoming" and "past"; "mine" narrows to sessions the caller
// created or joined and requires the identity header.
func filterFromQuery(r *http.Request) (session.Filter, error) {
	q := r.URL.Query()

	filter := session.Filter{
		Text:  strings.TrimSpace(q.Get("q")),
		Sport: strings.TrimSpace(q.Get("sport")),
	}

	switch status := q.Get("status"); status {
	case "", "all":
	case "upcoming":
		filter.Temporal = session.TemporalUpcoming
	case "past":
		filter.Temporal = session.TemporalPast
	case "active":
		filter.Status = session.StatusActive
	case "cancelled":
		filter.Status = session.StatusCancelled
	case "completed":
		filter.Status = session.StatusCompleted
	default:
		return session.Filter{}, errBadRequest
	}

	switch mine := q.Get("mine"); mine {
	case "":
	case "created":
		actorID, err := identity(r)
		if err != nil {
			return session.Filter{}, err
		}
		filter.CreatorID = actorID
	case "joined":
		actorID, err := identity(r)
		if err != nil {
			return session.Filter{}, err
		}
		filter.ParticipantID = actorID
	default:
		return session.Filter{}, errBadRequest
	}

	return filter, nil
}

func identity(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.Header.Get(identityHeader))
	if id == "" {
		return "", errNoIdentity
	}
	return id, nil
}

var (
	errBadRequest = errors.New("sessions.bad_request")
	errNoIdentity = errors.New("sessions.no_identity")
)
