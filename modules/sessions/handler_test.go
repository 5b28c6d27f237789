package sessions_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sportkit/modules/sessions"
	"github.com/dmitrymomot/sportkit/pkg/session"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (http.Handler, *session.Service) {
	t.Helper()

	svc := session.NewService(session.WithClock(func() time.Time { return testNow }))
	return sessions.NewHandler(svc).Handle(), svc
}

func doJSON(t *testing.T, h http.Handler, method, target, actor string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	if actor != "" {
		req.Header.Set("X-Participant-ID", actor)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createBody() map[string]any {
	return map[string]any{
		"title":          "Friday Night Football",
		"sport":          "Football",
		"venue":          "Central Park Field A",
		"team_a":         "Red Team",
		"team_b":         "Blue Team",
		"scheduled_at":   testNow.Add(24 * time.Hour).Format(time.RFC3339),
		"capacity_total": 2,
	}
}

func createSession(t *testing.T, h http.Handler, creator string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/", creator, createBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Session session.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Session.ID)
	return resp.Session.ID
}

func TestCreateEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("creates a session", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		rec := doJSON(t, h, http.MethodPost, "/", "creator", createBody())
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

		var resp struct {
			Session session.Session `json:"session"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "creator", resp.Session.CreatorID)
		assert.Equal(t, session.StatusActive, resp.Session.Status)
	})

	t.Run("requires identity", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		rec := doJSON(t, h, http.MethodPost, "/", "", createBody())
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
		req.Header.Set("X-Participant-ID", "creator")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("surfaces validation details", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		body := createBody()
		body["title"] = ""
		body["scheduled_at"] = testNow.Add(-time.Hour).Format(time.RFC3339)

		rec := doJSON(t, h, http.MethodPost, "/", "creator", body)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Error   string              `json:"error"`
			Details map[string][]string `json:"details"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "session.validation", resp.Error)
		assert.Contains(t, resp.Details, "Title")
		assert.Contains(t, resp.Details, "ScheduledAt")
	})
}

func TestJoinEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("reserves a slot", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		id := createSession(t, h, "creator")

		rec := doJSON(t, h, http.MethodPost, "/"+id+"/join", "alice", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Session session.Session `json:"session"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"alice"}, resp.Session.Participants)
		assert.Equal(t, 1, resp.Session.CapacityFilled)
	})

	t.Run("requires identity", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		id := createSession(t, h, "creator")

		rec := doJSON(t, h, http.MethodPost, "/"+id+"/join", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		rec := doJSON(t, h, http.MethodPost, "/missing/join", "alice", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("duplicate join conflicts", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		id := createSession(t, h, "creator")

		require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/"+id+"/join", "alice", nil).Code)

		rec := doJSON(t, h, http.MethodPost, "/"+id+"/join", "alice", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("full session conflicts", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		id := createSession(t, h, "creator")

		require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/"+id+"/join", "p1", nil).Code)
		require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/"+id+"/join", "p2", nil).Code)

		rec := doJSON(t, h, http.MethodPost, "/"+id+"/join", "p3", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("creator joining own session is forbidden", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		id := createSession(t, h, "creator")

		rec := doJSON(t, h, http.MethodPost, "/"+id+"/join", "creator", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCancelEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("creator cancels", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		id := createSession(t, h, "creator")

		rec := doJSON(t, h, http.MethodPost, "/"+id+"/cancel", "creator", map[string]any{"reason": "venue unavailable"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Session session.Session `json:"session"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, session.StatusCancelled, resp.Session.Status)
		assert.Equal(t, "venue unavailable", resp.Session.CancelReason)
	})

	t.Run("non-creator is forbidden", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		id := createSession(t, h, "creator")

		rec := doJSON(t, h, http.MethodPost, "/"+id+"/cancel", "stranger", map[string]any{"reason": "because"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing reason is unprocessable", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		id := createSession(t, h, "creator")

		rec := doJSON(t, h, http.MethodPost, "/"+id+"/cancel", "creator", map[string]any{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("double cancel conflicts", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		id := createSession(t, h, "creator")

		require.Equal(t, http.StatusOK,
			doJSON(t, h, http.MethodPost, "/"+id+"/cancel", "creator", map[string]any{"reason": "first"}).Code)

		rec := doJSON(t, h, http.MethodPost, "/"+id+"/cancel", "creator", map[string]any{"reason": "second"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestListEndpoint(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (http.Handler, *session.Service) {
		t.Helper()

		h, svc := newTestHandler(t)
		ctx := context.Background()

		for i, sport := range []string{"Football", "Tennis", "Football"} {
			_, err := svc.CreateSession(ctx, session.CreateSessionParams{
				Title:         fmt.Sprintf("Match %d", i+1),
				Sport:         sport,
				Venue:         "Central Park",
				TeamA:         "A",
				TeamB:         "B",
				ScheduledAt:   testNow.Add(time.Duration(i+1) * time.Hour),
				CapacityTotal: 10,
				CreatorID:     "creator",
			})
			require.NoError(t, err)
		}
		return h, svc
	}

	decode := func(t *testing.T, rec *httptest.ResponseRecorder) []string {
		t.Helper()

		var resp struct {
			Sessions []session.Session `json:"sessions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		out := make([]string, len(resp.Sessions))
		for i, sess := range resp.Sessions {
			out[i] = sess.Title
		}
		return out
	}

	t.Run("lists everything", func(t *testing.T) {
		t.Parallel()

		h, _ := seed(t)
		rec := doJSON(t, h, http.MethodGet, "/", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"Match 1", "Match 2", "Match 3"}, decode(t, rec))
	})

	t.Run("filters by sport", func(t *testing.T) {
		t.Parallel()

		h, _ := seed(t)
		rec := doJSON(t, h, http.MethodGet, "/?sport=Tennis", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"Match 2"}, decode(t, rec))
	})

	t.Run("filters by text", func(t *testing.T) {
		t.Parallel()

		h, _ := seed(t)
		rec := doJSON(t, h, http.MethodGet, "/?q=match+2", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"Match 2"}, decode(t, rec))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		h, _ := seed(t)
		rec := doJSON(t, h, http.MethodGet, "/?status=bogus", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("mine requires identity", func(t *testing.T) {
		t.Parallel()

		h, _ := seed(t)
		rec := doJSON(t, h, http.MethodGet, "/?mine=created", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("mine created", func(t *testing.T) {
		t.Parallel()

		h, _ := seed(t)
		rec := doJSON(t, h, http.MethodGet, "/?mine=created", "creator", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode(t, rec), 3)

		rec = doJSON(t, h, http.MethodGet, "/?mine=created", "somebody-else", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode(t, rec))
	})
}

func TestSportsEndpoint(t *testing.T) {
	t.Parallel()

	h, svc := newTestHandler(t)
	ctx := context.Background()

	for _, sport := range []string{"Tennis", "Football"} {
		_, err := svc.CreateSession(ctx, session.CreateSessionParams{
			Title:         sport + " match",
			Sport:         sport,
			Venue:         "Central Park",
			TeamA:         "A",
			TeamB:         "B",
			ScheduledAt:   testNow.Add(time.Hour),
			CapacityTotal: 10,
			CreatorID:     "creator",
		})
		require.NoError(t, err)
	}

	rec := doJSON(t, h, http.MethodGet, "/sports", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sports []string `json:"sports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Football", "Tennis"}, resp.Sports)
}
