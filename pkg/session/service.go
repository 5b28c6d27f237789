package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/dmitrymomot/sportkit/pkg/eventbus"
	"github.com/dmitrymomot/sportkit/pkg/logger"
	"github.com/dmitrymomot/sportkit/pkg/statemachine"
)

// Service owns the session collection and is the only write path to it.
// Callers never mutate sessions directly; all changes go through
// CreateSession, JoinSession and CancelSession.
//
// Mutations on the same session are serialized through optimistic
// concurrency: each attempt reads a snapshot, validates preconditions against
// it, and writes back with a revision compare-and-swap. A lost race re-reads
// and re-validates, so a join can never succeed against a session that was
// concurrently cancelled, and capacity can never be oversubscribed.
// Mutations on different sessions proceed independently.
type Service struct {
	store       Store
	bus         eventbus.Bus[Event]
	clock       func() time.Time
	newID       func() string
	log         *slog.Logger
	maxAttempts int
}

// NewService creates a Service. Without options it uses an in-memory store,
// the wall clock, UUID ids and no event bus.
func NewService(opts ...Option) *Service {
	s := &Service{
		clock:       time.Now,
		newID:       uuid.NewString,
		log:         slog.Default(),
		maxAttempts: DefaultConfig().MaxUpdateAttempts,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = NewMemoryStore()
	}

	return s
}

// Result is the outcome of a successful mutating operation.
type Result struct {
	// Session is a snapshot of the session after the mutation.
	Session *Session

	// Warning reports a failed event publication. The state change has
	// already been committed; callers may log or surface the warning but
	// must never treat it as a failed operation.
	Warning error
}

// CreateSession validates the parameters and stores a new active session
// with no participants. ScheduledAt must be strictly in the future at call
// time. Publishes EventCreated on success.
func (s *Service) CreateSession(ctx context.Context, params CreateSessionParams) (Result, error) {
	now := s.clock()
	if err := params.Validate(now); err != nil {
		return Result{}, err
	}

	sess := &Session{
		ID:            s.newID(),
		Title:         strings.TrimSpace(params.Title),
		Sport:         strings.TrimSpace(params.Sport),
		Venue:         strings.TrimSpace(params.Venue),
		TeamA:         strings.TrimSpace(params.TeamA),
		TeamB:         strings.TrimSpace(params.TeamB),
		ScheduledAt:   params.ScheduledAt,
		CapacityTotal: params.CapacityTotal,
		Status:        StatusActive,
		CreatorID:     params.CreatorID,
		Revision:      1,
		CreatedAt:     now,
	}

	if err := s.store.Create(ctx, sess); err != nil {
		return Result{}, err
	}

	return Result{
		Session: sess.Clone(),
		Warning: s.publish(ctx, EventCreated, sess, params.CreatorID),
	}, nil
}

// JoinSession reserves one slot for the participant. Preconditions are
// checked against the current stored state on every attempt: the session
// must exist, be active and scheduled in the future, have capacity left,
// and the participant must be neither the creator nor already joined.
//
// Under N concurrent joins against K remaining slots (K < N), exactly K are
// admitted and the rest fail with ErrSlotsFull. The retry budget is bounded;
// exhaustion surfaces ErrContention instead of looping indefinitely.
func (s *Service) JoinSession(ctx context.Context, sessionID, participantID string) (Result, error) {
	if participantID == "" {
		return Result{}, errors.Join(ErrValidation, errors.New("participant id is required"))
	}

	for range s.maxAttempts {
		sess, err := s.store.Get(ctx, sessionID)
		if err != nil {
			return Result{}, err
		}

		m := mutation{sess: sess, actorID: participantID, now: s.clock()}
		if _, err := lifecycle.Fire(ctx, sess.Status, eventJoin, m); err != nil {
			if statemachine.IsNoTransition(err) {
				return Result{}, ErrClosed
			}
			return Result{}, err
		}

		sess.Participants = append(sess.Participants, participantID)
		sess.CapacityFilled++
		sess.Revision++

		err = s.store.Update(ctx, sess)
		if errors.Is(err, ErrRevisionMismatch) {
			continue
		}
		if err != nil {
			return Result{}, err
		}

		return Result{
			Session: sess.Clone(),
			Warning: s.publish(ctx, EventJoined, sess, participantID),
		}, nil
	}

	return Result{}, ErrContention
}

// CancelSession irreversibly cancels the session. Only the creator may
// cancel; a past-but-not-cancelled session can still be cancelled. The
// reason is required and is recorded on the session.
func (s *Service) CancelSession(ctx context.Context, sessionID, actorID, reason string) (Result, error) {
	if strings.TrimSpace(reason) == "" {
		return Result{}, errors.Join(ErrValidation, errors.New("cancel reason is required"))
	}

	for range s.maxAttempts {
		sess, err := s.store.Get(ctx, sessionID)
		if err != nil {
			return Result{}, err
		}

		// Actor check precedes the terminal-state check so a stranger
		// probing a cancelled session still gets ErrUnauthorized.
		if actorID != sess.CreatorID {
			return Result{}, ErrUnauthorized
		}

		m := mutation{sess: sess, actorID: actorID, now: s.clock()}
		next, err := lifecycle.Fire(ctx, sess.Status, eventCancel, m)
		if err != nil {
			if statemachine.IsNoTransition(err) {
				return Result{}, ErrAlreadyClosed
			}
			return Result{}, err
		}

		sess.Status = Status(next.Name())
		sess.CancelReason = reason
		sess.Revision++

		err = s.store.Update(ctx, sess)
		if errors.Is(err, ErrRevisionMismatch) {
			continue
		}
		if err != nil {
			return Result{}, err
		}

		return Result{
			Session: sess.Clone(),
			Warning: s.publish(ctx, EventCancelled, sess, actorID),
		}, nil
	}

	return Result{}, ErrContention
}

// ListSessions returns the sessions matching the filter, ordered by
// ScheduledAt ascending with ties broken by id, so pagination stays stable
// across repeated calls. The returned snapshots carry the derived display
// status: Cancelled, Completed, or Active.
func (s *Service) ListSessions(ctx context.Context, filter Filter) ([]*Session, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	matcher := search.New(language.Und, search.IgnoreCase)

	out := make([]*Session, 0, len(all))
	for _, sess := range all {
		if !filter.matches(sess, now, matcher) {
			continue
		}
		sess.Status = sess.DerivedStatus(now)
		out = append(out, sess)
	}

	slices.SortFunc(out, func(a, b *Session) int {
		if c := a.ScheduledAt.Compare(b.ScheduledAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return out, nil
}

// Sports returns the distinct sport names across all sessions, sorted
// ascending. Feeds filter dropdowns.
func (s *Service) Sports(ctx context.Context) ([]string, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(all))
	sports := make([]string, 0, len(all))
	for _, sess := range all {
		if _, ok := seen[sess.Sport]; ok {
			continue
		}
		seen[sess.Sport] = struct{}{}
		sports = append(sports, sess.Sport)
	}

	slices.Sort(sports)
	return sports, nil
}

// publish sends a domain event to the configured bus. A delivery failure is
// logged and returned as a warning, never as an operation error.
func (s *Service) publish(ctx context.Context, typ EventType, sess *Session, actorID string) error {
	if s.bus == nil {
		return nil
	}

	event := Event{
		Type:       typ,
		SessionID:  sess.ID,
		ActorID:    actorID,
		OccurredAt: s.clock(),
		Revision:   sess.Revision,
	}

	if err := s.bus.Publish(ctx, event); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "failed to publish session event",
			slog.String("event_type", string(typ)),
			logger.SessionID(sess.ID),
			logger.Error(err),
		)
		return err
	}
	return nil
}
