package session

import (
	"context"
	"time"

	"github.com/dmitrymomot/sportkit/pkg/statemachine"
)

// Lifecycle events. Join is a self-transition on Active: the state does not
// change, but the guards decide whether the slot reservation is admitted.
var (
	eventJoin   = statemachine.StringEvent("join")
	eventCancel = statemachine.StringEvent("cancel")
)

// mutation is the guard subject for a single lifecycle evaluation. The now
// field is captured once per operation so every guard sees the same instant.
type mutation struct {
	sess    *Session
	actorID string
	now     time.Time
}

// lifecycle is the single serialization-free transition table shared by all
// sessions. Guard order matches the precondition order of the join contract:
// closed/past before capacity, capacity before actor checks.
var lifecycle = statemachine.New(
	statemachine.Transition[mutation]{
		From:  StatusActive,
		To:    StatusActive,
		Event: eventJoin,
		Guards: []statemachine.Guard[mutation]{
			guardNotPast,
			guardHasSlots,
			guardNotCreator,
			guardNotJoined,
		},
	},
	statemachine.Transition[mutation]{
		From:  StatusActive,
		To:    StatusCancelled,
		Event: eventCancel,
		Guards: []statemachine.Guard[mutation]{
			guardCreatorOnly,
		},
	},
	// No transition leaves Cancelled.
)

func guardNotPast(ctx context.Context, from statemachine.State, event statemachine.Event, m mutation) error {
	if !m.sess.ScheduledAt.After(m.now) {
		return ErrClosed
	}
	return nil
}

func guardHasSlots(ctx context.Context, from statemachine.State, event statemachine.Event, m mutation) error {
	if !m.sess.Unlimited() && m.sess.CapacityFilled >= m.sess.CapacityTotal {
		return ErrSlotsFull
	}
	return nil
}

func guardNotCreator(ctx context.Context, from statemachine.State, event statemachine.Event, m mutation) error {
	if m.actorID == m.sess.CreatorID {
		return ErrUnauthorized
	}
	return nil
}

func guardNotJoined(ctx context.Context, from statemachine.State, event statemachine.Event, m mutation) error {
	if m.sess.HasParticipant(m.actorID) {
		return ErrAlreadyJoined
	}
	return nil
}

func guardCreatorOnly(ctx context.Context, from statemachine.State, event statemachine.Event, m mutation) error {
	if m.actorID != m.sess.CreatorID {
		return ErrUnauthorized
	}
	return nil
}

// IsJoinable reports whether a join could currently be admitted: the session
// is stored active, scheduled in the future, and has capacity left.
func IsJoinable(sess *Session, now time.Time) bool {
	return sess.Status == StatusActive &&
		sess.ScheduledAt.After(now) &&
		(sess.Unlimited() || sess.CapacityFilled < sess.CapacityTotal)
}

// IsCancellable reports whether the actor may cancel the session. Cancelling
// a past-but-not-cancelled session is permitted: time-derived completion does
// not block cancellation.
func IsCancellable(sess *Session, actorID string) bool {
	return lifecycle.CanFire(context.Background(), sess.Status, eventCancel, mutation{
		sess:    sess,
		actorID: actorID,
	})
}
