package session

import (
	"slices"
	"time"
)

// Status describes the lifecycle state of a session.
type Status string

const (
	// StatusActive indicates the session is open and stored as active.
	StatusActive Status = "active"
	// StatusCancelled indicates the session was cancelled by its creator.
	// Cancelled is terminal: no mutation is permitted afterwards.
	StatusCancelled Status = "cancelled"
	// StatusCompleted is a read-time projection for active sessions whose
	// scheduled time has passed. It is never stored, which keeps writers and
	// readers consistent regardless of clock drift between them.
	StatusCompleted Status = "completed"
)

// Name implements statemachine.State.
func (s Status) Name() string {
	return string(s)
}

// Session represents a scheduled sport event with fixed or unlimited
// participant capacity.
//
// Only CapacityFilled, Participants, Status, CancelReason and Revision are
// mutable, and only through Service operations. Revision increases by exactly
// one on every successful mutation and drives optimistic concurrency in
// Store implementations.
type Session struct {
	ID             string    `json:"id" bson:"_id"`
	Title          string    `json:"title" bson:"title"`
	Sport          string    `json:"sport" bson:"sport"`
	Venue          string    `json:"venue" bson:"venue"`
	TeamA          string    `json:"team_a" bson:"team_a"`
	TeamB          string    `json:"team_b" bson:"team_b"`
	ScheduledAt    time.Time `json:"scheduled_at" bson:"scheduled_at"`
	CapacityTotal  int       `json:"capacity_total,omitempty" bson:"capacity_total"` // 0 means unlimited
	CapacityFilled int       `json:"capacity_filled" bson:"capacity_filled"`
	Status         Status    `json:"status" bson:"status"`
	CancelReason   string    `json:"cancel_reason,omitempty" bson:"cancel_reason"`
	CreatorID      string    `json:"creator_id" bson:"creator_id"`
	Participants   []string  `json:"participants,omitempty" bson:"participants"`
	Revision       int64     `json:"revision" bson:"revision"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// DerivedStatus returns the display status for the given point in time:
// Cancelled when stored cancelled, Completed when active but scheduled in the
// past, Active otherwise. Pure function of the receiver and now; never reads
// a global clock.
func (s *Session) DerivedStatus(now time.Time) Status {
	if s.Status == StatusCancelled {
		return StatusCancelled
	}
	if s.ScheduledAt.Before(now) {
		return StatusCompleted
	}
	return StatusActive
}

// HasParticipant reports whether the participant already holds a slot.
func (s *Session) HasParticipant(participantID string) bool {
	return slices.Contains(s.Participants, participantID)
}

// Unlimited reports whether the session has no capacity limit.
func (s *Session) Unlimited() bool {
	return s.CapacityTotal == 0
}

// SlotsAvailable returns the remaining capacity, or -1 for unlimited sessions.
func (s *Session) SlotsAvailable() int {
	if s.Unlimited() {
		return -1
	}
	return s.CapacityTotal - s.CapacityFilled
}

// Clone returns a deep copy, so stored state can never be mutated through a
// returned snapshot.
func (s *Session) Clone() *Session {
	clone := *s
	if s.Participants != nil {
		clone.Participants = slices.Clone(s.Participants)
	}
	return &clone
}
