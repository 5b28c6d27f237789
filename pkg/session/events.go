package session

import "time"

// EventType identifies the kind of domain event.
type EventType string

const (
	// EventCreated is published after a successful CreateSession.
	EventCreated EventType = "session.created"
	// EventJoined is published after a successful JoinSession.
	EventJoined EventType = "session.joined"
	// EventCancelled is published after a successful CancelSession.
	EventCancelled EventType = "session.cancelled"
)

// Event is an immutable record of a committed state change, published for
// external consumers such as notifiers. Publication is fire and forget:
// a delivery failure never rolls back the mutation it describes.
type Event struct {
	Type       EventType `json:"type"`
	SessionID  string    `json:"session_id"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Revision   int64     `json:"revision"`
}
