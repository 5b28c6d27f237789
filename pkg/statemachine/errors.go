package statemachine

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition indicates a nil state or event was passed to Fire.
var ErrInvalidTransition = errors.New("statemachine: from state and event cannot be nil")

// NoTransitionError indicates the table defines no transition for the given
// state/event combination.
type NoTransitionError struct {
	StateName string
	EventName string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition from state %q for event %q", e.StateName, e.EventName)
}

// IsNoTransition reports whether err is a NoTransitionError.
func IsNoTransition(err error) bool {
	var e *NoTransitionError
	return errors.As(err, &e)
}
