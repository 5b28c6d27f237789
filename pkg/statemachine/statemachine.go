package statemachine

import (
	"context"
)

// State represents a state in a lifecycle.
type State interface {
	Name() string
}

// Event represents an event that can trigger a state transition.
type Event interface {
	Name() string
}

// Guard inspects the subject of a transition and reports why it must not
// proceed. A nil return allows the transition. Returning a domain error lets
// callers surface the rejection reason directly.
type Guard[T any] func(ctx context.Context, from State, event Event, subject T) error

// Transition defines a state change triggered by an event, with optional guards.
type Transition[T any] struct {
	From   State
	To     State
	Event  Event
	Guards []Guard[T]
}

// Machine is an immutable transition table evaluated against caller-held state.
// Unlike a classic FSM instance it keeps no current state of its own, so a
// single Machine arbitrates lifecycles for any number of entities concurrently
// without locking.
type Machine[T any] struct {
	// [fromState][event][]Transition for O(1) lookups
	transitions map[string]map[string][]Transition[T]
}

// New builds a Machine from the given transitions. Transitions sharing the
// same from/event pair are evaluated in registration order; the first one
// whose guards all pass wins, enabling guard-based branching.
func New[T any](transitions ...Transition[T]) *Machine[T] {
	m := &Machine[T]{
		transitions: make(map[string]map[string][]Transition[T]),
	}
	for _, t := range transitions {
		if t.From == nil || t.To == nil || t.Event == nil {
			panic("statemachine: transition from, to, and event are required")
		}
		from := t.From.Name()
		if _, ok := m.transitions[from]; !ok {
			m.transitions[from] = make(map[string][]Transition[T])
		}
		m.transitions[from][t.Event.Name()] = append(m.transitions[from][t.Event.Name()], t)
	}
	return m
}

// Fire evaluates the event against the given state and returns the target
// state. It returns a NoTransitionError when the table defines no transition
// for the state/event pair, or the first failing guard's error when all
// candidate transitions are rejected.
func (m *Machine[T]) Fire(ctx context.Context, from State, event Event, subject T) (State, error) {
	if from == nil || event == nil {
		return nil, ErrInvalidTransition
	}

	candidates := m.transitions[from.Name()][event.Name()]
	if len(candidates) == 0 {
		return nil, &NoTransitionError{StateName: from.Name(), EventName: event.Name()}
	}

	var rejection error
	for _, t := range candidates {
		if err := evalGuards(ctx, t, from, event, subject); err != nil {
			if rejection == nil {
				rejection = err
			}
			continue
		}
		return t.To, nil
	}

	return nil, rejection
}

// CanFire reports whether the event would produce a transition from the given state.
func (m *Machine[T]) CanFire(ctx context.Context, from State, event Event, subject T) bool {
	_, err := m.Fire(ctx, from, event, subject)
	return err == nil
}

func evalGuards[T any](ctx context.Context, t Transition[T], from State, event Event, subject T) error {
	for _, guard := range t.Guards {
		if guard == nil {
			continue
		}
		if err := guard(ctx, from, event, subject); err != nil {
			return err
		}
	}
	return nil
}

// StringState provides a simple string-based state implementation.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringEvent provides a simple string-based event implementation.
type StringEvent string

func (e StringEvent) Name() string {
	return string(e)
}
