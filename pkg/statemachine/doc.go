// Package statemachine provides a stateless, generic transition table for
// entity lifecycles.
//
// The Machine holds no current state; callers pass the entity's stored state
// to Fire together with a typed subject that guards inspect. This makes one
// Machine safe to share across goroutines and across any number of entities.
//
// Basic usage:
//
//	const (
//		Open   = statemachine.StringState("open")
//		Closed = statemachine.StringState("closed")
//	)
//	var Close = statemachine.StringEvent("close")
//
//	m := statemachine.New(
//		statemachine.Transition[*Order]{From: Open, To: Closed, Event: Close,
//			Guards: []statemachine.Guard[*Order]{ownerOnly}},
//	)
//
//	next, err := m.Fire(ctx, Open, Close, order)
//
// Guards return an error describing why the transition is rejected; the first
// failing guard's error is surfaced to the caller unchanged, so domain
// packages can use their own sentinel errors as rejection reasons.
package statemachine
