package statemachine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sportkit/pkg/statemachine"
)

type order struct {
	paid bool
}

var (
	statePending   = statemachine.StringState("pending")
	stateShipped   = statemachine.StringState("shipped")
	stateDelivered = statemachine.StringState("delivered")

	eventShip    = statemachine.StringEvent("ship")
	eventDeliver = statemachine.StringEvent("deliver")
)

var errNotPaid = errors.New("order not paid")

func guardPaid(ctx context.Context, from statemachine.State, event statemachine.Event, o order) error {
	if !o.paid {
		return errNotPaid
	}
	return nil
}

func newOrderMachine() *statemachine.Machine[order] {
	return statemachine.New(
		statemachine.Transition[order]{
			From:   statePending,
			To:     stateShipped,
			Event:  eventShip,
			Guards: []statemachine.Guard[order]{guardPaid},
		},
		statemachine.Transition[order]{
			From:  stateShipped,
			To:    stateDelivered,
			Event: eventDeliver,
		},
	)
}

func TestFire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newOrderMachine()

	t.Run("transitions when guards pass", func(t *testing.T) {
		t.Parallel()

		next, err := m.Fire(ctx, statePending, eventShip, order{paid: true})
		require.NoError(t, err)
		assert.Equal(t, "shipped", next.Name())
	})

	t.Run("surfaces the guard error", func(t *testing.T) {
		t.Parallel()

		_, err := m.Fire(ctx, statePending, eventShip, order{paid: false})
		assert.ErrorIs(t, err, errNotPaid)
		assert.False(t, statemachine.IsNoTransition(err))
	})

	t.Run("undefined transition", func(t *testing.T) {
		t.Parallel()

		_, err := m.Fire(ctx, stateDelivered, eventShip, order{paid: true})
		require.Error(t, err)
		assert.True(t, statemachine.IsNoTransition(err))

		var noTransition *statemachine.NoTransitionError
		require.ErrorAs(t, err, &noTransition)
		assert.Equal(t, "delivered", noTransition.StateName)
		assert.Equal(t, "ship", noTransition.EventName)
	})

	t.Run("nil state or event", func(t *testing.T) {
		t.Parallel()

		_, err := m.Fire(ctx, nil, eventShip, order{})
		assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

		_, err = m.Fire(ctx, statePending, nil, order{})
		assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)
	})
}

func TestGuardBranching(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Two transitions for the same from/event pair: the first whose guards
	// pass wins, so a shipped order branches on the paid flag.
	stateReturned := statemachine.StringState("returned")
	m := statemachine.New(
		statemachine.Transition[order]{
			From:   stateShipped,
			To:     stateDelivered,
			Event:  eventDeliver,
			Guards: []statemachine.Guard[order]{guardPaid},
		},
		statemachine.Transition[order]{
			From:  stateShipped,
			To:    stateReturned,
			Event: eventDeliver,
		},
	)

	next, err := m.Fire(ctx, stateShipped, eventDeliver, order{paid: true})
	require.NoError(t, err)
	assert.Equal(t, "delivered", next.Name())

	next, err = m.Fire(ctx, stateShipped, eventDeliver, order{paid: false})
	require.NoError(t, err)
	assert.Equal(t, "returned", next.Name())
}

func TestCanFire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newOrderMachine()

	assert.True(t, m.CanFire(ctx, statePending, eventShip, order{paid: true}))
	assert.False(t, m.CanFire(ctx, statePending, eventShip, order{paid: false}))
	assert.False(t, m.CanFire(ctx, stateDelivered, eventShip, order{paid: true}))
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		statemachine.New(statemachine.Transition[order]{From: statePending, Event: eventShip})
	})
}

func TestSharedMachineIsStateless(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newOrderMachine()

	// The same machine arbitrates independent subjects: firing for one order
	// must not affect the outcome for another.
	next, err := m.Fire(ctx, statePending, eventShip, order{paid: true})
	require.NoError(t, err)
	assert.Equal(t, "shipped", next.Name())

	_, err = m.Fire(ctx, statePending, eventShip, order{paid: false})
	assert.ErrorIs(t, err, errNotPaid)
}
