// Package session implements the lifecycle and capacity-allocation core for
// organizing sport sessions: creating fixed- or unlimited-capacity sessions,
// admitting concurrent join requests without oversubscribing, cancelling with
// a recorded reason, and deterministic filtered listing.
//
// The package is a pure domain service: it performs no authentication, no
// rendering and no transport. Identity arrives as participant ids the caller
// already trusts; persistence is pluggable through the Store interface
// (in-memory, Postgres, Redis and MongoDB implementations are provided);
// committed mutations are announced on an eventbus.Bus for external
// consumers such as notifiers.
//
// Basic usage:
//
//	bus := eventbus.NewMemoryBus[session.Event](64)
//	svc := session.NewService(
//		session.WithStore(session.NewMemoryStore()),
//		session.WithBus(bus),
//	)
//
//	created, err := svc.CreateSession(ctx, session.CreateSessionParams{
//		Title:         "Friday Night Football",
//		Sport:         "Football",
//		Venue:         "Central Park Field A",
//		TeamA:         "Red Team",
//		TeamB:         "Blue Team",
//		ScheduledAt:   kickoff,
//		CapacityTotal: 22,
//		CreatorID:     organizer,
//	})
//
//	joined, err := svc.JoinSession(ctx, created.Session.ID, player)
//
// Concurrency: mutations on one session are serialized by a bounded
// optimistic-retry loop over the store's revision compare-and-swap, so
// capacity invariants hold under any interleaving; reads never take locks
// and observe whole-mutation snapshots only.
package session
