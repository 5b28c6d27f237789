// Package eventbus provides type-safe, non-blocking event publication with
// subscriber management.
//
// Publishing is fire and forget: a full subscriber buffer never blocks or
// fails the publisher, the event is counted as dropped for that subscriber
// instead. This makes the bus suitable as a domain-event sink where the state
// mutation has already been committed and must not be rolled back by delivery
// problems.
//
// Basic usage:
//
//	bus := eventbus.NewMemoryBus[OrderEvent](64)
//	defer bus.Close()
//
//	sub := bus.Subscribe(ctx)
//	defer sub.Close()
//
//	_ = bus.Publish(ctx, OrderEvent{Type: "order.created"})
//
//	for event := range sub.C() {
//		fmt.Println(event.Type)
//	}
package eventbus
