// Package pubsub provides a generic publish/subscribe broker for
// ambient event fan-out (log tailing, trace recording). It is the
// asynchronous counterpart to the registry's synchronous event stream:
// channel-based, goroutine-safe, lossy under backpressure.
package pubsub

import (
	"context"
	"time"
)

// Event wraps a published payload with a broker-stamped sequence
// number. Gaps in Seq tell a consumer that events were dropped while
// its channel was full.
type Event[T any] struct {
	Seq     uint64
	Payload T
	Time    time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes payloads to all current subscribers.
type Publisher[T any] interface {
	Publish(payload T)
}
