package registry

// EventStream delivers registration events to observers synchronously,
// on the caller's goroutine, before the triggering registration call
// returns. There is no replay: a subscriber sees only events published
// after it subscribed. Use History for earlier ones.
type EventStream struct {
	subs []*Subscription
}

func newEventStream() *EventStream {
	return &EventStream{}
}

// Subscription is a handle to one observer. Cancel detaches it; a
// canceled subscription receives nothing, even mid-delivery.
type Subscription struct {
	stream   *EventStream
	fn       func(Event)
	canceled bool
}

// Subscribe registers fn for every future event. Observers are invoked
// in subscription order. Subscribing during delivery is allowed; the
// new observer starts with the next event.
func (s *EventStream) Subscribe(fn func(Event)) *Subscription {
	sub := &Subscription{stream: s, fn: fn}
	s.subs = append(s.subs, sub)
	return sub
}

// Cancel detaches the subscription. Canceling during delivery is
// allowed and takes effect immediately. Cancel is idempotent.
func (sub *Subscription) Cancel() {
	if sub.canceled || sub.stream == nil {
		return
	}
	sub.canceled = true
	subs := sub.stream.subs
	for i, s := range subs {
		if s == sub {
			sub.stream.subs = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of active subscriptions.
func (s *EventStream) Len() int {
	return len(s.subs)
}

// publish invokes every active observer with ev. Delivery iterates a
// snapshot of the subscriber list so observers may subscribe or cancel
// while being notified, and may re-enter the registry.
func (s *EventStream) publish(ev Event) {
	snapshot := make([]*Subscription, len(s.subs))
	copy(snapshot, s.subs)
	for _, sub := range snapshot {
		if sub.canceled {
			continue
		}
		sub.fn(ev)
	}
}
