package notify

// Unsubscribe removes the subscription that returned it.
// Calling it more than once has no further effect.
type Unsubscribe func()

// subscriber wraps a callback so removal can match by identity;
// func values are not comparable.
type subscriber[E any] struct {
	fn func(E)
}

// Channel is a synchronous pub/sub channel for events of type E.
//
// The zero value is ready to use.
type Channel[E any] struct {
	subs []*subscriber[E]
}

// New creates an empty [Channel].
func New[E any]() *Channel[E] {
	return &Channel[E]{}
}

// Subscribe appends fn to the subscriber list and returns a handle that
// removes exactly this subscription.
//
// Subscribing the same function twice yields two independent subscriptions.
// A nil fn is ignored and the returned handle is a no-op.
func (c *Channel[E]) Subscribe(fn func(E)) Unsubscribe {
	if fn == nil {
		return func() {}
	}

	s := &subscriber[E]{fn: fn}
	c.subs = append(c.subs, s)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		c.remove(s)
	}
}

// remove rebinds the list to a fresh slice without s. The backing array seen
// by an in-progress Publish is never written to.
func (c *Channel[E]) remove(s *subscriber[E]) {
	next := make([]*subscriber[E], 0, len(c.subs))
	for _, sub := range c.subs {
		if sub != s {
			next = append(next, sub)
		}
	}
	c.subs = next
}

// Publish invokes every current subscriber once, in subscription order.
//
// The subscriber list is frozen when Publish begins.
func (c *Channel[E]) Publish(event E) {
	subs := c.subs
	for _, s := range subs {
		s.fn(event)
	}
}

// Len returns the number of active subscriptions.
func (c *Channel[E]) Len() int {
	return len(c.subs)
}
