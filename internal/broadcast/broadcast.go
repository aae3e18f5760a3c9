// Package broadcast is a small publish/subscribe primitive. Every subscriber
// owns a one-slot channel that always holds the most recent undelivered value,
// so a slow reader skips stale values instead of blocking the publisher.
package broadcast

import "sync"

// Broadcaster fans values out to its subscribers and remembers the last
// published value so new subscribers receive it immediately.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscription[T]
	nextID uint64
	last   T
	has    bool
	closed bool
}

// Subscription is a registered receiver. Read values from C; call
// Unsubscribe when done, which closes C.
type Subscription[T any] struct {
	C <-chan T

	ch   chan T
	id   uint64
	b    *Broadcaster[T]
	once sync.Once
}

// New returns an empty Broadcaster.
func New[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{subs: make(map[uint64]*Subscription[T])}
}

// Subscribe registers a new subscriber. If a value was published before, it is
// already waiting on the returned channel. Subscribing to a closed Broadcaster
// returns a subscription whose channel is closed.
func (b *Broadcaster[T]) Subscribe() *Subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan T, 1)
	s := &Subscription[T]{C: ch, ch: ch, b: b}
	if b.closed {
		close(ch)
		s.once.Do(func() {})
		return s
	}

	b.nextID++
	s.id = b.nextID
	b.subs[s.id] = s
	if b.has {
		ch <- b.last
	}
	return s
}

// Publish records v as the latest value and delivers it to every subscriber.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.last, b.has = v, true
	b.deliver(v)
}

// Notify delivers v to the current subscribers without recording it, so later
// subscribers still receive the previously published value.
func (b *Broadcaster[T]) Notify(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.deliver(v)
}

func (b *Broadcaster[T]) deliver(v T) {
	for _, s := range b.subs {
		select {
		case s.ch <- v:
		default:
			// Drop the stale value the reader has not consumed yet.
			select {
			case <-s.ch:
			default:
			}
			select {
			case s.ch <- v:
			default:
			}
		}
	}
}

// Latest returns the last published value, if any.
func (b *Broadcaster[T]) Latest() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.has
}

// Reset forgets the last published value. Subscribers stay registered.
func (b *Broadcaster[T]) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	var zero T
	b.last, b.has = zero, false
}

// Len returns the number of registered subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close unsubscribes everyone. Later publishes are ignored.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, s := range b.subs {
		delete(b.subs, id)
		s.once.Do(func() { close(s.ch) })
	}
}

// Unsubscribe removes the subscription and closes its channel. It is safe to
// call more than once.
func (s *Subscription[T]) Unsubscribe() {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	delete(s.b.subs, s.id)
	s.once.Do(func() { close(s.ch) })
}
