// Package events is the in-process publish/subscribe channel that keeps
// connected dashboards in sync with committed changes.
//
// Delivery is fire-and-forget: a subscriber whose buffer is full misses the
// event and the publisher moves on. Events reach each subscriber in publish
// order.
package events

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// DefaultBufferSize is used when neither the bus nor the subscription sets one
const DefaultBufferSize = 64

// Publisher is what the services need from the bus
type Publisher interface {
	Publish(ev Event) int
	PublishWithNotice(ev Event)
}

// Bus fans events out to subscriptions
type Bus struct {
	// mu serialises publishing so every subscriber sees the same order
	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
	closed bool

	bufferSize int
	logger     zerolog.Logger
}

var _ Publisher = (*Bus)(nil)

// NewBus creates a bus; bufferSize <= 0 selects DefaultBufferSize
func NewBus(bufferSize int, logger zerolog.Logger) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Bus{
		subs:       make(map[uint64]*Subscription),
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// Subscription receives the events its kinds and filter accept
type Subscription struct {
	id      uint64
	bus     *Bus
	ch      chan Event
	kinds   map[Kind]bool
	filter  func(Event) bool
	dropped atomic.Uint64
	once    sync.Once
}

type subOptions struct {
	kinds  []Kind
	filter func(Event) bool
	buffer int
}

// Option configures a subscription
type Option func(*subOptions)

// WithKinds limits the subscription to the given kinds
func WithKinds(kinds ...Kind) Option {
	return func(o *subOptions) { o.kinds = append(o.kinds, kinds...) }
}

// WithFilter drops events for which fn returns false. fn runs while the bus
// is publishing and must not call back into it.
func WithFilter(fn func(Event) bool) Option {
	return func(o *subOptions) { o.filter = fn }
}

// WithBuffer overrides the bus buffer size for this subscription
func WithBuffer(n int) Option {
	return func(o *subOptions) { o.buffer = n }
}

// Subscribe registers a new subscription. On a closed bus the returned
// subscription's channel is already closed.
func (b *Bus) Subscribe(opts ...Option) *Subscription {
	o := subOptions{buffer: b.bufferSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.buffer <= 0 {
		o.buffer = b.bufferSize
	}

	sub := &Subscription{
		bus:    b,
		ch:     make(chan Event, o.buffer),
		filter: o.filter,
	}
	if len(o.kinds) > 0 {
		sub.kinds = make(map[Kind]bool, len(o.kinds))
		for _, k := range o.kinds {
			sub.kinds[k] = true
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}
	b.nextID++
	sub.id = b.nextID
	b.subs[sub.id] = sub
	return sub
}

// Publish delivers ev to every interested subscription without blocking and
// returns how many received it.
func (b *Bus) Publish(ev Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0
	}

	delivered := 0
	for _, sub := range b.subs {
		if !sub.accepts(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
			delivered++
		default:
			sub.dropped.Add(1)
			b.logger.Warn().
				Str("event", string(ev.Kind)).
				Uint64("subscription", sub.id).
				Msg("Subscriber buffer full, event dropped")
		}
	}
	return delivered
}

// PublishWithNotice publishes ev followed by its derived notification, if any
func (b *Bus) PublishWithNotice(ev Event) {
	b.Publish(ev)
	if notice, ok := NoticeFor(ev); ok {
		b.Publish(notice)
	}
}

// Subscribers returns the number of live subscriptions
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends every subscription; later publishes are no-ops
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		sub.once.Do(func() { close(sub.ch) })
	}
}

func (s *Subscription) accepts(ev Event) bool {
	if s.kinds != nil && !s.kinds[ev.Kind] {
		return false
	}
	return s.filter == nil || s.filter(ev)
}

// C returns the delivery channel; it is closed by Close
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Dropped returns how many events this subscription missed
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close unregisters the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	delete(s.bus.subs, s.id)
	s.once.Do(func() { close(s.ch) })
}
