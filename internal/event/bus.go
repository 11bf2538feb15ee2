package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/linecore/internal/event/topic"
)

// Subscription is a registered handler for a topic pattern.
type Subscription struct {
	id       string
	pattern  topic.Topic
	handler  Handler
	priority Priority
	once     bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed topic pattern.
func (s *Subscription) Topic() topic.Topic { return s.pattern }

// Priority returns the handler priority.
func (s *Subscription) Priority() Priority { return s.priority }

// Bus delivers events synchronously to subscribed handlers.
// Bus is safe for concurrent use; handlers run in the publisher's
// goroutine.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	paused atomic.Bool
	logger *slog.Logger

	published atomic.Uint64
	failures  atomic.Uint64
}

// NewBus creates a new event bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for events whose topic matches pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	sub := &Subscription{
		id:       uuid.NewString(),
		pattern:  pattern,
		handler:  handler,
		priority: PriorityNormal,
	}
	for _, opt := range opts {
		opt(sub)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, sub)
	sort.SliceStable(b.subs, func(i, j int) bool {
		return b.subs[i].priority < b.subs[j].priority
	})
	return sub, nil
}

// SubscribeFunc is Subscribe for a plain function.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Pause temporarily stops event delivery.
// Events published while paused are dropped.
func (b *Bus) Pause() {
	b.paused.Store(true)
}

// Resume restarts event delivery after a pause.
func (b *Bus) Resume() {
	b.paused.Store(false)
}

// IsPaused returns true if the bus is paused.
func (b *Bus) IsPaused() bool {
	return b.paused.Load()
}

// SubscriptionCount returns the number of subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Stats returns the number of events published and the number of failed
// handler invocations.
func (b *Bus) Stats() (published, failures uint64) {
	return b.published.Load(), b.failures.Load()
}

// Publish delivers ev to every matching handler. ev must implement
// TopicProvider; Event values do.
//
// Every handler runs even if an earlier one fails. The returned error
// joins the failures of all handlers.
func (b *Bus) Publish(ctx context.Context, ev any) error {
	tp, ok := ev.(TopicProvider)
	if !ok || tp.EventTopic() == "" {
		return ErrInvalidEvent
	}
	if b.paused.Load() {
		return nil
	}

	t := tp.EventTopic()
	subs := b.match(t)
	b.published.Add(1)

	var errs []error
	for _, sub := range subs {
		if err := b.deliver(ctx, sub, t, ev); err != nil {
			b.failures.Add(1)
			b.logger.Warn("event handler failed",
				"topic", t.String(),
				"subscription", sub.id,
				"error", err)
			errs = append(errs, err)
			continue
		}
		if sub.once {
			_ = b.Unsubscribe(sub)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) match(t topic.Topic) []*Subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []*Subscription
	for _, s := range b.subs {
		if t.Matches(s.pattern) {
			out = append(out, s)
		}
	}
	return out
}

func (b *Bus) deliver(ctx context.Context, sub *Subscription, t topic.Topic, ev any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{
				SubscriptionID: sub.id,
				Topic:          t.String(),
				Value:          r,
				Stack:          string(debug.Stack()),
			}
		}
	}()

	if err := sub.handler.Handle(ctx, ev); err != nil {
		return &HandlerError{SubscriptionID: sub.id, Topic: t.String(), Err: err}
	}
	return nil
}
