package event

import "context"

// Priority orders the handlers of one publication; lower runs first.
type Priority int

const (
	// PriorityCritical is for engine-internal handlers that must run first.
	PriorityCritical Priority = 0

	// PriorityHigh is for front ends keeping their view in step.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority for plugins.
	PriorityNormal Priority = 200

	// PriorityLow is for logging handlers that run last.
	PriorityLow Priority = 300
)

func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Handler receives every event whose topic matches its subscription.
// Payloads arrive type-erased; TypedHandlerFunc does the assertion.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, event any) error

func (f HandlerFunc) Handle(ctx context.Context, event any) error { return f(ctx, event) }

// TypedHandlerFunc only sees events carrying a T payload; it ignores
// the rest.
type TypedHandlerFunc[T any] func(ctx context.Context, event Event[T]) error

func (f TypedHandlerFunc[T]) Handle(ctx context.Context, event any) error {
	e, ok := event.(Event[T])
	if !ok {
		return nil
	}
	return f(ctx, e)
}
