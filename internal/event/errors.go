package event

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEvent is returned by Publish for values without a topic.
	ErrInvalidEvent = errors.New("event has no topic")
	// ErrInvalidTopic is returned for empty or malformed subscription patterns.
	ErrInvalidTopic = errors.New("invalid topic")
	// ErrSubscriptionNotFound is returned when unsubscribing twice.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrHandlerPanic matches every *PanicError.
	ErrHandlerPanic = errors.New("handler panicked")
	// ErrNilHandler is returned when subscribing a nil handler.
	ErrNilHandler = errors.New("nil handler")
)

// HandlerError is a handler's error together with where it was delivered.
type HandlerError struct {
	SubscriptionID string
	Topic          string
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: subscriber %s: %v", e.Topic, e.SubscriptionID, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// PanicError records a recovered handler panic and the stack at the time.
type PanicError struct {
	SubscriptionID string
	Topic          string
	Value          any
	Stack          string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: subscriber %s panicked: %v", e.Topic, e.SubscriptionID, e.Value)
}

func (e *PanicError) Is(target error) bool { return target == ErrHandlerPanic }
