package event

import "log/slog"

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used to report handler failures.
func WithLogger(l *slog.Logger) BusOption {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*Subscription)

// WithPriority sets the handler priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *Subscription) {
		s.priority = p
	}
}

// Once cancels the subscription after its first successful delivery.
func Once() SubscriptionOption {
	return func(s *Subscription) {
		s.once = true
	}
}
