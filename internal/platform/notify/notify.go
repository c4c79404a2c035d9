// Package notify delivers out-of-band notifications to the organization's
// chat channel. Delivery is best effort; a failed notification never fails
// the operation that triggered it.
package notify

import "context"

// Notifier sends a human-readable message to the configured channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Noop is a Notifier that discards all messages, used when no channel is
// configured.
type Noop struct{}

// Notify implements Notifier.
func (Noop) Notify(ctx context.Context, message string) error { return nil }
