package notification

import "context"

// Notifier is a pluggable send capability for one transport kind. The
// underlying session or connection lifecycle belongs to the transport, not to
// the alert pipeline; IsReady exposes its state.
type Notifier interface {
	// Kind returns the transport kind this notifier serves
	Kind() string

	// IsReady reports whether the transport can currently send
	IsReady() bool

	// Send delivers one message to a destination
	Send(ctx context.Context, destination, subject, body string) error
}
