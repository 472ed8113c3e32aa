// Package pubsub abstracts the message broker quote lifecycle events are
// published to, so in-process and NATS deployments are interchangeable.
package pubsub

import "context"

// Publisher publishes serialized messages to a subject.
type Publisher interface {
	// Publish sends a message to the specified subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// Close releases resources.
	Close() error
}
