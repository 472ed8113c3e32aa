// Package nats implements pubsub.Publisher on a NATS connection.
package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"pcbxpress/internal/pubsub"
)

// Publisher publishes over core NATS. Quote lifecycle events are
// fire-and-forget notifications, so core delivery semantics are enough; no
// JetStream stream is required.
type Publisher struct {
	conn *nats.Conn
}

// Connect dials the NATS server.
func Connect(url string, opts ...nats.Option) (*Publisher, error) {
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// NewPublisher wraps an existing connection. The caller keeps ownership of
// the connection's lifecycle.
func NewPublisher(conn *nats.Conn) *Publisher {
	return &Publisher{conn: conn}
}

func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.conn.Publish(subject, data)
}

func (p *Publisher) Close() error {
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Drain()
}

var _ pubsub.Publisher = (*Publisher)(nil)
