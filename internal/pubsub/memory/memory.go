// Package memory provides an in-process pubsub.Publisher for tests and
// embedded runs.
package memory

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("publisher closed")

// Message is one published message.
type Message struct {
	Subject string
	Data    []byte
}

// Publisher records every published message and fans it out to subscribers.
// Slow subscribers drop messages rather than block the publishing path.
type Publisher struct {
	mu     sync.Mutex
	closed bool
	msgs   []Message
	subs   []chan Message
}

func New() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	msg := Message{Subject: subject, Data: data}
	p.msgs = append(p.msgs, msg)
	for _, ch := range p.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

// Subscribe returns a buffered channel receiving future messages. The
// channel is closed when the publisher closes.
func (p *Publisher) Subscribe() <-chan Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Message, 64)
	if p.closed {
		close(ch)
		return ch
	}
	p.subs = append(p.subs, ch)
	return ch
}

// Messages returns a copy of everything published so far.
func (p *Publisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Message, len(p.msgs))
	copy(out, p.msgs)
	return out
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	for _, ch := range p.subs {
		close(ch)
	}
	p.subs = nil
	return nil
}
