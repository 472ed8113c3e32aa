// Package events defines the quote lifecycle notifications the gateway
// publishes after successful writes.
package events

import (
	"encoding/json"
	"time"

	"pcbxpress/pkg/model"
)

// Type identifies the lifecycle transition.
type Type string

const (
	QuoteCreated Type = "created"
	QuoteUpdated Type = "updated"
	QuoteDeleted Type = "deleted"
)

// QuoteEvent is the published payload. It carries identities only, never the
// quote body: consumers that need the document read it back through the
// gateway.
type QuoteEvent struct {
	Type    Type      `json:"type"`
	ID      string    `json:"id"`
	QuoteID string    `json:"quoteId,omitempty"`
	Service string    `json:"service"`
	At      time.Time `json:"at"`
}

// NewQuoteEvent builds the event for a quote at the given instant.
func NewQuoteEvent(t Type, q *model.Quote, at time.Time) QuoteEvent {
	return QuoteEvent{
		Type:    t,
		ID:      q.ID,
		QuoteID: q.QuoteID,
		Service: q.Service,
		At:      at,
	}
}

// Subject returns the broker subject the event is published to:
// quotes.<service>.<type>.
func (e QuoteEvent) Subject() string {
	return "quotes." + e.Service + "." + string(e.Type)
}

// Marshal serializes the event payload.
func (e QuoteEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
