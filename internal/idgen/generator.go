// Package idgen produces the human-readable, day-scoped quote and invoice
// identifiers.
package idgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pcbxpress/internal/storage"
	"pcbxpress/pkg/model"
)

const (
	quotePrefix   = "Q"
	invoicePrefix = "PI"
	dateLayout    = "20060102"
)

// Counter is the slice of the storage surface the generator needs.
type Counter interface {
	Count(ctx context.Context, collection string, query storage.Query) (int64, error)
}

// Generator derives sequence numbers by counting the target collection's
// documents for the current calendar day. It holds no mutable state: the
// retry attempt is threaded through explicitly, which is what resolves the
// race between concurrent writers claiming the same candidate.
type Generator struct {
	store Counter
	now   func() time.Time
}

func New(store Counter) *Generator {
	return NewWithClock(store, time.Now)
}

// NewWithClock pins the generator to a clock, for deterministic tests.
func NewWithClock(store Counter, now func() time.Time) *Generator {
	return &Generator{store: store, now: now}
}

// NextQuoteID returns the candidate identifier for the given creation
// attempt: Q + yyyymmdd + a three-digit-padded sequence computed as the
// day's document count + 1 + attempt. Two concurrent writers may still
// produce the same candidate; the insert's unique index settles the race and
// the caller retries with the next attempt number.
func (g *Generator) NextQuoteID(ctx context.Context, collection string, attempt int) (string, error) {
	now := g.now()
	n, err := g.countDay(ctx, collection, now, nil)
	if err != nil {
		return "", err
	}
	return format(quotePrefix, now, n+1+int64(attempt)), nil
}

// InvoiceID derives the sibling proforma-invoice identifier from a quote
// identifier by prefix substitution. It reports false when the quote id does
// not carry the expected prefix.
func InvoiceID(quoteID string) (string, bool) {
	if !strings.HasPrefix(quoteID, quotePrefix) {
		return "", false
	}
	return invoicePrefix + strings.TrimPrefix(quoteID, quotePrefix), true
}

// NextInvoiceID computes a day-scoped sequential invoice identifier
// independently of any quote id, by counting the day's documents that
// already carry one.
func (g *Generator) NextInvoiceID(ctx context.Context, collection string) (string, error) {
	now := g.now()
	carryingInvoice := []model.Condition{{Field: "invoiceId", Op: model.OpExists, Value: true}}
	n, err := g.countDay(ctx, collection, now, carryingInvoice)
	if err != nil {
		return "", err
	}
	return format(invoicePrefix, now, n+1), nil
}

// countDay counts documents created within the day containing now, using the
// deployment's local clock for the day boundaries.
func (g *Generator) countDay(ctx context.Context, collection string, now time.Time, extra []model.Condition) (int64, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	conds := append([]model.Condition{
		{Field: "createdAt", Op: model.OpGte, Value: start},
		{Field: "createdAt", Op: model.OpLt, Value: end},
	}, extra...)

	return g.store.Count(ctx, collection, storage.Query{Conds: conds})
}

func format(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s%s%03d", prefix, day.Format(dateLayout), seq)
}
