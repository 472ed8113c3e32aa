// Package gateway is the public façade of the quote persistence layer.
// Callers interact with one logical quote collection; the gateway consults
// the registry and router to decide which physical collections each
// operation touches.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pcbxpress/internal/events"
	"pcbxpress/internal/fanout"
	"pcbxpress/internal/idgen"
	"pcbxpress/internal/pubsub"
	"pcbxpress/internal/registry"
	"pcbxpress/internal/routing"
	"pcbxpress/internal/storage"
	"pcbxpress/pkg/model"
)

// maxCreateAttempts bounds the optimistic retry loop that resolves quote-id
// races between concurrent writers.
const maxCreateAttempts = 5

// Options carry the optional collaborators.
type Options struct {
	// Publisher receives quote lifecycle events. Nil disables publishing.
	Publisher pubsub.Publisher

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Clock defaults to time.Now. Identifier generation and event
	// timestamps read it.
	Clock func() time.Time
}

// Gateway owns no mutable state beyond its immutable collaborators; it is
// safe for concurrent use without internal locking.
type Gateway struct {
	store  storage.CollectionStore
	reg    *registry.Registry
	router *routing.Router
	engine *fanout.Engine
	ids    *idgen.Generator
	pub    pubsub.Publisher
	log    *slog.Logger
	now    func() time.Time
}

func New(store storage.CollectionStore, reg *registry.Registry, router *routing.Router, opts Options) *Gateway {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Gateway{
		store:  store,
		reg:    reg,
		router: router,
		engine: fanout.New(store, router, log),
		ids:    idgen.NewWithClock(store, now),
		pub:    opts.Publisher,
		log:    log,
		now:    now,
	}
}

// Create persists a new quote under its service's authoritative collection.
// The service value is normalized first; unknown values are coerced to the
// default service, never rejected. The quote id is claimed optimistically:
// on a quote-id uniqueness violation the loop retries with the next attempt
// number, and any other failure propagates immediately. Exactly one document
// is persisted, or none.
func (g *Gateway) Create(ctx context.Context, q *model.Quote) (*model.Quote, error) {
	svc := g.reg.Normalize(q.Service)
	q.Service = string(svc)
	desc := g.reg.Descriptor(svc)
	if q.CreatedAt.IsZero() {
		q.CreatedAt = g.now()
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		quoteID, err := g.ids.NextQuoteID(ctx, desc.Collection, attempt)
		if err != nil {
			return nil, err
		}
		q.QuoteID = quoteID

		err = g.store.Insert(ctx, desc.Collection, q)
		if err == nil {
			g.log.Debug("quote created", "quoteId", q.QuoteID, "service", q.Service, "collection", desc.Collection)
			g.publish(ctx, events.QuoteCreated, q)
			return q, nil
		}
		if errors.Is(err, model.ErrDuplicateQuoteID) {
			g.log.Warn("quote id collision, retrying", "quoteId", quoteID, "attempt", attempt+1)
			continue
		}
		return nil, err
	}

	return nil, &model.IdentifierAllocationError{Service: q.Service, Attempts: maxCreateAttempts}
}

// Count sums per-target counts across the filter's resolved collections.
func (g *Gateway) Count(ctx context.Context, f model.Filter) (int64, error) {
	return g.engine.Count(ctx, f)
}

// FindMany returns the merged, deduplicated, sorted page of quotes matching
// the filter.
func (g *Gateway) FindMany(ctx context.Context, f model.Filter, opts model.FindOptions) ([]*model.Quote, error) {
	return g.engine.Find(ctx, f, opts)
}

// FindByID probes every collection in registry order and returns the first
// match, or nil when no collection holds the id. Storage ids are unique only
// within their own collection, so lookup by id is a scan, not a point read.
func (g *Gateway) FindByID(ctx context.Context, id string) (*model.Quote, error) {
	for _, coll := range g.reg.Collections() {
		q, err := g.store.FindByID(ctx, coll, id)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return nil, err
		}
		return q, nil
	}
	return nil, nil
}

// FindByIDAndUpdate scans like FindByID and applies the patch to the first
// collection containing a match. It returns nil when no collection contains
// the id.
func (g *Gateway) FindByIDAndUpdate(ctx context.Context, id string, patch map[string]interface{}, opts model.UpdateOptions) (*model.Quote, error) {
	for _, coll := range g.reg.Collections() {
		q, err := g.store.UpdateByID(ctx, coll, id, patch, opts.ReturnNew)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return nil, err
		}
		g.log.Debug("quote updated", "id", id, "collection", coll)
		g.publish(ctx, events.QuoteUpdated, q)
		return q, nil
	}
	return nil, nil
}

// DeleteByID removes the quote from the collection where the id is found and
// returns the deleted document, or nil when it is absent everywhere.
func (g *Gateway) DeleteByID(ctx context.Context, id string) (*model.Quote, error) {
	for _, coll := range g.reg.Collections() {
		q, err := g.store.DeleteByID(ctx, coll, id)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return nil, err
		}
		g.log.Debug("quote deleted", "id", id, "collection", coll)
		g.publish(ctx, events.QuoteDeleted, q)
		return q, nil
	}
	return nil, nil
}

// DeleteMany issues an independent delete against every resolved target and
// sums the deleted counts. The fan-out is not atomic: a failure part-way
// leaves earlier targets' deletes applied, and the count reflects them.
func (g *Gateway) DeleteMany(ctx context.Context, f model.Filter) (int64, error) {
	targets, err := g.router.Resolve(f.Service)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, t := range targets {
		n, err := g.store.DeleteMany(ctx, t.Collection, storage.Query{
			Service: string(t.Service),
			Conds:   f.Conds,
		})
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// publish emits a lifecycle event. Publishing is best effort: a broker
// failure is logged, never surfaced, because the storage write has already
// committed.
func (g *Gateway) publish(ctx context.Context, t events.Type, q *model.Quote) {
	if g.pub == nil {
		return
	}
	evt := events.NewQuoteEvent(t, q, g.now())
	data, err := evt.Marshal()
	if err != nil {
		g.log.Warn("event marshal failed", "type", t, "id", q.ID, "error", err)
		return
	}
	if err := g.pub.Publish(ctx, evt.Subject(), data); err != nil {
		g.log.Warn("event publish failed", "subject", evt.Subject(), "id", q.ID, "error", err)
	}
}
