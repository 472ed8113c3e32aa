// Package fanout executes logical finds and counts across every backing
// collection a service filter resolves to, merging the partial result sets
// into one ordered sequence.
package fanout

import (
	"context"
	"log/slog"

	"pcbxpress/internal/routing"
	"pcbxpress/internal/storage"
	"pcbxpress/pkg/model"
)

type Engine struct {
	store  storage.CollectionStore
	router *routing.Router
	log    *slog.Logger
}

func New(store storage.CollectionStore, router *routing.Router, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{store: store, router: router, log: log}
}

// Find runs the filter against every resolved target and returns the merged,
// deduplicated, re-sorted page. Each per-target query applies the same sort
// at the storage level and fetches skip+limit documents, which bounds
// per-collection work while guaranteeing enough candidates survive the
// merge. Any per-target failure fails the whole operation: reads are never
// partial.
func (e *Engine) Find(ctx context.Context, f model.Filter, opts model.FindOptions) ([]*model.Quote, error) {
	targets, err := e.router.Resolve(f.Service)
	if err != nil {
		return nil, err
	}
	e.log.Debug("fanout find", "targets", len(targets), "skip", opts.Skip, "limit", opts.Limit)

	sortSpec := opts.Sort
	if len(sortSpec) == 0 {
		sortSpec = model.DefaultSort()
	}

	var fetch int64
	if opts.Limit > 0 {
		fetch = opts.Skip + opts.Limit
	}

	var merged []*model.Quote
	for _, t := range targets {
		docs, err := e.store.Find(ctx, t.Collection, storage.Query{
			Service: string(t.Service),
			Conds:   f.Conds,
			Sort:    sortSpec,
			Limit:   fetch,
		})
		if err != nil {
			return nil, err
		}
		merged = append(merged, docs...)
	}

	merged = dedupeByID(merged)
	sortSpec.Sort(merged)
	return page(merged, opts.Skip, opts.Limit), nil
}

// Count sums independent per-target counts. The sum is not deduplicated:
// outside a migration window each service maps to exactly one collection, so
// overlap (and the resulting drift) only exists while a migration is in
// flight.
func (e *Engine) Count(ctx context.Context, f model.Filter) (int64, error) {
	targets, err := e.router.Resolve(f.Service)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, t := range targets {
		n, err := e.store.Count(ctx, t.Collection, storage.Query{
			Service: string(t.Service),
			Conds:   f.Conds,
		})
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// dedupeByID drops later occurrences of an identity already seen; the first
// occurrence in concatenation order wins. Duplicates arise when a service's
// documents are reachable through more than one collection during a
// migration window.
func dedupeByID(quotes []*model.Quote) []*model.Quote {
	seen := make(map[string]bool, len(quotes))
	out := quotes[:0]
	for _, q := range quotes {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}

func page(quotes []*model.Quote, skip, limit int64) []*model.Quote {
	if skip > 0 {
		if skip >= int64(len(quotes)) {
			return nil
		}
		quotes = quotes[skip:]
	}
	if limit > 0 && int64(len(quotes)) > limit {
		quotes = quotes[:limit]
	}
	return quotes
}
