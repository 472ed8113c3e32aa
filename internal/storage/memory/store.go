// Package memory implements storage.CollectionStore in process memory. It
// mirrors the MongoDB store's contract, including the per-collection unique
// constraint on quote_id, and backs tests and local runs that have no
// database at hand.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pcbxpress/internal/storage"
	"pcbxpress/pkg/model"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string][]*model.Quote
}

func New() *Store {
	return &Store{collections: make(map[string][]*model.Quote)}
}

func (s *Store) Insert(ctx context.Context, collection string, q *model.Quote) error {
	if err := ctx.Err(); err != nil {
		return model.WrapStorage("insert", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if q.QuoteID != "" {
		for _, existing := range s.collections[collection] {
			if existing.QuoteID == q.QuoteID {
				return model.ErrDuplicateQuoteID
			}
		}
	}

	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	s.collections[collection] = append(s.collections[collection], q.Clone())
	return nil
}

func (s *Store) Find(ctx context.Context, collection string, query storage.Query) ([]*model.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.WrapStorage("find", collection, err)
	}

	s.mu.RLock()
	var out []*model.Quote
	for _, q := range s.collections[collection] {
		if matches(q, query) {
			out = append(out, q.Clone())
		}
	}
	s.mu.RUnlock()

	query.Sort.Sort(out)
	if query.Limit > 0 && int64(len(out)) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, collection string, query storage.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, model.WrapStorage("count", collection, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, q := range s.collections[collection] {
		if matches(q, query) {
			n++
		}
	}
	return n, nil
}

func (s *Store) FindByID(ctx context.Context, collection string, id string) (*model.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.WrapStorage("findById", collection, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, q := range s.collections[collection] {
		if q.ID == id {
			return q.Clone(), nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) UpdateByID(ctx context.Context, collection string, id string, patch map[string]interface{}, returnNew bool) (*model.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.WrapStorage("updateById", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range s.collections[collection] {
		if q.ID != id {
			continue
		}
		before := q.Clone()
		applyPatch(q, patch)
		if returnNew {
			return q.Clone(), nil
		}
		return before, nil
	}
	return nil, model.ErrNotFound
}

func (s *Store) DeleteByID(ctx context.Context, collection string, id string) (*model.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.WrapStorage("deleteById", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, q := range docs {
		if q.ID == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return q, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) DeleteMany(ctx context.Context, collection string, query storage.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, model.WrapStorage("deleteMany", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []*model.Quote
	var removed int64
	for _, q := range s.collections[collection] {
		if matches(q, query) {
			removed++
			continue
		}
		kept = append(kept, q)
	}
	s.collections[collection] = kept
	return removed, nil
}

func (s *Store) EnsureIndexes(ctx context.Context, collections []string) error {
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

func matches(q *model.Quote, query storage.Query) bool {
	if query.Service != "" && q.Service != query.Service {
		return false
	}
	return model.MatchesAll(q, query.Conds)
}

func applyPatch(q *model.Quote, patch map[string]interface{}) {
	for k, v := range patch {
		switch k {
		case "quoteId", "quote_id":
			if s, ok := v.(string); ok {
				q.QuoteID = s
			}
		case "service":
			if s, ok := v.(string); ok {
				q.Service = s
			}
		case "createdAt", "created_at":
			if t, ok := v.(time.Time); ok {
				q.CreatedAt = t
			}
		default:
			q.SetField(k, v)
		}
	}
}

var _ storage.CollectionStore = (*Store)(nil)
